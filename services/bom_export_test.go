package services

import (
	"bytes"
	"testing"

	"avquotes-backend/models"

	"github.com/xuri/excelize/v2"
)

func TestExportExcel(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Boardroom", 2)
	system := seedSystem(t, db, room.ID, "Video")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Display", Vendor: "ScreenCo", Quantity: 1, UnitCost: 500,
	})

	svc := NewBOMService(db)
	bom, err := svc.Compile(quote.ID)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	data, err := svc.ExportExcel(bom)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Bill of Materials")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) < 6 {
		t.Fatalf("expected title, headers and a data row, got %d rows", len(rows))
	}
	if rows[4][0] != "Item Name" {
		t.Errorf("header row = %v", rows[4])
	}
	if rows[5][0] != "Display" || rows[5][2] != "ScreenCo" {
		t.Errorf("data row = %v", rows[5])
	}
}
