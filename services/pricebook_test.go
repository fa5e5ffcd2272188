package services

import (
	"bytes"
	"testing"
	"time"

	"avquotes-backend/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func priceSheet(t *testing.T, rows [][]interface{}) *bytes.Reader {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			f.SetCellValue(sheet, cell, v)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func pricebookTestDB(t *testing.T) *gorm.DB {
	db := setupTestDB(t, t.Name())
	if err := db.AutoMigrate(&models.VendorPrice{}); err != nil {
		t.Fatalf("migrate vendor prices: %v", err)
	}
	return db
}

func TestInspectWorkbook(t *testing.T) {
	db := pricebookTestDB(t)
	r := priceSheet(t, [][]interface{}{
		{"Part", "MSRP", "Notes"},
		{"Display", 999.99, "55 inch"},
		{"Mount", 45, ""},
	})

	info, err := NewPriceBookService(db).InspectWorkbook(r)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(info.Headers) != 3 || info.Headers[0] != "Part" {
		t.Errorf("headers = %v", info.Headers)
	}
	if info.RowCount != 2 {
		t.Errorf("row count = %d, want 2", info.RowCount)
	}
}

func TestImportMapped(t *testing.T) {
	db := pricebookTestDB(t)
	r := priceSheet(t, [][]interface{}{
		{"Part", "MSRP", "Notes"},
		{"Display", "1,299.00", "55 inch"},
		{"Mount", 45.5, "tilting"},
		{"", 10, "skipped, no name"},
		{"Bracket", "not-a-price", ""},
	})

	svc := NewPriceBookService(db)
	result, err := svc.ImportMapped(r, ColumnMapping{ItemName: "Part", Price: "MSRP", Description: "Notes"},
		"AVSupply", nil, true, nil)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v, want 1 bad-price row", result.Errors)
	}

	prices, err := svc.Search("Display", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("expected 1 match, got %d", len(prices))
	}
	if prices[0].Cost != 1299 {
		t.Errorf("cost = %v, want 1299 after comma strip", prices[0].Cost)
	}
	if prices[0].Vendor != "AVSupply" {
		t.Errorf("vendor = %q", prices[0].Vendor)
	}
}

func TestImportMappedRejectsMissingColumns(t *testing.T) {
	db := pricebookTestDB(t)
	r := priceSheet(t, [][]interface{}{
		{"Part", "MSRP"},
		{"Display", 999},
	})

	_, err := NewPriceBookService(db).ImportMapped(r,
		ColumnMapping{ItemName: "Nope", Price: "MSRP"}, "AVSupply", nil, false, nil)
	if err == nil {
		t.Fatal("expected error for unmapped item_name column")
	}
}

func TestPurgeExpired(t *testing.T) {
	db := pricebookTestDB(t)

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(0, 1, 0)
	for _, p := range []models.VendorPrice{
		{ItemName: "Old Display", Cost: 100, Vendor: "A", ExpirationDate: &past},
		{ItemName: "Fresh Display", Cost: 100, Vendor: "A", ExpirationDate: &future},
		{ItemName: "Evergreen Cable", Cost: 5, Vendor: "A"},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed price: %v", err)
		}
	}

	purged, err := NewPriceBookService(db).PurgeExpired()
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	var remaining int64
	if err := db.Model(&models.VendorPrice{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if remaining != 2 {
		t.Errorf("remaining = %d, want 2", remaining)
	}
}
