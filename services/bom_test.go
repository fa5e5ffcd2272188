package services

import (
	"errors"
	"testing"

	"avquotes-backend/models"

	"github.com/google/uuid"
)

func TestCompileQuoteNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	_, err := NewBOMService(db).Compile(uuid.New())
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestCompileGroupsAcrossRooms(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)

	roomA := seedRoom(t, db, quote.ID, "Room A", 1)
	roomB := seedRoom(t, db, quote.ID, "Room B", 1)
	sysA := seedSystem(t, db, roomA.ID, "Video")
	sysB := seedSystem(t, db, roomB.ID, "Video")

	seedEquipment(t, db, models.Equipment{
		SystemID: sysA.ID, ItemName: "HDMI Cable", Vendor: "CableCo", Quantity: 3, UnitCost: 12.50,
	})
	seedEquipment(t, db, models.Equipment{
		SystemID: sysB.ID, ItemName: "HDMI Cable", Vendor: "CableCo", Quantity: 5, UnitCost: 14.00,
	})
	// Same item name from a different vendor stays its own group.
	seedEquipment(t, db, models.Equipment{
		SystemID: sysB.ID, ItemName: "HDMI Cable", Vendor: "OtherCo", Quantity: 1, UnitCost: 9.99,
	})

	bom, err := NewBOMService(db).Compile(quote.ID)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if bom.TotalItems != 2 {
		t.Fatalf("expected 2 grouped items, got %d", bom.TotalItems)
	}

	var cable *BOMItem
	for i := range bom.Items {
		if bom.Items[i].Vendor == "CableCo" {
			cable = &bom.Items[i]
		}
	}
	if cable == nil {
		t.Fatalf("no CableCo group in %+v", bom.Items)
	}
	if cable.Quantity != 8 {
		t.Errorf("grouped quantity = %d, want 8", cable.Quantity)
	}
	if len(cable.Locations) != 2 {
		t.Errorf("locations = %d, want 2", len(cable.Locations))
	}
	// First occurrence wins on unit cost.
	if cable.UnitCost != 12.50 {
		t.Errorf("unit cost = %v, want 12.50", cable.UnitCost)
	}

	if bom.TotalQuantity != 9 {
		t.Errorf("total quantity = %d, want 9", bom.TotalQuantity)
	}
	if want := Round2(8*12.50 + 1*9.99); bom.TotalCost != want {
		t.Errorf("total cost = %v, want %v", bom.TotalCost, want)
	}
}

func TestCompileMultipliesByRoomQuantity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Classroom", 3)
	system := seedSystem(t, db, room.ID, "Audio")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Speaker", Quantity: 2, UnitCost: 80,
	})

	bom, err := NewBOMService(db).Compile(quote.ID)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	item := bom.Items[0]
	if item.Quantity != 6 {
		t.Errorf("quantity = %d, want 6 (2 per room x 3 rooms)", item.Quantity)
	}
	loc := item.Locations[0]
	if loc.Quantity != 2 || loc.RoomQuantity != 3 {
		t.Errorf("location = %+v, want per-room 2 x room qty 3", loc)
	}
}

func TestCompileEmptyVendorBecomesNA(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Closet", 1)
	system := seedSystem(t, db, room.ID, "Network")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Patch Panel", Quantity: 1, UnitCost: 45,
	})

	bom, err := NewBOMService(db).Compile(quote.ID)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if bom.Items[0].Vendor != "N/A" {
		t.Errorf("vendor = %q, want N/A", bom.Items[0].Vendor)
	}
}
