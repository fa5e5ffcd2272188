package services

import (
	"errors"
	"fmt"
	"testing"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Quote{},
		&models.QuoteVersion{},
		&models.Room{},
		&models.System{},
		&models.Equipment{},
		&models.Labor{},
		&models.Service{},
		&models.Template{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedQuote creates a department, a user and a quote with the usual
// defaults: 20% markup, 8% tax enabled.
func seedQuote(t *testing.T, db *gorm.DB) *models.Quote {
	dept := models.Department{Name: "AV"}
	if err := db.Create(&dept).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}
	user := models.User{Username: "estimator-" + uuid.NewString()[:8], Password: "secret", Role: "estimator"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	quote := models.Quote{
		QuoteNumber:            "Q-" + uuid.NewString()[:8],
		Name:                   "Conference Center",
		ClientName:             "Acme Corp",
		DepartmentID:           dept.ID,
		Status:                 "draft",
		EquipmentMarkupDefault: 20,
		TaxRate:                8,
		TaxEnabled:             true,
		CreatedByUserID:        user.ID,
	}
	if err := db.Create(&quote).Error; err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return &quote
}

func seedRoom(t *testing.T, db *gorm.DB, quoteID uuid.UUID, name string, quantity int) *models.Room {
	room := models.Room{QuoteID: quoteID, Name: name, Quantity: quantity}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return &room
}

func seedSystem(t *testing.T, db *gorm.DB, roomID uuid.UUID, name string) *models.System {
	system := models.System{RoomID: roomID, Name: name}
	if err := db.Create(&system).Error; err != nil {
		t.Fatalf("seed system: %v", err)
	}
	return &system
}

func seedEquipment(t *testing.T, db *gorm.DB, eq models.Equipment) *models.Equipment {
	if err := db.Create(&eq).Error; err != nil {
		t.Fatalf("seed equipment: %v", err)
	}
	return &eq
}

func TestComputeQuoteNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewFinancialsService(db)

	_, err := svc.Compute(uuid.New())
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestComputeSingleRoomWithServiceAndTax(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Boardroom", 2)
	system := seedSystem(t, db, room.ID, "Video")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Display", Quantity: 1, UnitCost: 100,
	})
	svc := models.Service{RoomID: room.ID, ServiceName: "Project Management", PercentageOfEquipment: 10}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	fin, err := NewFinancialsService(db).Compute(quote.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if len(fin.Rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(fin.Rooms))
	}
	roomFin := fin.Rooms[0]

	line := roomFin.Systems[0].Equipment[0]
	if line.UnitPrice != 120 {
		t.Errorf("unit price = %v, want 120", line.UnitPrice)
	}
	if line.MarkupPercent != 20 {
		t.Errorf("markup percent = %v, want 20", line.MarkupPercent)
	}

	// Room totals are multiplied by room quantity; the service percentage
	// is taken from the single-room equipment price before doubling.
	if roomFin.EquipmentPrice != 240 {
		t.Errorf("room equipment price = %v, want 240", roomFin.EquipmentPrice)
	}
	if roomFin.ServicesPrice != 24 {
		t.Errorf("room services price = %v, want 24", roomFin.ServicesPrice)
	}
	if roomFin.Subtotal != 264 {
		t.Errorf("room subtotal = %v, want 264", roomFin.Subtotal)
	}

	totals := fin.Totals
	if totals.Subtotal != 264 {
		t.Errorf("subtotal = %v, want 264", totals.Subtotal)
	}
	if totals.Tax != 19.2 {
		t.Errorf("tax = %v, want 19.2", totals.Tax)
	}
	if totals.GrandTotal != 283.2 {
		t.Errorf("grand total = %v, want 283.2", totals.GrandTotal)
	}
	if totals.EquipmentMargin != 40 {
		t.Errorf("equipment margin = %v, want 40", totals.EquipmentMargin)
	}
	// Services carry no cost, so their full price lands in total margin.
	if totals.TotalMargin != 64 {
		t.Errorf("total margin = %v, want 64", totals.TotalMargin)
	}
	if totals.MarginPercent != 32 {
		t.Errorf("margin percent = %v, want 32", totals.MarginPercent)
	}
}

func TestComputeMarkupOverride(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Lobby", 1)
	system := seedSystem(t, db, room.ID, "Audio")

	zero := 0.0
	fifty := 50.0
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Amp", Quantity: 1, UnitCost: 200, MarkupOverride: &fifty,
	})
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Pass-through license", Quantity: 1, UnitCost: 80, MarkupOverride: &zero,
	})
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Speaker", Quantity: 1, UnitCost: 100,
	})

	fin, err := NewFinancialsService(db).Compute(quote.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	byName := map[string]EquipmentLine{}
	for _, line := range fin.Rooms[0].Systems[0].Equipment {
		byName[line.ItemName] = line
	}
	if got := byName["Amp"].UnitPrice; got != 300 {
		t.Errorf("override 50%%: unit price = %v, want 300", got)
	}
	if got := byName["Pass-through license"].UnitPrice; got != 80 {
		t.Errorf("explicit zero override must not fall back: unit price = %v, want 80", got)
	}
	if got := byName["Speaker"].UnitPrice; got != 120 {
		t.Errorf("default markup: unit price = %v, want 120", got)
	}
}

func TestComputeLaborTotals(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Office", 1)

	labor := models.Labor{RoomID: room.ID, RoleName: "Technician", CostRate: 50, SellRate: 100, Hours: 10}
	if err := db.Create(&labor).Error; err != nil {
		t.Fatalf("seed labor: %v", err)
	}

	fin, err := NewFinancialsService(db).Compute(quote.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	line := fin.Rooms[0].Labor[0]
	if line.TotalCost != 500 || line.TotalPrice != 1000 || line.Margin != 500 {
		t.Errorf("labor line = cost %v price %v margin %v, want 500/1000/500",
			line.TotalCost, line.TotalPrice, line.Margin)
	}

	totals := fin.Totals
	if totals.LaborCost != 500 || totals.LaborPrice != 1000 {
		t.Errorf("labor totals = %v/%v, want 500/1000", totals.LaborCost, totals.LaborPrice)
	}
	// No equipment means no tax base.
	if totals.Tax != 0 {
		t.Errorf("tax = %v, want 0", totals.Tax)
	}
	if totals.GrandTotal != 1000 {
		t.Errorf("grand total = %v, want 1000", totals.GrandTotal)
	}
	if totals.MarginPercent != 100 {
		t.Errorf("margin percent = %v, want 100", totals.MarginPercent)
	}
}

func TestComputeTaxDisabled(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	if err := db.Model(quote).Update("tax_enabled", false).Error; err != nil {
		t.Fatalf("disable tax: %v", err)
	}
	room := seedRoom(t, db, quote.ID, "Huddle", 1)
	system := seedSystem(t, db, room.ID, "Video")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Camera", Quantity: 2, UnitCost: 250,
	})

	fin, err := NewFinancialsService(db).Compute(quote.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if fin.Totals.Tax != 0 {
		t.Errorf("tax = %v, want 0 when disabled", fin.Totals.Tax)
	}
	if fin.Totals.GrandTotal != fin.Totals.Subtotal {
		t.Errorf("grand total %v != subtotal %v with tax disabled",
			fin.Totals.GrandTotal, fin.Totals.Subtotal)
	}
}

func TestComputeServiceScalesWithRoomQuantity(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)

	for i, qty := range []int{1, 3} {
		room := seedRoom(t, db, quote.ID, fmt.Sprintf("Classroom %d", i+1), qty)
		system := seedSystem(t, db, room.ID, "AV")
		seedEquipment(t, db, models.Equipment{
			SystemID: system.ID, ItemName: "Projector", Quantity: 1, UnitCost: 1000,
		})
		svc := models.Service{RoomID: room.ID, ServiceName: "Commissioning", PercentageOfEquipment: 5}
		if err := db.Create(&svc).Error; err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}

	fin, err := NewFinancialsService(db).Compute(quote.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	byRoom := map[string]RoomFinancials{}
	for _, room := range fin.Rooms {
		byRoom[room.Name] = room
	}
	// 5% of 1200 is 60 per room copy.
	if got := byRoom["Classroom 1"].ServicesPrice; got != 60 {
		t.Errorf("room qty 1 services price = %v, want 60", got)
	}
	if got := byRoom["Classroom 2"].ServicesPrice; got != 180 {
		t.Errorf("room qty 3 services price = %v, want 180", got)
	}
}

func TestComputeEmptyQuote(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)

	fin, err := NewFinancialsService(db).Compute(quote.ID)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(fin.Rooms) != 0 {
		t.Fatalf("expected no rooms, got %d", len(fin.Rooms))
	}
	if fin.Totals.GrandTotal != 0 {
		t.Errorf("grand total = %v, want 0", fin.Totals.GrandTotal)
	}
	// Zero cost must not divide.
	if fin.Totals.MarginPercent != 0 {
		t.Errorf("margin percent = %v, want 0", fin.Totals.MarginPercent)
	}
}

func TestComputeRejectsNegativeValues(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Storage", 1)
	system := seedSystem(t, db, room.ID, "Misc")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Broken line", Quantity: 1, UnitCost: -5,
	})

	_, err := NewFinancialsService(db).Compute(quote.ID)
	if !errors.Is(err, ErrInvalidQuoteData) {
		t.Fatalf("expected ErrInvalidQuoteData, got %v", err)
	}
}

func TestComputeIsReadOnly(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	room := seedRoom(t, db, quote.ID, "Theater", 2)
	system := seedSystem(t, db, room.ID, "Audio")
	seedEquipment(t, db, models.Equipment{
		SystemID: system.ID, ItemName: "Mixer", Quantity: 3, UnitCost: 333.33,
	})

	svc := NewFinancialsService(db)
	first, err := svc.Compute(quote.ID)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := svc.Compute(quote.ID)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if first.Totals != second.Totals {
		t.Errorf("repeated compute changed totals: %+v vs %+v", first.Totals, second.Totals)
	}

	var stored models.Quote
	if err := db.First(&stored, "id = ?", quote.ID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if stored.Version != quote.Version {
		t.Errorf("compute must not bump version: %d -> %d", quote.Version, stored.Version)
	}
}
