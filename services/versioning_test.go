package services

import (
	"errors"
	"testing"

	"avquotes-backend/models"

	"github.com/google/uuid"
)

func TestSnapshotAndUpdate(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	author := uuid.New()

	svc := NewVersionService(db)
	err := svc.SnapshotAndUpdate(quote.ID, author, map[string]interface{}{
		"name": "Conference Center Phase 2",
	})
	if err != nil {
		t.Fatalf("snapshot and update: %v", err)
	}

	var updated models.Quote
	if err := db.First(&updated, "id = ?", quote.ID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if updated.Name != "Conference Center Phase 2" {
		t.Errorf("name = %q, want updated", updated.Name)
	}
	if updated.Version != 2 {
		t.Errorf("version = %d, want 2", updated.Version)
	}

	var versions []models.QuoteVersion
	if err := db.Where("quote_id = ?", quote.ID).Find(&versions).Error; err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(versions))
	}
	if versions[0].Version != 1 {
		t.Errorf("snapshot version = %d, want the pre-update 1", versions[0].Version)
	}
	if got := versions[0].Data["Name"]; got != "Conference Center" {
		t.Errorf("snapshot holds %v, want the pre-update name", got)
	}
	if versions[0].ChangedByUserID != author {
		t.Errorf("snapshot author = %v, want %v", versions[0].ChangedByUserID, author)
	}
}

func TestSnapshotAndUpdateQuoteNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewVersionService(db)

	err := svc.SnapshotAndUpdate(uuid.New(), uuid.New(), map[string]interface{}{"name": "x"})
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestVersionsAreMonotonic(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	author := uuid.New()
	svc := NewVersionService(db)

	for i := 0; i < 3; i++ {
		if err := svc.SnapshotAndUpdate(quote.ID, author, map[string]interface{}{
			"description": "revision",
		}); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	var updated models.Quote
	if err := db.First(&updated, "id = ?", quote.ID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if updated.Version != 4 {
		t.Errorf("version = %d, want 4 after three updates", updated.Version)
	}

	versions, err := svc.List(quote.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(versions))
	}
	// Newest first.
	for i, want := range []int{3, 2, 1} {
		if versions[i].Version != want {
			t.Errorf("versions[%d] = %d, want %d", i, versions[i].Version, want)
		}
	}
}

func TestListQuoteNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	_, err := NewVersionService(db).List(uuid.New())
	if !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)
	author := uuid.New()
	svc := NewVersionService(db)

	if err := svc.SnapshotAndUpdate(quote.ID, author, map[string]interface{}{
		"name":     "Renamed",
		"tax_rate": 9.5,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Restoring version 1 snapshots the current state first, then writes the
	// old fields back. Version numbers never rewind.
	if err := svc.Restore(quote.ID, 1, author); err != nil {
		t.Fatalf("restore: %v", err)
	}

	var restored models.Quote
	if err := db.First(&restored, "id = ?", quote.ID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if restored.Name != "Conference Center" {
		t.Errorf("name = %q, want the restored original", restored.Name)
	}
	if restored.TaxRate != 8 {
		t.Errorf("tax rate = %v, want the restored 8", restored.TaxRate)
	}
	if restored.Version != 3 {
		t.Errorf("version = %d, want 3", restored.Version)
	}

	versions, err := svc.List(quote.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(versions))
	}

	// Version 2 is the state snapshotted just before the first restore.
	// Restoring it brings the renamed fields back, again under a fresh
	// version number.
	if err := svc.Restore(quote.ID, 2, author); err != nil {
		t.Fatalf("second restore: %v", err)
	}

	if err := db.First(&restored, "id = ?", quote.ID).Error; err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if restored.Name != "Renamed" {
		t.Errorf("name = %q, want the pre-restore %q", restored.Name, "Renamed")
	}
	if restored.TaxRate != 9.5 {
		t.Errorf("tax rate = %v, want the pre-restore 9.5", restored.TaxRate)
	}
	if restored.Version != 4 {
		t.Errorf("version = %d, want 4", restored.Version)
	}

	versions, err = svc.List(quote.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(versions) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(versions))
	}
}

func TestRestoreVersionNotFound(t *testing.T) {
	db := setupTestDB(t, t.Name())
	quote := seedQuote(t, db)

	err := NewVersionService(db).Restore(quote.ID, 42, uuid.New())
	if !errors.Is(err, ErrVersionNotFound) {
		t.Fatalf("expected ErrVersionNotFound, got %v", err)
	}
}
