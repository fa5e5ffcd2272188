package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVersionNotFound = errors.New("version not found")
	ErrVersionConflict = errors.New("version conflict")
)

// How many times a conflicting snapshot+update sequence is retried with a
// fresh read before giving up.
const maxVersionRetries = 3

// VersionService captures an immutable snapshot of a quote row before each
// mutation and increments the quote's version counter atomically with it.
type VersionService struct {
	db *gorm.DB
}

func NewVersionService(db *gorm.DB) *VersionService {
	return &VersionService{db: db}
}

// SnapshotAndUpdate runs the snapshot-then-update sequence for one quote in
// a single transaction: read the current row, append it to quote_versions
// under the pre-update version number, then apply the column updates with
// version = version + 1. The update is guarded by the version read at the
// start, so two racing updates cannot both land on the same version; the
// loser is retried with a fresh read.
func (s *VersionService) SnapshotAndUpdate(quoteID, authorID uuid.UUID, updates map[string]interface{}) error {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var quote models.Quote
			if err := tx.First(&quote, "id = ?", quoteID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrQuoteNotFound
				}
				return err
			}

			snapshot, err := snapshotQuote(&quote)
			if err != nil {
				return err
			}

			version := models.QuoteVersion{
				QuoteID:         quote.ID,
				Version:         quote.Version,
				Data:            snapshot,
				ChangedByUserID: authorID,
			}
			if err := tx.Create(&version).Error; err != nil {
				return err
			}

			fields := map[string]interface{}{
				"version": gorm.Expr("version + ?", 1),
			}
			for column, value := range updates {
				fields[column] = value
			}

			res := tx.Model(&models.Quote{}).
				Where("id = ? AND version = ?", quote.ID, quote.Version).
				Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrVersionConflict
			}
			return nil
		})

		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		return err
	}
	return ErrVersionConflict
}

// List returns all stored versions of a quote, newest first.
func (s *VersionService) List(quoteID uuid.UUID) ([]models.QuoteVersion, error) {
	var quote models.Quote
	if err := s.db.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	var versions []models.QuoteVersion
	if err := s.db.Where("quote_id = ?", quoteID).
		Order("version DESC").Find(&versions).Error; err != nil {
		return nil, err
	}
	return versions, nil
}

// Restore overwrites the quote's mutable fields from the snapshot stored
// under the given version number. The current state is snapshotted first, so
// a restore is just another versioned update: version numbers only grow and
// are never reused.
func (s *VersionService) Restore(quoteID uuid.UUID, version int, authorID uuid.UUID) error {
	var qv models.QuoteVersion
	if err := s.db.Where("quote_id = ? AND version = ?", quoteID, version).
		First(&qv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVersionNotFound
		}
		return err
	}

	old, err := quoteFromSnapshot(qv.Data)
	if err != nil {
		return fmt.Errorf("decode version %d snapshot: %w", version, err)
	}

	return s.SnapshotAndUpdate(quoteID, authorID, map[string]interface{}{
		"name":                     old.Name,
		"client_name":              old.ClientName,
		"description":              old.Description,
		"equipment_markup_default": old.EquipmentMarkupDefault,
		"tax_rate":                 old.TaxRate,
		"tax_enabled":              old.TaxEnabled,
	})
}

func snapshotQuote(quote *models.Quote) (models.JSONB, error) {
	raw, err := json.Marshal(quote)
	if err != nil {
		return nil, err
	}
	var data models.JSONB
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func quoteFromSnapshot(data models.JSONB) (*models.Quote, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var quote models.Quote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
