package services

import (
	"errors"
	"time"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BOMLocation records one place in the quote where a grouped item appears
type BOMLocation struct {
	Room         string `json:"room"`
	System       string `json:"system"`
	Quantity     int    `json:"quantity"`
	RoomQuantity int    `json:"room_quantity"`
}

// BOMItem is a deduplicated parts-list entry, grouped by item name + vendor
type BOMItem struct {
	ItemName    string        `json:"item_name"`
	Description string        `json:"description"`
	Vendor      string        `json:"vendor"`
	Quantity    int           `json:"quantity"`
	UnitCost    float64       `json:"unit_cost"`
	Locations   []BOMLocation `json:"locations"`
}

type BillOfMaterials struct {
	QuoteID       uuid.UUID `json:"quote_id"`
	QuoteName     string    `json:"quote_name"`
	ClientName    string    `json:"client_name"`
	Status        string    `json:"status"`
	GeneratedAt   time.Time `json:"generated_at"`
	Items         []BOMItem `json:"items"`
	TotalItems    int       `json:"total_items"`
	TotalQuantity int       `json:"total_quantity"`
	TotalCost     float64   `json:"total_cost"`
}

// BOMService flattens a quote's room/system/equipment hierarchy into a
// deduplicated parts list, independent of pricing.
type BOMService struct {
	db *gorm.DB
}

func NewBOMService(db *gorm.DB) *BOMService {
	return &BOMService{db: db}
}

// Compile builds the bill of materials for a quote. Quantities accumulate
// equipment quantity times room quantity for every occurrence; groups keep
// the unit cost of the first occurrence encountered, so heterogeneous costs
// under one item+vendor key surface only through the quantity totals.
func (s *BOMService) Compile(quoteID uuid.UUID) (*BillOfMaterials, error) {
	var quote models.Quote
	if err := s.db.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	bom := &BillOfMaterials{
		QuoteID:     quote.ID,
		QuoteName:   quote.Name,
		ClientName:  quote.ClientName,
		Status:      quote.Status,
		GeneratedAt: time.Now().UTC(),
		Items:       []BOMItem{},
	}

	var rooms []models.Room
	if err := s.db.Where("quote_id = ?", quote.ID).
		Order("created_at, id").Find(&rooms).Error; err != nil {
		return nil, err
	}

	groups := map[string]*BOMItem{}
	var order []string // map iteration is random, keep first-seen order

	for _, room := range rooms {
		var systems []models.System
		if err := s.db.Where("room_id = ?", room.ID).
			Order("created_at, id").Find(&systems).Error; err != nil {
			return nil, err
		}

		for _, system := range systems {
			var equipment []models.Equipment
			if err := s.db.Where("system_id = ?", system.ID).
				Order("created_at, id").Find(&equipment).Error; err != nil {
				return nil, err
			}

			for _, eq := range equipment {
				vendor := eq.Vendor
				if vendor == "" {
					vendor = "N/A"
				}
				key := eq.ItemName + "|" + vendor
				totalQty := eq.Quantity * room.Quantity

				group, ok := groups[key]
				if !ok {
					group = &BOMItem{
						ItemName:    eq.ItemName,
						Description: eq.Description,
						Vendor:      vendor,
						UnitCost:    eq.UnitCost,
					}
					groups[key] = group
					order = append(order, key)
				}

				group.Quantity += totalQty
				group.Locations = append(group.Locations, BOMLocation{
					Room:         room.Name,
					System:       system.Name,
					Quantity:     eq.Quantity,
					RoomQuantity: room.Quantity,
				})
			}
		}
	}

	for _, key := range order {
		item := *groups[key]
		bom.Items = append(bom.Items, item)
		bom.TotalQuantity += item.Quantity
		bom.TotalCost += float64(item.Quantity) * item.UnitCost
	}
	bom.TotalItems = len(bom.Items)
	bom.TotalCost = Round2(bom.TotalCost)

	return bom, nil
}
