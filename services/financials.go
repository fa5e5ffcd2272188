package services

import (
	"errors"
	"fmt"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrQuoteNotFound    = errors.New("quote not found")
	ErrInvalidQuoteData = errors.New("invalid quote data")
)

// EquipmentLine is one priced equipment row inside a system breakdown
type EquipmentLine struct {
	ID            uuid.UUID `json:"id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	UnitCost      float64   `json:"unit_cost"`
	UnitPrice     float64   `json:"unit_price"`
	TotalCost     float64   `json:"total_cost"`
	TotalPrice    float64   `json:"total_price"`
	Margin        float64   `json:"margin"`
	MarkupPercent float64   `json:"markup_percent"`
	TaxExempt     bool      `json:"tax_exempt"`
}

type SystemFinancials struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Equipment      []EquipmentLine `json:"equipment"`
	EquipmentCost  float64         `json:"equipment_cost"`
	EquipmentPrice float64         `json:"equipment_price"`
	Margin         float64         `json:"margin"`
}

type LaborLine struct {
	ID         uuid.UUID `json:"id"`
	RoleName   string    `json:"role_name"`
	CostRate   float64   `json:"cost_rate"`
	SellRate   float64   `json:"sell_rate"`
	Hours      float64   `json:"hours"`
	TotalCost  float64   `json:"total_cost"`
	TotalPrice float64   `json:"total_price"`
	Margin     float64   `json:"margin"`
}

type ServiceLine struct {
	ID              uuid.UUID `json:"id"`
	ServiceName     string    `json:"service_name"`
	Percentage      float64   `json:"percentage"`
	CalculatedPrice float64   `json:"calculated_price"`
}

type RoomFinancials struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Quantity       int                `json:"quantity"`
	Systems        []SystemFinancials `json:"systems"`
	Labor          []LaborLine        `json:"labor"`
	Services       []ServiceLine      `json:"services"`
	EquipmentCost  float64            `json:"equipment_cost"`
	EquipmentPrice float64            `json:"equipment_price"`
	LaborCost      float64            `json:"labor_cost"`
	LaborPrice     float64            `json:"labor_price"`
	ServicesPrice  float64            `json:"services_price"`
	Subtotal       float64            `json:"subtotal"`
	Margin         float64            `json:"margin"`
}

type QuoteTotals struct {
	EquipmentCost   float64 `json:"equipment_cost"`
	EquipmentPrice  float64 `json:"equipment_price"`
	EquipmentMargin float64 `json:"equipment_margin"`
	LaborCost       float64 `json:"labor_cost"`
	LaborPrice      float64 `json:"labor_price"`
	LaborMargin     float64 `json:"labor_margin"`
	ServicesCost    float64 `json:"services_cost"`
	ServicesPrice   float64 `json:"services_price"`
	Subtotal        float64 `json:"subtotal"`
	Tax             float64 `json:"tax"`
	GrandTotal      float64 `json:"grand_total"`
	TotalMargin     float64 `json:"total_margin"`
	MarginPercent   float64 `json:"margin_percent"`
}

// QuoteFinancials is the full nested financial breakdown of one quote.
// It is derived fresh from stored state on every call and never written back.
type QuoteFinancials struct {
	QuoteID     uuid.UUID        `json:"quote_id"`
	QuoteNumber string           `json:"quote_number"`
	Rooms       []RoomFinancials `json:"rooms"`
	Totals      QuoteTotals      `json:"totals"`
}

// FinancialsService walks a quote's room/system/equipment/labor/service
// hierarchy and derives priced line items, margins, tax and totals.
type FinancialsService struct {
	db *gorm.DB
}

func NewFinancialsService(db *gorm.DB) *FinancialsService {
	return &FinancialsService{db: db}
}

// Compute returns the financial breakdown for the given quote. The whole
// result is built or no result at all: a missing quote yields
// ErrQuoteNotFound, malformed rows yield ErrInvalidQuoteData before any
// aggregation happens.
func (s *FinancialsService) Compute(quoteID uuid.UUID) (*QuoteFinancials, error) {
	var quote models.Quote
	if err := s.db.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}

	var rooms []models.Room
	if err := s.db.Where("quote_id = ?", quote.ID).
		Order("created_at, id").Find(&rooms).Error; err != nil {
		return nil, err
	}

	financials := &QuoteFinancials{
		QuoteID:     quote.ID,
		QuoteNumber: quote.QuoteNumber,
		Rooms:       []RoomFinancials{},
	}

	for _, room := range rooms {
		roomData, err := s.computeRoom(&quote, &room)
		if err != nil {
			return nil, err
		}

		financials.Rooms = append(financials.Rooms, *roomData)

		financials.Totals.EquipmentCost += roomData.EquipmentCost
		financials.Totals.EquipmentPrice += roomData.EquipmentPrice
		financials.Totals.LaborCost += roomData.LaborCost
		financials.Totals.LaborPrice += roomData.LaborPrice
		financials.Totals.ServicesPrice += roomData.ServicesPrice
	}

	t := &financials.Totals
	t.EquipmentCost = Round2(t.EquipmentCost)
	t.EquipmentPrice = Round2(t.EquipmentPrice)
	t.EquipmentMargin = Round2(t.EquipmentPrice - t.EquipmentCost)
	t.LaborCost = Round2(t.LaborCost)
	t.LaborPrice = Round2(t.LaborPrice)
	t.LaborMargin = Round2(t.LaborPrice - t.LaborCost)
	t.ServicesPrice = Round2(t.ServicesPrice)
	t.ServicesCost = 0 // services are pure margin

	t.Subtotal = Round2(t.EquipmentPrice + t.LaborPrice + t.ServicesPrice)

	// Tax applies to the total equipment sell price only, never to labor or
	// services. The per-line tax_exempt flag is carried through for display
	// but not yet consulted here.
	if quote.TaxEnabled {
		t.Tax = Round2(t.EquipmentPrice * (quote.TaxRate / 100))
	}

	t.GrandTotal = Round2(t.Subtotal + t.Tax)
	t.TotalMargin = Round2(t.EquipmentMargin + t.LaborMargin + t.ServicesPrice)

	totalCost := t.EquipmentCost + t.LaborCost
	if totalCost > 0 {
		t.MarginPercent = Round2(t.TotalMargin / totalCost * 100)
	}

	return financials, nil
}

// computeRoom aggregates one room: equipment per system, then labor, then
// services priced off the pre-multiplication equipment price, and only then
// the room-quantity multiplication in a single pass. Multiplying earlier
// would double-count services.
func (s *FinancialsService) computeRoom(quote *models.Quote, room *models.Room) (*RoomFinancials, error) {
	if room.Quantity < 1 {
		return nil, fmt.Errorf("%w: room %q has quantity %d", ErrInvalidQuoteData, room.Name, room.Quantity)
	}

	roomData := &RoomFinancials{
		ID:       room.ID,
		Name:     room.Name,
		Quantity: room.Quantity,
		Systems:  []SystemFinancials{},
		Labor:    []LaborLine{},
		Services: []ServiceLine{},
	}

	var systems []models.System
	if err := s.db.Where("room_id = ?", room.ID).
		Order("created_at, id").Find(&systems).Error; err != nil {
		return nil, err
	}

	for _, system := range systems {
		systemData := SystemFinancials{
			ID:        system.ID,
			Name:      system.Name,
			Equipment: []EquipmentLine{},
		}

		var equipment []models.Equipment
		if err := s.db.Where("system_id = ?", system.ID).
			Order("created_at, id").Find(&equipment).Error; err != nil {
			return nil, err
		}

		for _, eq := range equipment {
			if eq.Quantity < 0 {
				return nil, fmt.Errorf("%w: equipment %q has negative quantity", ErrInvalidQuoteData, eq.ItemName)
			}
			if eq.UnitCost < 0 {
				return nil, fmt.Errorf("%w: equipment %q has negative unit cost", ErrInvalidQuoteData, eq.ItemName)
			}

			markup := EffectiveMarkup(eq.MarkupOverride, quote.EquipmentMarkupDefault)
			unitPrice := UnitPrice(eq.UnitCost, markup)
			totalCost := LineCost(eq.UnitCost, eq.Quantity)
			totalPrice := LinePrice(unitPrice, eq.Quantity)

			systemData.Equipment = append(systemData.Equipment, EquipmentLine{
				ID:            eq.ID,
				ItemName:      eq.ItemName,
				Quantity:      eq.Quantity,
				UnitCost:      Round2(eq.UnitCost),
				UnitPrice:     Round2(unitPrice),
				TotalCost:     Round2(totalCost),
				TotalPrice:    Round2(totalPrice),
				Margin:        Round2(Margin(totalPrice, totalCost)),
				MarkupPercent: Round2(markup),
				TaxExempt:     eq.TaxExempt,
			})

			systemData.EquipmentCost += totalCost
			systemData.EquipmentPrice += totalPrice
		}

		systemData.EquipmentCost = Round2(systemData.EquipmentCost)
		systemData.EquipmentPrice = Round2(systemData.EquipmentPrice)
		systemData.Margin = Round2(systemData.EquipmentPrice - systemData.EquipmentCost)

		roomData.Systems = append(roomData.Systems, systemData)
		roomData.EquipmentCost += systemData.EquipmentCost
		roomData.EquipmentPrice += systemData.EquipmentPrice
	}

	var labor []models.Labor
	if err := s.db.Where("room_id = ?", room.ID).
		Order("created_at, id").Find(&labor).Error; err != nil {
		return nil, err
	}

	for _, lb := range labor {
		if lb.Hours < 0 || lb.CostRate < 0 || lb.SellRate < 0 {
			return nil, fmt.Errorf("%w: labor %q has negative rate or hours", ErrInvalidQuoteData, lb.RoleName)
		}

		totalCost := lb.CostRate * lb.Hours
		totalPrice := lb.SellRate * lb.Hours

		roomData.Labor = append(roomData.Labor, LaborLine{
			ID:         lb.ID,
			RoleName:   lb.RoleName,
			CostRate:   lb.CostRate,
			SellRate:   lb.SellRate,
			Hours:      lb.Hours,
			TotalCost:  Round2(totalCost),
			TotalPrice: Round2(totalPrice),
			Margin:     Round2(totalPrice - totalCost),
		})

		roomData.LaborCost += totalCost
		roomData.LaborPrice += totalPrice
	}

	var svcs []models.Service
	if err := s.db.Where("room_id = ?", room.ID).
		Order("created_at, id").Find(&svcs).Error; err != nil {
		return nil, err
	}

	// Services are a percentage of the room's equipment sell price, taken
	// before the room-quantity multiplication below.
	for _, svc := range svcs {
		if svc.PercentageOfEquipment < 0 {
			return nil, fmt.Errorf("%w: service %q has negative percentage", ErrInvalidQuoteData, svc.ServiceName)
		}

		servicePrice := roomData.EquipmentPrice * (svc.PercentageOfEquipment / 100)

		roomData.Services = append(roomData.Services, ServiceLine{
			ID:              svc.ID,
			ServiceName:     svc.ServiceName,
			Percentage:      svc.PercentageOfEquipment,
			CalculatedPrice: Round2(servicePrice),
		})

		roomData.ServicesPrice += servicePrice
	}

	qty := float64(room.Quantity)
	roomData.EquipmentCost = Round2(roomData.EquipmentCost * qty)
	roomData.EquipmentPrice = Round2(roomData.EquipmentPrice * qty)
	roomData.LaborCost = Round2(roomData.LaborCost * qty)
	roomData.LaborPrice = Round2(roomData.LaborPrice * qty)
	roomData.ServicesPrice = Round2(roomData.ServicesPrice * qty)
	roomData.Subtotal = Round2(roomData.EquipmentPrice + roomData.LaborPrice + roomData.ServicesPrice)
	roomData.Margin = Round2((roomData.EquipmentPrice - roomData.EquipmentCost) +
		(roomData.LaborPrice - roomData.LaborCost) +
		roomData.ServicesPrice)

	return roomData, nil
}
