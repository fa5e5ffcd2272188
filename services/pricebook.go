package services

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"avquotes-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// WorkbookInfo describes an uploaded vendor price sheet before mapping
type WorkbookInfo struct {
	Headers  []string `json:"headers"`
	RowCount int      `json:"row_count"`
}

// ColumnMapping names which spreadsheet column feeds which vendor price
// field. Only item_name and price are required.
type ColumnMapping struct {
	ItemName    string `json:"item_name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Model       string `json:"model"`
}

// ImportResult summarizes a mapped import run
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// PriceBookService manages the vendor price list: Excel import, search and
// scheduled expiry of stale prices.
type PriceBookService struct {
	db *gorm.DB
}

func NewPriceBookService(db *gorm.DB) *PriceBookService {
	return &PriceBookService{db: db}
}

// InspectWorkbook opens an uploaded xlsx and returns its header row and data
// row count so the client can build a column mapping.
func (s *PriceBookService) InspectWorkbook(r io.Reader) (*WorkbookInfo, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return &WorkbookInfo{Headers: []string{}}, nil
	}
	return &WorkbookInfo{Headers: rows[0], RowCount: len(rows) - 1}, nil
}

// ImportMapped reads an uploaded xlsx and inserts one vendor price per data
// row using the given column mapping. Rows that fail to parse are skipped
// and reported; at most the first 10 row errors are returned.
func (s *PriceBookService) ImportMapped(r io.Reader, mapping ColumnMapping, vendor string, departmentID *uuid.UUID, allDepartments bool, expiration *time.Time) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook must contain a header row and at least one data row")
	}

	headers := rows[0]
	columnIndex := func(name string) int {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
		return -1
	}

	itemCol := columnIndex(mapping.ItemName)
	priceCol := columnIndex(mapping.Price)
	descCol := columnIndex(mapping.Description)
	modelCol := columnIndex(mapping.Model)
	if itemCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("mapping must name existing item_name and price columns")
	}

	cellAt := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	result := &ImportResult{}
	var rowErrors []string

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		itemName := cellAt(row, itemCol)
		priceRaw := cellAt(row, priceCol)
		if itemName == "" || priceRaw == "" {
			continue
		}

		cost, err := strconv.ParseFloat(strings.ReplaceAll(priceRaw, ",", ""), 64)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid price %q", rowNum, priceRaw))
			continue
		}
		if cost < 0 {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: negative price", rowNum))
			continue
		}

		price := models.VendorPrice{
			ItemName:       itemName,
			Model:          cellAt(row, modelCol),
			Cost:           cost,
			Description:    cellAt(row, descCol),
			Vendor:         vendor,
			DepartmentID:   departmentID,
			AllDepartments: allDepartments,
			ExpirationDate: expiration,
		}
		if err := s.db.Create(&price).Error; err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		result.Imported++
	}

	if len(rowErrors) > 10 {
		rowErrors = rowErrors[:10]
	}
	result.Errors = rowErrors
	return result, nil
}

// Search finds vendor prices whose item name or description contains the
// query, newest imports first.
func (s *PriceBookService) Search(query string, limit int) ([]models.VendorPrice, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + query + "%"
	var prices []models.VendorPrice
	err := s.db.Where("item_name LIKE ? OR description LIKE ?", pattern, pattern).
		Order("imported_at DESC").Limit(limit).Find(&prices).Error
	return prices, err
}

// PurgeExpired deletes vendor prices whose expiration date has passed and
// returns how many were removed.
func (s *PriceBookService) PurgeExpired() (int64, error) {
	res := s.db.Where("expiration_date IS NOT NULL AND expiration_date < ?", time.Now()).
		Delete(&models.VendorPrice{})
	return res.RowsAffected, res.Error
}

// StartExpiryScheduler purges expired vendor prices once a day at 6 AM.
func (s *PriceBookService) StartExpiryScheduler() {
	c := cron.New()

	c.AddFunc("0 6 * * *", func() {
		purged, err := s.PurgeExpired()
		if err != nil {
			log.Printf("Vendor price purge failed: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d expired vendor prices", purged)
		}
	})

	c.Start()
	log.Println("Vendor price expiry scheduler started")
}
