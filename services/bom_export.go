package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportExcel renders a compiled bill of materials as an xlsx workbook and
// returns the file contents.
func (s *BOMService) ExportExcel(bom *BillOfMaterials) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bill of Materials"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Title block
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	f.SetCellValue(sheetName, "A1", "Bill of Materials - "+bom.QuoteName)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetCellValue(sheetName, "A2", "Client: "+bom.ClientName)
	f.SetCellValue(sheetName, "A3", "Generated: "+bom.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	// Column header style: bold on a light blue fill
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#CCE5FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	headers := []string{"Item Name", "Description", "Vendor", "Total Quantity", "Unit Cost", "Total Cost", "Locations"}
	headerRow := 5
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := headerRow + 1
	for _, item := range bom.Items {
		locations := make([]string, 0, len(item.Locations))
		for _, loc := range item.Locations {
			locations = append(locations,
				fmt.Sprintf("%s (%s): %dx%d", loc.Room, loc.System, loc.Quantity, loc.RoomQuantity))
		}

		values := []interface{}{
			item.ItemName,
			item.Description,
			item.Vendor,
			item.Quantity,
			item.UnitCost,
			Round2(float64(item.Quantity) * item.UnitCost),
			strings.Join(locations, "; "),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, v)
		}
		row++
	}

	// Totals row
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create totals style: %w", err)
	}
	row++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "TOTALS")
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), bom.TotalQuantity)
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), bom.TotalCost)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), boldStyle)

	widths := []float64{30, 40, 20, 15, 12, 12, 50}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
