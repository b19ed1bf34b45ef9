package exports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the only sheet in an export workbook.
const SheetName = "Invoices"

// Render writes columns as the header row followed by one row per entry.
func Render(columns []string, rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for r, row := range rows {
		for c, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, name, cell.Value()); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", name, err)
			}
		}
	}

	if len(columns) > 0 {
		last, err := excelize.ColumnNumberToName(len(columns))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, "A", last, 18); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
		if err := f.SetPanes(SheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("freeze header: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
