package exports

import (
	"fmt"
	"sort"
	"strings"

	"invoice-backend/internal/extraction"
)

// Mode selects how documents are projected into rows.
type Mode string

const (
	ModeFixed   Mode = "fixed"
	ModeDynamic Mode = "dynamic"
)

// ParseMode maps a configuration or query value to a Mode. Blank means fixed.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ModeFixed):
		return ModeFixed, nil
	case string(ModeDynamic):
		return ModeDynamic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellText
	cellNumber
)

// Cell is one spreadsheet value: empty, text or number.
type Cell struct {
	kind   cellKind
	text   string
	number float64
}

// Empty returns a blank cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell. An empty string yields a blank cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{kind: cellText, text: s}
}

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{kind: cellNumber, number: v} }

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool { return c.kind == cellEmpty }

// Value returns nil, a string or a float64.
func (c Cell) Value() any {
	switch c.kind {
	case cellText:
		return c.text
	case cellNumber:
		return c.number
	default:
		return nil
	}
}

// Row is an ordered list of cells aligned to a column set.
type Row []Cell

type fieldShape int

const (
	shapeText fieldShape = iota
	shapeDate
	shapeMoney
)

type fixedField struct {
	name  string
	shape fieldShape
}

var fixedFields = []fixedField{
	{"InvoiceId", shapeText},
	{"VendorAddressRecipient", shapeText},
	{"CustomerAddressRecipient", shapeText},
	{"VendorTaxId", shapeText},
	{"CustomerTaxId", shapeText},
	{"InvoiceDate", shapeDate},
	{"DueDate", shapeDate},
	{"InvoiceTotal", shapeMoney},
	{"SubTotal", shapeMoney},
	{"TotalTax", shapeMoney},
}

// FixedColumns is the stable invoice column set.
func FixedColumns() []string {
	cols := make([]string, 0, 23)
	for _, f := range fixedFields {
		if f.shape == shapeMoney {
			cols = append(cols, f.name+"_amount", f.name+"_currencyCode", f.name+"_confidence")
			continue
		}
		cols = append(cols, f.name, f.name+"_confidence")
	}
	return cols
}

// ProjectFixed projects one document onto FixedColumns.
func ProjectFixed(doc extraction.Document) Row {
	row := make(Row, 0, 23)
	for _, col := range fixedFields {
		f := extraction.GetField(doc, col.name)
		switch col.shape {
		case shapeText:
			row = append(row, Text(extraction.ValueString(f)))
		case shapeDate:
			row = append(row, Text(extraction.ValueDate(f)))
		case shapeMoney:
			if amount, ok := extraction.ValueCurrencyAmount(f); ok {
				row = append(row, Number(amount))
			} else {
				row = append(row, Empty())
			}
			row = append(row, Text(extraction.ValueCurrencyCode(f)))
		}
		row = append(row, confidenceCell(f))
	}
	return row
}

// DynamicColumns is the sorted union of field names across docs.
func DynamicColumns(docs []extraction.Document) []string {
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for name := range doc {
			seen[name] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for name := range seen {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}

// ProjectDynamic emits the scalar value of each column for doc.
func ProjectDynamic(doc extraction.Document, columns []string) Row {
	row := make(Row, len(columns))
	for i, name := range columns {
		row[i] = scalarCell(extraction.GetField(doc, name))
	}
	return row
}

// Project returns the column set and rows for docs under mode.
func Project(mode Mode, docs []extraction.Document) ([]string, []Row) {
	rows := make([]Row, 0, len(docs))
	if mode == ModeDynamic {
		cols := DynamicColumns(docs)
		for _, doc := range docs {
			rows = append(rows, ProjectDynamic(doc, cols))
		}
		return cols, rows
	}
	for _, doc := range docs {
		rows = append(rows, ProjectFixed(doc))
	}
	return FixedColumns(), rows
}

// scalarCell picks content, then valueString, valueNumber, valueDate and
// finally the currency amount.
func scalarCell(f extraction.Field) Cell {
	if content, ok := extraction.Content(f); ok && content != "" {
		return Text(content)
	}
	if s := extraction.ValueString(f); s != "" {
		return Text(s)
	}
	if n, ok := extraction.ValueNumber(f); ok {
		return Number(n)
	}
	if d := extraction.ValueDate(f); d != "" {
		return Text(d)
	}
	if amount, ok := extraction.ValueCurrencyAmount(f); ok {
		return Number(amount)
	}
	return Empty()
}

func confidenceCell(f extraction.Field) Cell {
	if c, ok := extraction.Confidence(f); ok {
		return Number(c)
	}
	return Empty()
}
