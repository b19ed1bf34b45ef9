// Package extraction reads the loosely typed field maps produced by the
// document analysis service. Every accessor is total: malformed or missing
// data yields a zero value, never an error or a panic.
package extraction

import (
	"strconv"
)

// Kind identifies which value slot of a Field is populated.
type Kind int

const (
	// KindAbsent means no value slot is populated. The field itself may still
	// be present in the document; see Field.Present.
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindDate
	KindCurrency
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindCurrency:
		return "currency"
	default:
		return "absent"
	}
}

// Currency is the valueCurrency slot.
type Currency struct {
	Amount    float64
	HasAmount bool
	Code      string
}

// Field is one extracted value. At most one of Text, Number, Date or
// Currency is meaningful, as reported by Kind.
type Field struct {
	Kind     Kind
	Text     string
	Number   float64
	Date     string
	Currency Currency

	content       string
	hasContent    bool
	confidence    float64
	hasConfidence bool
	present       bool
}

// Present reports whether the field name existed in the document, even when
// it carried no value.
func (f Field) Present() bool {
	return f.present
}

// GetField returns the named field, or an absent Field.
func GetField(doc Document, name string) Field {
	if doc == nil {
		return Field{}
	}
	return doc[name]
}

// ValueString returns the valueString slot or "".
func ValueString(f Field) string {
	if f.Kind != KindText {
		return ""
	}
	return f.Text
}

// ValueDate returns the ISO date (YYYY-MM-DD) or "".
func ValueDate(f Field) string {
	if f.Kind != KindDate {
		return ""
	}
	return f.Date
}

// ValueNumber returns the valueNumber slot.
func ValueNumber(f Field) (float64, bool) {
	if f.Kind != KindNumber {
		return 0, false
	}
	return f.Number, true
}

// ValueCurrencyAmount returns valueCurrency.amount.
func ValueCurrencyAmount(f Field) (float64, bool) {
	if f.Kind != KindCurrency || !f.Currency.HasAmount {
		return 0, false
	}
	return f.Currency.Amount, true
}

// FormatCurrencyAmount renders the amount for display, "" when missing.
func FormatCurrencyAmount(f Field) string {
	amount, ok := ValueCurrencyAmount(f)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// ValueCurrencyCode returns valueCurrency.currencyCode or "".
func ValueCurrencyCode(f Field) string {
	if f.Kind != KindCurrency {
		return ""
	}
	return f.Currency.Code
}

// Content returns the raw text the service read for the field.
func Content(f Field) (string, bool) {
	return f.content, f.hasContent
}

// Confidence returns the score in [0,1].
func Confidence(f Field) (float64, bool) {
	return f.confidence, f.hasConfidence
}
