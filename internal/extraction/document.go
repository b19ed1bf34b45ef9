package extraction

import (
	"sort"

	"github.com/tidwall/gjson"
)

// Document maps field names to fields for one analyzed document.
type Document map[string]Field

// Names returns the document's field names in byte order.
func (d Document) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseResultFile extracts analyzeResult.documents[0].fields from a result
// file body. It reports false when the body is not JSON, the documents list
// is missing or empty, or fields is not an object. Entries whose value is not
// an object are not fields and are left out; a document with no fields left
// also reports false.
func ParseResultFile(raw []byte) (Document, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}
	docs := gjson.GetBytes(raw, "analyzeResult.documents")
	if !docs.IsArray() {
		return nil, false
	}
	list := docs.Array()
	if len(list) == 0 {
		return nil, false
	}
	fields := list[0].Get("fields")
	if !fields.IsObject() {
		return nil, false
	}

	doc := make(Document)
	fields.ForEach(func(key, value gjson.Result) bool {
		if value.IsObject() {
			doc[key.String()] = parseField(value)
		}
		return true
	})
	if len(doc) == 0 {
		return nil, false
	}
	return doc, true
}

var slotOrder = []string{"valueString", "valueNumber", "valueInteger", "valueDate", "valueCurrency"}

var slotForType = map[string]string{
	"string":   "valueString",
	"number":   "valueNumber",
	"integer":  "valueInteger",
	"date":     "valueDate",
	"currency": "valueCurrency",
}

func parseField(res gjson.Result) Field {
	f := Field{present: true}

	if c := res.Get("content"); c.Type == gjson.String {
		f.content = c.String()
		f.hasContent = true
	}
	if c := res.Get("confidence"); c.Type == gjson.Number {
		if v := c.Float(); v >= 0 && v <= 1 {
			f.confidence = v
			f.hasConfidence = true
		}
	}

	order := slotOrder
	if declared, ok := slotForType[res.Get("type").String()]; ok {
		order = append([]string{declared}, slotOrder...)
	}
	for _, slot := range order {
		if fillSlot(&f, slot, res.Get(slot)) {
			break
		}
	}
	return f
}

func fillSlot(f *Field, slot string, v gjson.Result) bool {
	switch slot {
	case "valueString":
		if v.Type == gjson.String {
			f.Kind, f.Text = KindText, v.String()
			return true
		}
	case "valueNumber", "valueInteger":
		if v.Type == gjson.Number {
			f.Kind, f.Number = KindNumber, v.Float()
			return true
		}
	case "valueDate":
		if v.Type == gjson.String {
			f.Kind, f.Date = KindDate, v.String()
			return true
		}
	case "valueCurrency":
		if !v.IsObject() {
			return false
		}
		amount := v.Get("amount")
		code := v.Get("currencyCode")
		if amount.Type != gjson.Number && code.Type != gjson.String {
			return false
		}
		f.Kind = KindCurrency
		if amount.Type == gjson.Number {
			f.Currency.Amount = amount.Float()
			f.Currency.HasAmount = true
		}
		if code.Type == gjson.String {
			f.Currency.Code = code.String()
		}
		return true
	}
	return false
}
