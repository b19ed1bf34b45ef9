package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// PDFInfo describes an uploaded payload as far as it could be read.
type PDFInfo struct {
	HasMagic bool
	Pages    int
}

// LooksLikePDF reports whether data starts with the PDF header, allowing
// for leading whitespace some producers emit.
func LooksLikePDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n\x00"), pdfMagic)
}

// InspectPDF is best effort: unreadable documents report zero pages and an
// error describing why.
func InspectPDF(data []byte) (info PDFInfo, err error) {
	info.HasMagic = LooksLikePDF(data)
	if !info.HasMagic {
		return info, fmt.Errorf("missing %s header", pdfMagic)
	}

	defer func() {
		// the pdf reader panics on some malformed cross-reference tables
		if rec := recover(); rec != nil {
			info.Pages = 0
			err = fmt.Errorf("read pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return info, fmt.Errorf("read pdf: %w", err)
	}
	info.Pages = reader.NumPage()
	return info, nil
}
