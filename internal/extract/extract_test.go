package extract

import (
	"bytes"
	"fmt"
	"testing"
)

// buildPDF writes a minimal document with n blank pages and a valid xref table.
func buildPDF(n int) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	kids := ""
	for i := 0; i < n; i++ {
		kids += fmt.Sprintf("%d 0 R ", 3+i)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, n))
	for i := 0; i < n; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestInspectPDFCountsPages(t *testing.T) {
	info, err := InspectPDF(buildPDF(3))
	if err != nil {
		t.Fatalf("InspectPDF: %v", err)
	}
	if !info.HasMagic || info.Pages != 3 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestInspectPDFIsBestEffort(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantMagic bool
	}{
		{name: "not a pdf", data: []byte("hello world"), wantMagic: false},
		{name: "empty", data: nil, wantMagic: false},
		{name: "header only", data: []byte("%PDF-1.7\n garbage without xref"), wantMagic: true},
		{name: "truncated", data: buildPDF(2)[:60], wantMagic: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := InspectPDF(tt.data)
			if err == nil {
				t.Fatalf("expected error")
			}
			if info.Pages != 0 {
				t.Fatalf("expected 0 pages, got %d", info.Pages)
			}
			if info.HasMagic != tt.wantMagic {
				t.Fatalf("HasMagic = %v, want %v", info.HasMagic, tt.wantMagic)
			}
		})
	}
}

func TestLooksLikePDF(t *testing.T) {
	if !LooksLikePDF([]byte("\r\n%PDF-1.4")) {
		t.Fatalf("leading whitespace should be tolerated")
	}
	if LooksLikePDF([]byte("PK\x03\x04")) {
		t.Fatalf("zip must not look like pdf")
	}
}
