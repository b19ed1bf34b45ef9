package util

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugifyFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "invoice.pdf", want: "invoice.pdf"},
		{name: "unix path", in: "/tmp/uploads/invoice.pdf", want: "invoice.pdf"},
		{name: "windows path", in: `C:\Users\me\számla 2024.pdf`, want: "szamla_2024.pdf"},
		{name: "accents", in: "Árvíztűrő tükörfúrógép.pdf", want: "Arvizturo_tukorfurogep.pdf"},
		{name: "collapse", in: "a  &&  b.pdf", want: "a_b.pdf"},
		{name: "trim edges", in: "..__-report-__..", want: "report"},
		{name: "only unsafe", in: "日本語", want: "file"},
		{name: "empty", in: "", want: "file"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SlugifyFileName(tt.in); got != tt.want {
				t.Fatalf("SlugifyFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyFileNameOnlySafeCharacters(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	inputs := []string{
		"../../etc/passwd",
		`..\..\boot.ini`,
		"naïve café/ménü.pdf",
		"emoji 🎉 invoice.pdf",
		"tab\tand\nnewline.pdf",
		"  spaces  ",
		"ﬁle.pdf",
	}
	for _, in := range inputs {
		got := SlugifyFileName(in)
		if strings.ContainsAny(got, `\/`) {
			t.Fatalf("SlugifyFileName(%q) = %q contains a path separator", in, got)
		}
		if !safe.MatchString(got) {
			t.Fatalf("SlugifyFileName(%q) = %q contains unsafe characters", in, got)
		}
	}
}
