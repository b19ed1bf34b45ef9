package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	unsafeRun     = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// SlugifyFileName turns an arbitrary client file name into a blob-safe name:
// only the base name is kept, accents are folded to ASCII and every other
// character outside [A-Za-z0-9._-] collapses into a single underscore.
// The result is never empty.
func SlugifyFileName(name string) string {
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}

	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}

	s := unsafeRun.ReplaceAllString(b.String(), "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._-")
	if s == "" {
		return "file"
	}
	return s
}
