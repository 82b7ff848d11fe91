package skipgram

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeCode trims a raw code cell and folds compatibility characters so
// full-width digits from spreadsheet exports match their ASCII form.
func NormalizeCode(code string) string {
	return strings.TrimSpace(norm.NFKC.String(cleanCell(code)))
}

// NormalizeDescription performs Unicode normalization and collapses every run of
// whitespace, including line breaks, into a single space so a description always
// fits on one output line.
func NormalizeDescription(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.Join(strings.Fields(normed), " ")
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}
