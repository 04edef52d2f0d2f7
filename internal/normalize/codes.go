package normalize

import (
	"strings"

	"golang.org/x/text/width"
)

// NormalizeCode trims whitespace and folds full-width digits and letters to
// ASCII, so "１５０２８５０１０" and "150285010" compare equal.
func NormalizeCode(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return width.Narrow.String(s)
}
