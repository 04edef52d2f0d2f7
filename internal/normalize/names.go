package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var multiSpace = regexp.MustCompile(`[\s　]+`)

// NormalizeName folds full-width ASCII to half-width, collapses runs of
// whitespace (including the ideographic space) and trims the result.
// Half-width katakana is widened.
func NormalizeName(s string) string {
	s = width.Fold.String(s)
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
