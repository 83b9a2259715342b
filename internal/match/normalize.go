package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds case and drops word separators, so "Order_Id",
// "order-id" and "orderId" compare equal. Dots are kept: they separate
// path segments.
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
