package utils

import (
	"strings"
)

const byteOrderMark = "\ufeff"

// CleanHeader normalizes a CSV header name: BOM and surrounding whitespace
// trimmed, all quotes removed.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, byteOrderMark)
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, `"`, "")
}
