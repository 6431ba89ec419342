package core

import (
	"fmt"
	"strings"
)

// IntToStringFixedWidth left-pads num with spaces to the given width.
// Longer numbers are not truncated.
func IntToStringFixedWidth(num int, width int) string {
	return fmt.Sprintf("%*d", width, num)
}

// FormatHexes joins hexes as "(q,r) (q,r)" for log fields
func FormatHexes(hexes []Hex) string {
	if len(hexes) == 0 {
		return ""
	}
	parts := make([]string, len(hexes))
	for i, h := range hexes {
		parts[i] = h.String()
	}
	return strings.Join(parts, " ")
}

// ContainsHex reports whether h is in hexes
func ContainsHex(hexes []Hex, h Hex) bool {
	for _, x := range hexes {
		if x == h {
			return true
		}
	}
	return false
}
