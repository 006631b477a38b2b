package schema

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ShortAuthor formats a worklog author for tooltips: "Alice Moreau" becomes "Alice M".
// Single names and bot accounts (containing "[bot]") are returned as-is.
func ShortAuthor(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "[bot]") {
		return strings.Join(strings.Fields(trimmed), " ")
	}

	trimmed = strings.Trim(trimmed, "()\"'`")
	var parts []string
	for _, p := range strings.Fields(trimmed) {
		p = strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '-' && r != '\'' && r != '.'
		})
		p = strings.TrimSuffix(p, ".")
		if p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return trimmed
	case 1:
		return parts[0]
	}
	last := []rune(parts[len(parts)-1])
	return parts[0] + " " + string(last[0])
}

// FormatHours renders a duration as decimal hours ("1.5h"), trimming trailing zeros.
func FormatHours(d time.Duration) string {
	s := strconv.FormatFloat(d.Hours(), 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		s = "0"
	}
	return s + "h"
}
