package slips

import (
	"regexp"
	"strconv"
	"strings"
)

var kgSuffixPattern = regexp.MustCompile(`(?i)\s*kg\s*$`)

// ParseWeight parses a weight cell into kilograms. Marketplace exports are
// messy here: "2,5 kg", "1.2KG", "2.5 kg/unit", blanks. Only the leading
// numeric run counts; anything unparseable counts as zero rather than
// failing the row.
func ParseWeight(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	s = kgSuffixPattern.ReplaceAllString(s, "")
	s = strings.Replace(s, ",", ".", 1)

	value, ok := leadingFloat(strings.TrimSpace(s))
	if !ok || value < 0 {
		return 0
	}

	return value
}

// leadingFloat parses the longest numeric prefix: optional sign, digits,
// at most one decimal point. "1.234.5" yields 1.234.
func leadingFloat(s string) (float64, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := false
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits = true
		}
	}
	if !digits {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// ParseQuantity parses a quantity cell, taking the leading integer run so
// values like "2 pcs" still count. Unparseable or empty input defaults to 1.
func ParseQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 1
	}

	return n
}
