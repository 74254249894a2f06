// Package numeric canonicalizes user-entered numeric strings before any
// arithmetic. Values arrive from the API and from free-form form fields, with
// locale separators ("1 234,56"), stray symbols, or nothing at all; every
// parser here maps bad input to zero instead of failing.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts raw user input into a decimal. Whitespace is ignored, both
// "," and "." are accepted as the decimal separator, thousands groups are
// dropped. Empty or unparseable input yields zero, never an error.
func Parse(raw string) decimal.Decimal {
	cleaned := canonicalize(raw)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParsePercent is Parse with one optional trailing "%". "10%" and "10"
// normalize identically.
func ParsePercent(raw string) decimal.Decimal {
	return Parse(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
}

// Round2 applies the 2-decimal rounding used by every monetary and weight
// invariant in the engine.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Fixed2 renders a value in the canonical "12.34" wire form.
func Fixed2(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// canonicalize keeps the numeric runes and resolves the separator ambiguity:
// whichever of "," and "." appears last is the decimal point, everything
// before it is grouping.
func canonicalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' || r == '+' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return ""
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	if strings.Count(s, ".") > 1 {
		last := strings.LastIndex(s, ".")
		intPart := strings.ReplaceAll(s[:last], ".", "")
		s = intPart + s[last:]
	}

	return s
}
