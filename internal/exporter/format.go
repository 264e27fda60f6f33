package exporter

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat formats a float64 for CSV output the way the downstream
// spreadsheets expect: shortest round-trip digits, a trailing ".0" on
// integral values, exponent form outside [1e-4, 1e16), and "" for NaN.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatNullable formats an optional float, nil becoming an empty cell
func FormatNullable(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}
