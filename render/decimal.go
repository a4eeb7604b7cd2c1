package render

import "github.com/shopspring/decimal"

// formatDecimal rounds v to dp places (decimal's Round is half away
// from zero), then trims trailing zeros and a bare trailing decimal
// point.
func formatDecimal(v decimal.Decimal, dp int32) string {
	s := v.Round(dp).String()
	if !containsDot(s) {
		return s
	}
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	return s[:end]
}

func containsDot(s string) bool {
	for _, r := range s {
		if r == '.' {
			return true
		}
	}
	return false
}
