package render

import (
	"fmt"
	"strings"

	"github.com/amrates/rateengine/ratemodel"
)

// rateDecimalPlaces is the fixed decimal-places count used throughout
// the renderer.
const rateDecimalPlaces = 4

// noRate is rendered for an absent Buy or Sell side.
const noRate = "-"

// SourceTable renders one source's buy/sell columns for the requested
// rate type. If src is the central bank, the rate type is overridden to
// Cb.
func SourceTable(src ratemodel.Source, rates ratemodel.SourceRates, rateType ratemodel.RateType) string {
	sourceRates, ok := rates[src]
	if !ok {
		return Dunno
	}

	if src == ratemodel.Cb {
		rateType = ratemodel.CbRate
	}

	type row struct {
		buyStr, sellStr string
		from, to        ratemodel.Currency
	}

	var rows []row
	buyWidth, sellWidth := 0, 0
	for _, r := range sourceRates {
		if r.RateType != rateType {
			continue
		}
		buyStr := noRate
		if r.Buy != nil {
			buyStr = formatDecimal(*r.Buy, rateDecimalPlaces)
		}
		sellStr := noRate
		if r.Sell != nil {
			sellStr = formatDecimal(*r.Sell, rateDecimalPlaces)
		}
		if len(buyStr) > buyWidth {
			buyWidth = len(buyStr)
		}
		if len(sellStr) > sellWidth {
			sellWidth = len(sellStr)
		}
		rows = append(rows, row{buyStr: buyStr, sellStr: sellStr, from: r.From, to: r.To})
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s | %-*s | %s/%s\n", buyWidth, r.buyStr, sellWidth, r.sellStr, r.from, r.to)
	}
	if b.Len() == 0 {
		return Dunno
	}
	return b.String()
}
