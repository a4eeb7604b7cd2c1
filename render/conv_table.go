package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/graph"
	"github.com/amrates/rateengine/ratemodel"
)

// diffDecimalPlaces is the fixed decimal-places count for the diff column.
const diffDecimalPlaces = 2

type convRow struct {
	src     ratemodel.Source
	rate    decimal.Decimal
	rateStr string
	diff    decimal.Decimal
	diffStr string
	path    []ratemodel.Currency
}

// ConversionTable builds the graph per source, enumerates all simple
// paths for the pair, ranks them and renders one row per surviving
// path. An inverted query enumerates to->from and reciprocates each
// weight, so the inverted table reports exactly the reciprocal rates of
// its non-inverted twin, in the same source order.
func ConversionTable(from, to ratemodel.Currency, rates ratemodel.SourceRates, rateType ratemodel.RateType, inverted bool) string {
	if from.IsEmpty() || to.IsEmpty() {
		return Dunno
	}

	pathFrom, pathTo := from, to
	if inverted {
		pathFrom, pathTo = to, from
	}

	less := lessFunc(inverted)

	var table []convRow
	srcWidth, rateWidth := 0, 0

	for _, src := range orderedSources(rates) {
		sourceRates := rates[src]
		g := graph.Build(sourceRates, rateType)
		paths := graph.FindAllPaths(g, pathFrom, pathTo)
		if len(paths) == 0 {
			continue
		}

		if inverted {
			kept := paths[:0]
			for _, p := range paths {
				if p.Weight.IsZero() {
					continue
				}
				p.Weight = decimal.NewFromInt(1).Div(p.Weight)
				kept = append(kept, p)
			}
			paths = kept
		}

		sort.SliceStable(paths, func(i, j int) bool { return less(paths[i].Weight, paths[j].Weight) })

		if src.IsBank() {
			paths = pruneLongerPaths(paths)
		}

		if len(src.String()) > srcWidth {
			srcWidth = len(src.String())
		}

		for _, p := range paths {
			rateStr := formatDecimal(p.Weight, rateDecimalPlaces)
			if len(rateStr) > rateWidth {
				rateWidth = len(rateStr)
			}
			table = append(table, convRow{
				src:     src,
				rate:    p.Weight,
				rateStr: rateStr,
				path:    p.Currencies,
			})
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].rate.Equal(table[j].rate) {
			return table[i].src.String() < table[j].src.String()
		}
		return less(table[i].rate, table[j].rate)
	})

	var bestBank decimal.Decimal
	for _, row := range table {
		if row.src.IsBank() {
			bestBank = row.rate
			break
		}
	}

	descending := false
	for idx, row := range table {
		if idx == 0 {
			continue
		}
		prev := table[idx-1].rate
		if prev.LessThan(row.rate) {
			break
		} else if prev.GreaterThan(row.rate) {
			descending = true
			break
		}
	}

	diffWidth := 0
	filtered := table[:0]
	for _, row := range table {
		if row.rate.IsZero() {
			continue
		}
		row.diff = bestBank.Sub(row.rate).Div(row.rate).Mul(decimal.NewFromInt(100))
		if descending && !row.diff.IsZero() {
			row.diff = row.diff.Neg()
		}
		row.diffStr = formatDecimal(row.diff, diffDecimalPlaces)
		if len(row.diffStr) > diffWidth {
			diffWidth = len(row.diffStr)
		}
		filtered = append(filtered, row)
	}
	table = filtered

	var b strings.Builder
	for _, row := range table {
		parts := make([]string, len(row.path))
		for i, c := range row.path {
			parts[i] = c.String()
		}
		fmt.Fprintf(&b, "%s %-*s | %-*s | %*s | %s\n",
			row.src.Prefix(), srcWidth, row.src.String(),
			rateWidth, row.rateStr,
			diffWidth, row.diffStr,
			strings.Join(parts, "/"))
	}
	if b.Len() == 0 {
		return Dunno
	}
	return b.String()
}

func lessFunc(inverted bool) func(a, b decimal.Decimal) bool {
	if inverted {
		return func(a, b decimal.Decimal) bool { return a.LessThan(b) }
	}
	return func(a, b decimal.Decimal) bool { return a.GreaterThan(b) }
}

// pruneLongerPaths keeps only the shortest path length present and drops
// every strictly-longer path. Banks are expected to quote a pair
// directly, so longer chains within one bank are numeric artefacts.
func pruneLongerPaths(paths []graph.Path) []graph.Path {
	if len(paths) == 0 {
		return paths
	}
	shortest := len(paths[0].Currencies)
	for _, p := range paths[1:] {
		if len(p.Currencies) < shortest {
			shortest = len(p.Currencies)
		}
	}
	kept := paths[:0]
	for _, p := range paths {
		if len(p.Currencies) == shortest {
			kept = append(kept, p)
		}
	}
	return kept
}

func orderedSources(rates ratemodel.SourceRates) []ratemodel.Source {
	out := make([]ratemodel.Source, 0, len(rates))
	for src := range rates {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
