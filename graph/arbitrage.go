package graph

import (
	"math"

	"github.com/amrates/rateengine/ratemodel"
)

const arbitrageEpsilon = 1e-8

// bfEdge is a Bellman-Ford edge over currency indices, in log-space.
type bfEdge struct {
	from, to int
	weight   float64
}

// DetectArbitrage restricts to rates with RateType == target and reports
// whether the resulting graph, in log-space, contains a negative cycle:
// a risk-free round-trip where the product of rates exceeds 1. Cb rates
// are never included, unlike Build - a central-bank spread against a
// provider is not provider-internal arbitrage.
//
// IEEE-754 is used here, and only here; Bellman-Ford relaxation over
// logarithms has no practical decimal analogue.
func DetectArbitrage(rates []ratemodel.Rate, target ratemodel.RateType) bool {
	filtered := make([]ratemodel.Rate, 0, len(rates))
	for _, r := range rates {
		if r.RateType == target {
			filtered = append(filtered, r)
		}
	}

	indices := make(map[ratemodel.Currency]int)
	order := make([]ratemodel.Currency, 0)
	indexOf := func(c ratemodel.Currency) int {
		if idx, ok := indices[c]; ok {
			return idx
		}
		idx := len(order)
		indices[c] = idx
		order = append(order, c)
		return idx
	}
	for _, r := range filtered {
		indexOf(r.From)
		indexOf(r.To)
	}
	if len(order) == 0 {
		return false
	}

	var edges []bfEdge
	for _, r := range filtered {
		from := indices[r.From]
		to := indices[r.To]
		if r.Buy != nil && r.Buy.IsPositive() {
			buy, _ := r.Buy.Float64()
			edges = append(edges, bfEdge{from: from, to: to, weight: -math.Log(buy)})
		}
		if r.Sell != nil && r.Sell.IsPositive() {
			sell, _ := r.Sell.Float64()
			edges = append(edges, bfEdge{from: to, to: from, weight: math.Log(sell)})
		}
	}

	dist := make([]float64, len(order))
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[0] = 0

	for i := 0; i < len(order)-1; i++ {
		for _, e := range edges {
			if dist[e.from]+e.weight < dist[e.to]-arbitrageEpsilon {
				dist[e.to] = dist[e.from] + e.weight
			}
		}
	}

	for _, e := range edges {
		if dist[e.from]+e.weight < dist[e.to]-arbitrageEpsilon {
			return true
		}
	}
	return false
}
