// Package graph builds a per-source currency graph from a flat rate list
// and answers two questions over it: every simple path between two
// currencies, and whether the graph contains a negative cycle in
// log-space (an arbitrage opportunity).
package graph

import (
	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// Edge is one directed, weighted connection in the graph.
type Edge struct {
	To     ratemodel.Currency
	Weight decimal.Decimal
}

// Graph is a directed multigraph keyed by currency, built fresh per
// query and discarded.
type Graph map[ratemodel.Currency][]Edge

// Build includes every rate whose RateType matches target or is Cb, so the
// central-bank reference is always available as a fall-back edge. For a
// positive Buy it adds From->To weighted Buy; for a positive Sell it adds
// To->From weighted 1/Sell.
func Build(rates []ratemodel.Rate, target ratemodel.RateType) Graph {
	g := make(Graph)
	addEdge := func(from, to ratemodel.Currency, weight decimal.Decimal) {
		g[from] = append(g[from], Edge{To: to, Weight: weight})
	}
	for _, r := range rates {
		if r.RateType != target && r.RateType != ratemodel.CbRate {
			continue
		}
		if r.Buy != nil && r.Buy.IsPositive() {
			addEdge(r.From, r.To, *r.Buy)
		}
		if r.Sell != nil && r.Sell.IsPositive() {
			addEdge(r.To, r.From, decimal.NewFromInt(1).Div(*r.Sell))
		}
	}
	return g
}

// Path is one completed traversal: the ordered currencies visited and the
// cumulative product of edge weights along it.
type Path struct {
	Currencies []ratemodel.Currency
	Weight     decimal.Decimal
}

// FindAllPaths enumerates every simple path from `from` to `to` via
// depth-first search, never revisiting a vertex already on the current
// path. Deterministic given an insertion-ordered adjacency list (Go map
// iteration is not insertion-ordered, so Build records per-vertex edges in
// a slice preserving insertion order, and FindAllPaths walks that slice in
// order).
func FindAllPaths(g Graph, from, to ratemodel.Currency) []Path {
	var paths []Path
	visited := make(map[ratemodel.Currency]bool)
	var path []ratemodel.Currency
	dfs(g, from, to, visited, &path, &paths, decimal.NewFromInt(1))
	return paths
}

func dfs(g Graph, from, to ratemodel.Currency, visited map[ratemodel.Currency]bool, path *[]ratemodel.Currency, paths *[]Path, weight decimal.Decimal) {
	visited[from] = true
	*path = append(*path, from)

	if from.Equal(to) {
		cp := make([]ratemodel.Currency, len(*path))
		copy(cp, *path)
		*paths = append(*paths, Path{Currencies: cp, Weight: weight})
	} else {
		for _, edge := range g[from] {
			if visited[edge.To] {
				continue
			}
			dfs(g, edge.To, to, visited, path, paths, weight.Mul(edge.Weight))
		}
	}

	*path = (*path)[:len(*path)-1]
	delete(visited, from)
}
