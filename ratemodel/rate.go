package ratemodel

import "github.com/shopspring/decimal"

// Rate is one quote: the source buys one unit of From for Buy units of
// To, and sells one unit of From for Sell units of To. Either side may
// be absent; adapters leave it nil rather than fabricate a zero.
//
// All arithmetic on Buy/Sell is decimal. Binary floats appear only
// inside the arbitrage detector's log-space relaxation (see
// graph.DetectArbitrage).
type Rate struct {
	From     Currency
	To       Currency
	RateType RateType
	Buy      *decimal.Decimal
	Sell     *decimal.Decimal
}

// SourceRates is the logical Source -> []Rate mapping the collector
// produces and the store holds.
type SourceRates map[Source][]Rate

// HasUsableSide reports whether at least one of Buy/Sell is present and
// strictly positive.
func (r Rate) HasUsableSide() bool {
	return sidePositive(r.Buy) || sidePositive(r.Sell)
}

func sidePositive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
