package graph

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrates/rateengine/ratemodel"
)

func rate(from, to string, rt ratemodel.RateType, buy, sell string) ratemodel.Rate {
	r := ratemodel.Rate{
		From:     ratemodel.NewCurrency(from),
		To:       ratemodel.NewCurrency(to),
		RateType: rt,
	}
	if buy != "" {
		d := decimal.RequireFromString(buy)
		r.Buy = &d
	}
	if sell != "" {
		d := decimal.RequireFromString(sell)
		r.Sell = &d
	}
	return r
}

func TestBuildEdgeWeights(t *testing.T) {
	g := Build([]ratemodel.Rate{rate("USD", "AMD", ratemodel.NoCash, "384", "390")}, ratemodel.NoCash)

	usd := ratemodel.NewCurrency("USD")
	amd := ratemodel.NewCurrency("AMD")

	require.Len(t, g[usd], 1)
	assert.True(t, g[usd][0].To.Equal(amd))
	assert.True(t, g[usd][0].Weight.Equal(decimal.RequireFromString("384")))

	require.Len(t, g[amd], 1)
	assert.True(t, g[amd][0].To.Equal(usd))
	assert.True(t, g[amd][0].Weight.Equal(decimal.NewFromInt(1).Div(decimal.NewFromInt(390))))
}

func TestBuildSkipsAbsentAndNonPositiveSides(t *testing.T) {
	zero := decimal.Zero
	neg := decimal.NewFromInt(-5)
	g := Build([]ratemodel.Rate{
		{From: ratemodel.NewCurrency("USD"), To: ratemodel.Default(), RateType: ratemodel.NoCash, Buy: &zero, Sell: &neg},
		{From: ratemodel.NewCurrency("EUR"), To: ratemodel.Default(), RateType: ratemodel.NoCash},
	}, ratemodel.NoCash)
	assert.Empty(t, g)
}

func TestBuildIncludesCbAsFallback(t *testing.T) {
	g := Build([]ratemodel.Rate{
		rate("USD", "AMD", ratemodel.CbRate, "387", "387"),
		rate("EUR", "AMD", ratemodel.Cash, "425", "437"),
	}, ratemodel.NoCash)

	// The Cb rate contributes edges even for a NoCash query; the Cash
	// rate does not.
	assert.Len(t, g[ratemodel.NewCurrency("USD")], 1)
	assert.Empty(t, g[ratemodel.NewCurrency("EUR")])
}

func TestFindAllPathsEnumeratesSimplePaths(t *testing.T) {
	// USD -> AMD directly and via EUR: both legs of the EUR hop are buy
	// edges (USD -> EUR, then EUR -> AMD).
	rates := []ratemodel.Rate{
		rate("USD", "AMD", ratemodel.NoCash, "384", "390"),
		rate("EUR", "AMD", ratemodel.NoCash, "425", "437"),
		rate("USD", "EUR", ratemodel.NoCash, "0.9", "0.92"),
	}
	g := Build(rates, ratemodel.NoCash)

	paths := FindAllPaths(g, ratemodel.NewCurrency("USD"), ratemodel.Default())
	require.Len(t, paths, 2)

	byLen := map[int]Path{}
	for _, p := range paths {
		assert.True(t, p.Currencies[0].Equal(ratemodel.NewCurrency("USD")))
		assert.True(t, p.Currencies[len(p.Currencies)-1].Equal(ratemodel.Default()))
		seen := map[string]bool{}
		for _, c := range p.Currencies {
			assert.False(t, seen[c.String()], "path revisits %s", c)
			seen[c.String()] = true
		}
		byLen[len(p.Currencies)] = p
	}

	direct, ok := byLen[2]
	require.True(t, ok)
	assert.True(t, direct.Weight.Equal(decimal.RequireFromString("384")))

	viaEur, ok := byLen[3]
	require.True(t, ok)
	// USD -> EUR (buy 0.9), EUR -> AMD (buy 425).
	assert.True(t, viaEur.Weight.Equal(decimal.RequireFromString("0.9").Mul(decimal.RequireFromString("425"))))
}

func TestFindAllPathsNoRoute(t *testing.T) {
	g := Build([]ratemodel.Rate{rate("USD", "AMD", ratemodel.NoCash, "384", "")}, ratemodel.NoCash)
	assert.Empty(t, FindAllPaths(g, ratemodel.Default(), ratemodel.NewCurrency("USD")))
}

func TestFindAllPathsDeterministic(t *testing.T) {
	rates := []ratemodel.Rate{
		rate("USD", "AMD", ratemodel.NoCash, "384", "390"),
		rate("EUR", "AMD", ratemodel.NoCash, "425", "437"),
		rate("USD", "EUR", ratemodel.NoCash, "0.9", "0.92"),
		rate("GEL", "AMD", ratemodel.NoCash, "140", "145"),
		rate("USD", "GEL", ratemodel.NoCash, "2.7", "2.75"),
	}
	first := FindAllPaths(Build(rates, ratemodel.NoCash), ratemodel.NewCurrency("USD"), ratemodel.Default())
	for i := 0; i < 10; i++ {
		again := FindAllPaths(Build(rates, ratemodel.NoCash), ratemodel.NewCurrency("USD"), ratemodel.Default())
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Currencies, again[j].Currencies)
			assert.True(t, first[j].Weight.Equal(again[j].Weight))
		}
	}
}
