package source

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrates/rateengine/ratemodel"
)

const ratesPage = `<html><body>
<table class="rates">
  <tr><th>Currency</th><th>Buy</th><th>Sell</th></tr>
  <tr><td>USD</td><td>384</td><td>390</td></tr>
  <tr><td>EUR</td><td>425</td><td>437</td></tr>
  <tr><td>XAU</td><td>n/a</td><td>n/a</td></tr>
</table>
<table class="rates">
  <tr><th>Currency</th><th>Buy</th><th>Sell</th></tr>
  <tr><td>USD</td><td>382</td><td>392</td></tr>
</table>
</body></html>`

func htmlConfig(url string) Config {
	return Config{
		RatesURL:      url,
		TableSelector: "table.rates",
		RowSelector:   "tr",
		CellSelector:  "td",
		CashRowIndex:  0,
	}
}

func TestHTMLTableScrapesBothTables(t *testing.T) {
	srv := serve(t, ratesPage)

	a := &htmlTableAdapter{src: ratemodel.Evoca, cfg: htmlConfig(srv.URL)}
	rates, err := a.Fetch(context.Background(), srv.Client())
	require.NoError(t, err)
	require.Len(t, rates, 3, "the n/a row must be dropped")

	assert.Equal(t, ratemodel.Cash, rates[0].RateType, "first table holds cash rates")
	assert.True(t, rates[0].From.Equal(ratemodel.USD()))
	assert.True(t, rates[0].Buy.Equal(decimal.NewFromInt(384)))

	assert.Equal(t, ratemodel.NoCash, rates[2].RateType, "second table holds non-cash rates")
	assert.True(t, rates[2].Buy.Equal(decimal.NewFromInt(382)))
}

func TestHTMLTableMissingSelectorIsDecodeError(t *testing.T) {
	srv := serve(t, `<html><body><p>maintenance</p></body></html>`)

	a := &htmlTableAdapter{src: ratemodel.Evoca, cfg: htmlConfig(srv.URL)}
	_, err := a.Fetch(context.Background(), srv.Client())
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrDecode, kind)
}

func TestHTMLTableAllRowsUnusableIsNoRates(t *testing.T) {
	srv := serve(t, `<html><body><table class="rates">
		<tr><th>Currency</th><th>Buy</th><th>Sell</th></tr>
		<tr><td>USD</td><td>-</td><td>-</td></tr>
	</table></body></html>`)

	a := &htmlTableAdapter{src: ratemodel.Evoca, cfg: htmlConfig(srv.URL)}
	_, err := a.Fetch(context.Background(), srv.Client())
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrNoRates, kind)
}
