package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrates/rateengine/ratemodel"
)

const cbResponseBody = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <ExchangeRatesLatestResponse xmlns="http://www.cba.am/">
      <ExchangeRatesLatestResult>
        <Rates>
          <ExchangeRate><ISO>USD</ISO><Rate>387.5</Rate><Amount>1</Amount></ExchangeRate>
          <ExchangeRate><ISO>JPY</ISO><Rate>260.14</Rate><Amount>100</Amount></ExchangeRate>
          <ExchangeRate><ISO>XXX</ISO><Rate>bogus</Rate><Amount>1</Amount></ExchangeRate>
        </Rates>
      </ExchangeRatesLatestResult>
    </ExchangeRatesLatestResponse>
  </soap:Body>
</soap:Envelope>`

func TestCentralBankParsesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "ExchangeRatesLatest")
		w.Write([]byte(cbResponseBody))
	}))
	defer srv.Close()

	a := &centralBankAdapter{src: ratemodel.Cb, cfg: Config{RatesURL: srv.URL}}
	rates, err := a.Fetch(context.Background(), srv.Client())
	require.NoError(t, err)
	require.Len(t, rates, 2, "the unparseable row must be skipped")

	usd := rates[0]
	assert.Equal(t, ratemodel.CbRate, usd.RateType)
	assert.True(t, usd.From.Equal(ratemodel.USD()))
	assert.True(t, usd.To.Equal(ratemodel.Default()))
	require.NotNil(t, usd.Buy)
	require.NotNil(t, usd.Sell)
	assert.True(t, usd.Buy.Equal(*usd.Sell), "central-bank quotes are single-sided")
	assert.True(t, usd.Buy.Equal(decimal.RequireFromString("387.5")))

	// 260.14 per 100 units normalises to a per-unit rate.
	jpy := rates[1]
	assert.True(t, jpy.Buy.Equal(decimal.RequireFromString("2.6014")))
}

func TestCentralBankDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "xml"}`))
	}))
	defer srv.Close()

	a := &centralBankAdapter{src: ratemodel.Cb, cfg: Config{RatesURL: srv.URL}}
	_, err := a.Fetch(context.Background(), srv.Client())
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrDecode, kind)
}
