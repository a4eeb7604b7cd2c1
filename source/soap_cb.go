package source

import (
	"bytes"
	"context"
	"encoding/xml"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// centralBankAdapter speaks the central bank's SOAP 1.2 envelope.
type centralBankAdapter struct {
	src ratemodel.Source
	cfg Config
}

const centralBankRequestBody = `<?xml version="1.0" encoding="utf-8"?>
<soap12:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
  <soap12:Body>
    <ExchangeRatesLatest xmlns="http://www.cba.am/" />
  </soap12:Body>
</soap12:Envelope>`

type cbExchangeRate struct {
	ISO    string `xml:"ISO"`
	Rate   string `xml:"Rate"`
	Amount string `xml:"Amount"`
}

type cbEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response struct {
			Result struct {
				Rates struct {
					ExchangeRate []cbExchangeRate `xml:"ExchangeRate"`
				} `xml:"Rates"`
			} `xml:"ExchangeRatesLatestResult"`
		} `xml:"ExchangeRatesLatestResponse"`
	} `xml:"Body"`
}

func (a *centralBankAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.RatesURL, bytes.NewBufferString(centralBankRequestBody))
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "build request")
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "POST %s", a.cfg.RatesURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newErr(ErrTransport, "POST %s: status %d", a.cfg.RatesURL, resp.StatusCode)
	}

	var env cbEnvelope
	if err := xml.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, wrapErr(ErrDecode, err, "decode SOAP envelope from %s", a.cfg.RatesURL)
	}

	rows := env.Body.Response.Result.Rates.ExchangeRate
	out := make([]ratemodel.Rate, 0, len(rows))
	for _, row := range rows {
		rate, err := decimal.NewFromString(row.Rate)
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil || amount.IsZero() {
			continue
		}
		perUnit := rate.Div(amount)
		out = append(out, ratemodel.Rate{
			From:     ratemodel.NewCurrency(row.ISO),
			To:       ratemodel.Default(),
			RateType: ratemodel.CbRate,
			Buy:      &perUnit,
			Sell:     &perUnit,
		})
	}
	return out, nil
}
