package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// dateTemplatedAdapter substitutes a date into cfg.RatesURL (a single %s
// verb expecting "2006-01-02"). With BusinessDayOnly set, a weekend date
// is walked back to the preceding business day (Saturday -1, Sunday -2)
// rather than substituted as-is; some providers don't publish a rate
// sheet dated on a non-business day.
type dateTemplatedAdapter struct {
	src ratemodel.Source
	cfg Config
}

func (a *dateTemplatedAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	date := businessDate(time.Now(), a.cfg.BusinessDayOnly)
	url := fmt.Sprintf(a.cfg.RatesURL, date.Format("2006-01-02"))

	if !a.cfg.CrossFrom.IsEmpty() {
		return a.fetchCrossPair(ctx, client, url)
	}

	var resp jsonFeedResponse
	if err := getJSON(ctx, client, url, &resp); err != nil {
		return nil, err
	}
	return decodeJSONFeedRows(resp, ratemodel.Default())
}

func businessDate(now time.Time, walkBack bool) time.Time {
	if !walkBack {
		return now
	}
	switch now.Weekday() {
	case time.Saturday:
		return now.AddDate(0, 0, -1)
	case time.Sunday:
		return now.AddDate(0, 0, -2)
	default:
		return now
	}
}

// crossPairRow is the shape of a provider that reports every currency
// pair it quotes as a flat list rather than implicitly against a fixed
// local currency: a base/trans currency pair plus a single rate.
type crossPairRow struct {
	TransCur string          `json:"transCur"`
	BaseCur  string          `json:"baseCur"`
	RateData decimal.Decimal `json:"rateData"`
}

type crossPairResponse struct {
	ExchangeRateJSON []crossPairRow `json:"exchangeRateJson"`
}

func (a *dateTemplatedAdapter) fetchCrossPair(ctx context.Context, client *http.Client, url string) ([]ratemodel.Rate, error) {
	var resp crossPairResponse
	if err := getJSON(ctx, client, url, &resp); err != nil {
		return nil, err
	}

	for _, row := range resp.ExchangeRateJSON {
		from := ratemodel.NewCurrency(row.BaseCur)
		to := ratemodel.NewCurrency(row.TransCur)
		if !from.Equal(a.cfg.CrossFrom) || !to.Equal(a.cfg.CrossTo) {
			continue
		}
		if !row.RateData.IsPositive() {
			continue
		}
		buy := decimal.NewFromInt(1).Div(row.RateData)
		return []ratemodel.Rate{
			{From: from, To: to, RateType: ratemodel.NoCash, Buy: &buy},
			{From: from, To: to, RateType: ratemodel.Cash, Buy: &buy},
		}, nil
	}
	return nil, newErr(ErrNoRates, "%s: no %s/%s row in cross-pair feed", a.src, a.cfg.CrossFrom, a.cfg.CrossTo)
}
