package source

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// jsonFeedRow is the shape shared by every plain JSON-feed provider: one
// currency code plus an optional buy/sell pair, transmitted as strings
// so the provider's own decimal precision survives untouched.
type jsonFeedRow struct {
	Currency    string  `json:"currency"`
	Buy         *string `json:"buy"`
	Sell        *string `json:"sell"`
	UseForRates *int    `json:"use_for_rates"`
}

type jsonFeedResponse struct {
	NonCash []jsonFeedRow `json:"non_cash"`
	Cash    []jsonFeedRow `json:"cash"`
}

func decodeJSONFeedRows(resp jsonFeedResponse, to ratemodel.Currency) ([]ratemodel.Rate, error) {
	var out []ratemodel.Rate
	for _, group := range []struct {
		rateType ratemodel.RateType
		rows     []jsonFeedRow
	}{
		{ratemodel.NoCash, resp.NonCash},
		{ratemodel.Cash, resp.Cash},
	} {
		for _, row := range group.rows {
			if row.UseForRates != nil && *row.UseForRates == 0 {
				continue
			}
			rate := ratemodel.Rate{
				From:     ratemodel.NewCurrency(row.Currency),
				To:       to,
				RateType: group.rateType,
			}
			if row.Buy != nil {
				if d, err := decimal.NewFromString(*row.Buy); err == nil {
					rate.Buy = &d
				}
			}
			if row.Sell != nil {
				if d, err := decimal.NewFromString(*row.Sell); err == nil {
					rate.Sell = &d
				}
			}
			if rate.HasUsableSide() {
				out = append(out, rate)
			}
		}
	}
	return out, nil
}

// jsonFeedAdapter covers providers that quote every currency directly
// against the engine's default currency.
type jsonFeedAdapter struct {
	src ratemodel.Source
	cfg Config
}

func (a *jsonFeedAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	var resp jsonFeedResponse
	if err := getJSON(ctx, client, a.cfg.RatesURL, &resp); err != nil {
		return nil, err
	}
	return decodeJSONFeedRows(resp, ratemodel.Default())
}

// jsonFeedCrossAdapter covers providers that quote against a cross
// currency (e.g. USD, RUB) instead of the engine's default currency.
// Rows are tagged with cfg.CrossCurrency as their To leg; the graph
// builder chains them through whichever source bridges that cross
// currency back to the default.
type jsonFeedCrossAdapter struct {
	src ratemodel.Source
	cfg Config
}

func (a *jsonFeedCrossAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	if a.cfg.CrossCurrency.IsEmpty() {
		return nil, newErr(ErrConfig, "%s is KindJSONFeedWithCross with no CrossCurrency", a.src)
	}
	var resp jsonFeedResponse
	if err := getJSON(ctx, client, a.cfg.RatesURL, &resp); err != nil {
		return nil, err
	}
	return decodeJSONFeedRows(resp, a.cfg.CrossCurrency)
}
