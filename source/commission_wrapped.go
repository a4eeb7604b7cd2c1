package source

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// commissionWrappedAdapter re-fetches cfg.BaseSource's own feed and
// applies a fixed commission percentage on top - some providers are
// pegged to another bank's board rate plus or minus a spread rather
// than publishing their own feed. A buy-side commission reduces Buy by
// pct*Buy/100, a sell-side commission increases Sell by pct*Sell/100;
// the two sides scale independently.
type commissionWrappedAdapter struct {
	src      ratemodel.Source
	cfg      Config
	registry map[ratemodel.Source]Config
}

func newCommissionWrapped(src ratemodel.Source, cfg Config, registry map[ratemodel.Source]Config) *commissionWrappedAdapter {
	return &commissionWrappedAdapter{src: src, cfg: cfg, registry: registry}
}

var hundred = decimal.NewFromInt(100)

func (a *commissionWrappedAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	baseCfg, ok := a.registry[a.cfg.BaseSource]
	if !ok {
		return nil, newErr(ErrConfig, "%s derives from %s, which has no registry entry", a.src, a.cfg.BaseSource)
	}

	base, err := fetchWith(ctx, client, a.registry, a.cfg.BaseSource, baseCfg)
	if err != nil {
		return nil, wrapErr(ErrNoRates, err, "%s: fetching base source %s", a.src, a.cfg.BaseSource)
	}

	sellPct := a.cfg.CommissionPct.Add(a.cfg.ExtraSellCommissionPct)
	buyPcts := []decimal.Decimal{a.cfg.CommissionPct}
	if len(a.cfg.BuyCommissionVariantsPct) > 0 {
		buyPcts = a.cfg.BuyCommissionVariantsPct
	}

	out := make([]ratemodel.Rate, 0, len(base))
	for _, r := range base {
		if !a.cfg.FilterFrom.IsEmpty() && !r.From.Equal(a.cfg.FilterFrom) {
			continue
		}
		if a.cfg.FilterRateType != nil && r.RateType != *a.cfg.FilterRateType {
			continue
		}

		rateType := r.RateType
		if a.cfg.OutputRateType != nil {
			rateType = *a.cfg.OutputRateType
		}

		// One derived row per buy commission: transfer operators quote a
		// distinct rate per funding channel.
		for _, pct := range buyPcts {
			derived := ratemodel.Rate{From: r.From, To: r.To, RateType: rateType}
			if r.Buy != nil && r.Buy.IsPositive() {
				buy := r.Buy.Sub(pctOf(pct, *r.Buy))
				derived.Buy = &buy
			}
			if !a.cfg.BuyOnly && r.Sell != nil && r.Sell.IsPositive() {
				sell := r.Sell.Add(pctOf(sellPct, *r.Sell))
				derived.Sell = &sell
			}
			if derived.HasUsableSide() {
				out = append(out, derived)
			}
		}
	}
	if len(out) == 0 {
		return nil, newErr(ErrNoRates, "%s derived zero usable rates from %s", a.src, a.cfg.BaseSource)
	}
	return out, nil
}

// pctOf computes pct% of v, e.g. pctOf(1.5, 390) == 390 * 1.5 / 100.
func pctOf(pct, v decimal.Decimal) decimal.Decimal {
	return pct.Mul(v).Div(hundred)
}
