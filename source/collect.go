package source

import (
	"context"
	"net/http"

	"github.com/amrates/rateengine/ratemodel"
)

// Adapter fetches and normalizes one source's current rates.
type Adapter interface {
	Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error)
}

// Registry maps every Source to the Config its adapter is built from.
// Fetch takes a registry explicitly rather than always reading this
// package variable so the config package can hand the collector a copy
// with TOML/env overrides applied without mutating shared state.
func Fetch(ctx context.Context, client *http.Client, registry map[ratemodel.Source]Config, src ratemodel.Source) ([]ratemodel.Rate, error) {
	cfg, ok := registry[src]
	if !ok {
		return nil, newErr(ErrConfig, "source %s has no registry entry", src)
	}
	return fetchWith(ctx, client, registry, src, cfg)
}

func fetchWith(ctx context.Context, client *http.Client, registry map[ratemodel.Source]Config, src ratemodel.Source, cfg Config) ([]ratemodel.Rate, error) {
	if cfg.AdapterKind != KindCommissionWrapped {
		if err := limiterFor(src, cfg).Wait(ctx); err != nil {
			return nil, wrapErr(ErrTransport, err, "rate limiter wait for %s", src)
		}
	}

	adapter, err := newAdapter(registry, src, cfg)
	if err != nil {
		return nil, err
	}
	rates, err := adapter.Fetch(ctx, client)
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, newErr(ErrNoRates, "%s returned zero rates", src)
	}
	return rates, nil
}

func newAdapter(registry map[ratemodel.Source]Config, src ratemodel.Source, cfg Config) (Adapter, error) {
	switch cfg.AdapterKind {
	case KindJSONFeed:
		return &jsonFeedAdapter{src: src, cfg: cfg}, nil
	case KindJSONFeedWithCross:
		return &jsonFeedCrossAdapter{src: src, cfg: cfg}, nil
	case KindCentralBankSOAP:
		return &centralBankAdapter{src: src, cfg: cfg}, nil
	case KindFormPostScriptWrapped:
		return &formScriptAdapter{src: src, cfg: cfg}, nil
	case KindCommissionWrapped:
		return newCommissionWrapped(src, cfg, registry), nil
	case KindDateTemplatedJSON:
		return &dateTemplatedAdapter{src: src, cfg: cfg}, nil
	case KindBearerOrderBook:
		return &bearerOrderBookAdapter{src: src, cfg: cfg}, nil
	case KindHTMLTable:
		return &htmlTableAdapter{src: src, cfg: cfg}, nil
	default:
		return nil, newErr(ErrConfig, "%s has unhandled adapter kind %s", src, cfg.AdapterKind)
	}
}
