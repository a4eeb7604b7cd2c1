// Package collector fans a refresh cycle out across every enabled
// source: one goroutine per source, filtering obviously invalid rates
// and running arbitrage detection before publishing each source's
// result on a channel.
package collector

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/amrates/rateengine/graph"
	"github.com/amrates/rateengine/ratemodel"
	"github.com/amrates/rateengine/source"
)

// Result is one source's published rates for this refresh cycle.
type Result struct {
	Source ratemodel.Source
	Rates  []ratemodel.Rate
}

// Run launches a concurrent fetch for every enabled source in registry
// and sends each successful, filtered result on out. It returns once
// every worker has been spawned; it does not wait for them to finish.
// Callers drain out until it closes, which happens after the last
// worker's send.
//
// A failed adapter is logged and produces nothing; no source blocks any
// other. No inter-source ordering is guaranteed.
func Run(ctx context.Context, client *http.Client, registry map[ratemodel.Source]source.Config, out chan<- Result) {
	srcs := source.EnabledSources(registry)

	done := make(chan struct{}, len(srcs))
	for _, src := range srcs {
		go func(src ratemodel.Source) {
			defer func() { done <- struct{}{} }()
			collectOne(ctx, client, registry, src, out)
		}(src)
	}

	go func() {
		for range srcs {
			<-done
		}
		close(out)
	}()
}

func collectOne(ctx context.Context, client *http.Client, registry map[ratemodel.Source]source.Config, src ratemodel.Source, out chan<- Result) {
	rates, err := source.Fetch(ctx, client, registry, src)
	if err != nil {
		fields := logrus.Fields{"source": src.String()}
		if kind, ok := source.KindOf(err); ok {
			fields["kind"] = kind.String()
		}
		logrus.WithError(err).WithFields(fields).Warn("collector: source failed")
		return
	}

	filtered := filterUsable(rates)
	if len(filtered) == 0 {
		return
	}

	if graph.DetectArbitrage(filtered, ratemodel.NoCash) {
		logrus.WithField("source", src.String()).Info("collector: arbitrage detected")
	}

	select {
	case out <- Result{Source: src, Rates: filtered}:
	case <-ctx.Done():
	}
}

// filterUsable drops any rate whose currencies are empty, or whose buy
// and sell are both absent or non-positive, before this source's rates
// ever reach the store.
func filterUsable(rates []ratemodel.Rate) []ratemodel.Rate {
	out := make([]ratemodel.Rate, 0, len(rates))
	for _, r := range rates {
		if r.From.IsEmpty() || r.To.IsEmpty() {
			continue
		}
		if !r.HasUsableSide() {
			continue
		}
		out = append(out, r)
	}
	return out
}
