// Package query is the thin facade the chat transport calls: look up a
// rendered table from the cache, or render it from the current snapshot
// and populate the cache on a miss.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/leekchan/accounting"

	"github.com/amrates/rateengine/ratemodel"
	"github.com/amrates/rateengine/render"
	"github.com/amrates/rateengine/store"
)

// Version is the static version string the "info" command reports.
const Version = "1.0.0"

// SrcQuery answers "what does this source quote": consult the cache,
// and on a miss render from the current snapshot and populate it.
func SrcQuery(s *store.Store, src ratemodel.Source, rt ratemodel.RateType) string {
	if cached, ok := s.CacheGetSrc(src, rt); ok {
		return cached
	}
	rendered := render.SourceTable(src, s.SnapshotRates(), rt)
	s.CachePutSrc(src, rt, rendered)
	return rendered
}

// ConvQuery answers "which source offers the best rate for this pair",
// same cache-then-render shape as SrcQuery. An empty from or to never
// touches the store; it returns the sentinel directly.
func ConvQuery(s *store.Store, from, to ratemodel.Currency, rt ratemodel.RateType, inverted bool) string {
	if from.IsEmpty() || to.IsEmpty() {
		return render.Dunno
	}
	if cached, ok := s.CacheGetConv(from, to, rt, inverted); ok {
		return cached
	}
	rendered := render.ConversionTable(from, to, s.SnapshotRates(), rt, inverted)
	s.CachePutConv(from, to, rt, inverted, rendered)
	return rendered
}

// ListSources returns the lowercase names of every known Source, sorted,
// joined with ", ".
func ListSources() string {
	names := make([]string, len(ratemodel.AllSources))
	for i, src := range ratemodel.AllSources {
		names[i] = strings.ToLower(src.String())
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Info is the "info" command: static version, configured refresh
// interval, the store's last refresh timestamp formatted
// "%Y-%m-%d %H:%M:%S %Z", and how many quotes the current snapshot
// holds.
func Info(s *store.Store, updateInterval time.Duration) string {
	quotes := 0
	for _, rates := range s.SnapshotRates() {
		quotes += len(rates)
	}
	ac := accounting.Accounting{Symbol: "", Precision: 0, Thousand: ",", Decimal: "."}
	lines := []string{
		fmt.Sprintf("version: %s", Version),
		fmt.Sprintf("update_interval: %s", updateInterval),
		fmt.Sprintf("updated_at: %s", s.UpdatedAt().Format("2006-01-02 15:04:05 MST")),
		fmt.Sprintf("quotes: %s", ac.FormatMoney(quotes)),
	}
	return strings.Join(lines, "\n")
}
