package source

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/amrates/rateengine/ratemodel"
)

// limiters holds one token bucket per Source, built lazily from the
// Registry entry's Limit/Burst the first time that source is fetched.
// Sharing one limiter per process (rather than per collector run) keeps
// a slow or chatty source throttled across consecutive refresh ticks,
// not just within a single one.
var (
	limitersMu sync.Mutex
	limiters   = map[ratemodel.Source]*rate.Limiter{}
)

func limiterFor(src ratemodel.Source, cfg Config) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	if l, ok := limiters[src]; ok {
		return l
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := cfg.Limit
	if limit == 0 {
		// An unset limit means unthrottled, not "never again".
		limit = rate.Inf
	}
	l := rate.NewLimiter(limit, burst)
	limiters[src] = l
	return l
}
