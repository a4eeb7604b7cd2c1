// Package store holds the process-wide rates map and a derived render
// cache as two independently-lockable partitions: the data map behind
// its own mutex, the cache behind go-cache's internal one. Neither lock
// is held while acquiring the other.
package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/amrates/rateengine/ratemodel"
)

// Store owns the rates map (guarded by its own mutex) and a render cache
// (guarded internally by go-cache). Neither lock is ever held while
// acquiring the other.
type Store struct {
	mu        sync.RWMutex
	rates     ratemodel.SourceRates
	updatedAt time.Time

	cache *gocache.Cache
}

// New creates an empty store. Cache entries never expire on their own,
// only ClearCache (called by the refresh loop) evicts them, so go-cache
// is constructed with NoExpiration and no cleanup interval.
func New() *Store {
	return &Store{
		rates: make(ratemodel.SourceRates),
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// SnapshotRates returns an immutable copy of the current rates map.
func (s *Store) SnapshotRates() ratemodel.SourceRates {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make(ratemodel.SourceRates, len(s.rates))
	for src, rates := range s.rates {
		rr := make([]ratemodel.Rate, len(rates))
		copy(rr, rates)
		cp[src] = rr
	}
	return cp
}

// ReplaceRates atomically swaps in newMap and bumps updatedAt. It does
// not by itself clear the cache - see ClearCache.
func (s *Store) ReplaceRates(newMap ratemodel.SourceRates) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rates = newMap
	s.updatedAt = time.Now()
}

// ClearCache empties both cache partitions.
func (s *Store) ClearCache() {
	s.cache.Flush()
}

// UpdatedAt returns the timestamp of the most recent ReplaceRates call.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// srcCacheKey: lower(src) + "_" + rateType.ordinal
func srcCacheKey(src ratemodel.Source, rt ratemodel.RateType) string {
	return strings.ToLower(src.String()) + "_" + fmt.Sprint(uint8(rt))
}

// convCacheKey: lower(from) + "_" + upper(to) + "_" + ordinal + "_" + inv
func convCacheKey(from, to ratemodel.Currency, rt ratemodel.RateType, inverted bool) string {
	invFlag := 0
	if inverted {
		invFlag = 1
	}
	return strings.ToLower(from.String()) + "_" + strings.ToUpper(to.String()) + "_" +
		fmt.Sprint(uint8(rt)) + "_" + fmt.Sprint(invFlag)
}

// CacheGetSrc looks up a previously rendered source table.
func (s *Store) CacheGetSrc(src ratemodel.Source, rt ratemodel.RateType) (string, bool) {
	v, ok := s.cache.Get(srcCacheKey(src, rt))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// CachePutSrc stores a rendered source table.
func (s *Store) CachePutSrc(src ratemodel.Source, rt ratemodel.RateType, value string) {
	s.cache.Set(srcCacheKey(src, rt), value, gocache.NoExpiration)
}

// CacheGetConv looks up a previously rendered conversion table.
func (s *Store) CacheGetConv(from, to ratemodel.Currency, rt ratemodel.RateType, inverted bool) (string, bool) {
	v, ok := s.cache.Get(convCacheKey(from, to, rt, inverted))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// CachePutConv stores a rendered conversion table.
func (s *Store) CachePutConv(from, to ratemodel.Currency, rt ratemodel.RateType, inverted bool, value string) {
	s.cache.Set(convCacheKey(from, to, rt, inverted), value, gocache.NoExpiration)
}
