// Package ratelimit provides the in-memory, per-process limiter guarding hit
// ingestion. It is best-effort: counters are not shared between instances.
package ratelimit

import (
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const (
	DefaultLimit   = 120
	DefaultWindow  = 60 * time.Second
	DefaultMaxKeys = 100_000
)

var ErrInvalidConfig = errors.New("invalid rate limit config")

// Config defines the fixed window applied to every key.
type Config struct {
	// Limit is the max number of accepted calls per key within Window.
	Limit int
	// Window is truncated to whole seconds.
	Window time.Duration
	// MaxKeys bounds the number of tracked keys; the least recently used key
	// is dropped first.
	MaxKeys int
}

// DefaultConfig returns 120 calls per 60 seconds.
func DefaultConfig() Config {
	return Config{
		Limit:   DefaultLimit,
		Window:  DefaultWindow,
		MaxKeys: DefaultMaxKeys,
	}
}

// Limiter keeps, per key, the second-granularity timestamps of accepted calls
// inside the trailing window.
type Limiter struct {
	mu        sync.Mutex
	limit     int
	windowSec int64
	buckets   *simplelru.LRU[string, []int64]
}

func New(cfg Config) (*Limiter, error) {
	if cfg.Limit <= 0 || cfg.Window < time.Second {
		return nil, ErrInvalidConfig
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = DefaultMaxKeys
	}

	buckets, err := simplelru.NewLRU[string, []int64](cfg.MaxKeys, nil)
	if err != nil {
		return nil, err
	}

	return &Limiter{
		limit:     cfg.Limit,
		windowSec: int64(cfg.Window / time.Second),
		buckets:   buckets,
	}, nil
}

// Allow reports whether a call for key at nowMs fits in the window. Rejected
// calls are not recorded.
func (l *Limiter) Allow(key string, nowMs int64) bool {
	nowSec := nowMs / 1000
	start := nowSec - l.windowSec

	l.mu.Lock()
	defer l.mu.Unlock()

	stamps, _ := l.buckets.Get(key)
	kept := live(stamps, start)

	if len(kept) >= l.limit {
		l.buckets.Add(key, kept)
		return false
	}

	l.buckets.Add(key, append(kept, nowSec))
	return true
}

// Sweep drops keys whose timestamps all fell out of the window and returns
// how many were removed.
func (l *Limiter) Sweep(nowMs int64) int {
	start := nowMs/1000 - l.windowSec

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for _, key := range l.buckets.Keys() {
		stamps, ok := l.buckets.Peek(key)
		if !ok {
			continue
		}
		if !anyLive(stamps, start) {
			l.buckets.Remove(key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buckets.Len()
}

// live filters stamps in place, keeping those at or after start.
func live(stamps []int64, start int64) []int64 {
	kept := stamps[:0]
	for _, t := range stamps {
		if t >= start {
			kept = append(kept, t)
		}
	}
	return kept
}

func anyLive(stamps []int64, start int64) bool {
	for _, t := range stamps {
		if t >= start {
			return true
		}
	}
	return false
}
