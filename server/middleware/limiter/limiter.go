// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/docs-ru/docs-ru/i18n"
)

const (
	// ExpiryDuration is how long an idle network keeps its bucket.
	ExpiryDuration = time.Hour
	// CleanupInterval is the period of Run.
	CleanupInterval = 5 * time.Minute
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

// Options configures a Limiter.
type Options struct {
	// Rate is the number of requests per second a network regains.
	Rate float64
	// Burst is the size of every bucket.
	Burst int
	// Prefixes are the URL path prefixes that are limited.
	Prefixes []string
	// PassIPs are addresses or CIDRs that are never limited.
	PassIPs []string

	IPv4Prefix int
	IPv6Prefix int
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter holds one token bucket per client network.
type Limiter struct {
	opts   Options
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// New returns a limiter with no buckets.
func New(opts Options) *Limiter {
	return &Limiter{
		opts:    opts,
		logger:  log.With().Str("sys", "limiter").Logger(),
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Evaluate is the middleware entry point.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !l.applies(r.URL.Path) {
		next.ServeHTTP(w, r)

		return
	}

	ip := net.ParseIP(getClientIP(r))
	if ip == nil {
		l.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Could not determine client IP, not limiting")
		next.ServeHTTP(w, r)

		return
	}

	if ipMatchesList(ip, l.opts.PassIPs) {
		next.ServeHTTP(w, r)

		return
	}

	network := getNetwork(ip, l.opts.IPv4Prefix, l.opts.IPv6Prefix).String()

	allowed, remaining, reset := l.take(network)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(l.opts.Burst))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))
	w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(reset, 10))

	if !allowed {
		l.logger.Warn().
			Str("ip", ip.String()).
			Str("network", network).
			Str("path", r.URL.Path).
			Msg("Request blocked, exceeded rate limit")

		w.Header().Set("Retry-After", strconv.FormatInt(max(reset, 1), 10))
		http.Error(w, i18n.Tr(r.Context(), "Too many requests, try again later."), http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

func (l *Limiter) applies(path string) bool {
	for _, prefix := range l.opts.Prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// take consumes a token from the bucket of network. It reports the tokens
// left and the seconds until the bucket is full again.
func (l *Limiter) take(network string) (bool, int, int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	b, ok := l.buckets[network]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(l.opts.Rate), l.opts.Burst)}
		l.buckets[network] = b
	}

	b.lastAccess = now

	allowed := b.limiter.AllowN(now, 1)

	tokens := b.limiter.TokensAt(now)
	remaining := max(int(math.Floor(tokens)), 0)

	var reset int64
	if deficit := float64(l.opts.Burst) - tokens; deficit > 0 && l.opts.Rate > 0 {
		reset = int64(math.Ceil(deficit / l.opts.Rate))
	}

	return allowed, remaining, reset
}

// Cleanup drops buckets idle for longer than ExpiryDuration.
func (l *Limiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0

	for network, b := range l.buckets {
		if now.Sub(b.lastAccess) > ExpiryDuration {
			delete(l.buckets, network)

			removed++
		}
	}

	if removed > 0 {
		l.logger.Debug().Int("count", removed).Msg("Cleaned up expired limiters")
	}

	return removed
}

// Len returns the number of tracked networks.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.buckets)
}

// Run calls Cleanup every CleanupInterval until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}
