package server

import (
	"golang.org/x/time/rate"
	"ripple/shared"
	"sync"
	"time"
)

const limiterIdleTTL = 30 * time.Minute

// writeLimiter holds one token bucket per viewer for mutating requests.
type writeLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*viewerLimiter
	lastGC   time.Time
}

type viewerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newWriteLimiter(cfg *shared.Config) *writeLimiter {
	return &writeLimiter{
		limit:    rate.Limit(cfg.WriteRatePerSec),
		burst:    cfg.WriteBurst,
		limiters: make(map[string]*viewerLimiter),
	}
}

func (wl *writeLimiter) allow(viewerId string, now time.Time) bool {
	wl.mu.Lock()
	defer wl.mu.Unlock()

	if now.Sub(wl.lastGC) > limiterIdleTTL {
		for id, vl := range wl.limiters {
			if now.Sub(vl.lastSeen) > limiterIdleTTL {
				delete(wl.limiters, id)
			}
		}
		wl.lastGC = now
	}

	vl, ok := wl.limiters[viewerId]
	if !ok {
		vl = &viewerLimiter{limiter: rate.NewLimiter(wl.limit, wl.burst)}
		wl.limiters[viewerId] = vl
	}
	vl.lastSeen = now
	return vl.limiter.AllowN(now, 1)
}
