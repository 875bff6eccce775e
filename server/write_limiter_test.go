package server

import (
	"github.com/stretchr/testify/assert"
	"ripple/shared"
	"testing"
	"time"
)

func TestWriteLimiter(t *testing.T) {
	wl := newWriteLimiter(&shared.Config{WriteRatePerSec: 1, WriteBurst: 2})
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	assert.True(t, wl.allow("a", now))
	assert.True(t, wl.allow("a", now))
	assert.False(t, wl.allow("a", now))
	// Buckets are per viewer
	assert.True(t, wl.allow("b", now))
	// One token per second refills
	assert.True(t, wl.allow("a", now.Add(time.Second)))
	assert.False(t, wl.allow("a", now.Add(time.Second)))
}

func TestWriteLimiter_DropsIdleViewers(t *testing.T) {
	wl := newWriteLimiter(&shared.Config{WriteRatePerSec: 1, WriteBurst: 1})
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	wl.allow("a", now)
	wl.allow("b", now.Add(limiterIdleTTL))
	assert.Len(t, wl.limiters, 2)

	wl.allow("b", now.Add(2*limiterIdleTTL+time.Second))
	assert.Len(t, wl.limiters, 1)
	assert.Contains(t, wl.limiters, "b")
}
