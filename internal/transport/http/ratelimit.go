package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a profile's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// profileLimiter hands out one token bucket per device profile. Buckets idle
// for longer than idle are dropped, so rotating profile headers cannot grow
// the map without bound.
type profileLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// newProfileLimiter allows rps submissions per second per profile. A non-positive rps disables limiting.
func newProfileLimiter(rps float64, burst int) *profileLimiter {
	if burst <= 0 {
		burst = 1
	}
	idle := limiterIdleTTL
	if rps > 0 {
		// A bucket idle long enough to refill is the same as a new one.
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &profileLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     idle,
		now:      time.Now,
	}
}

func (l *profileLimiter) Allow(profile string) bool {
	if l.limit <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	entry, ok := l.limiters[profile]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[profile] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep must be called with mu held.
func (l *profileLimiter) sweep(now time.Time) {
	for profile, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idle {
			delete(l.limiters, profile)
		}
	}
	l.lastSweep = now
}
