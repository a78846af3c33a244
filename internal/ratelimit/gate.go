package ratelimit

import (
	"sync"
	"time"
)

// Gate is a per-user sliding-window message guard. Memory only: counters
// reset on restart, and nothing is shared across instances.
type Gate struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	cooldown time.Duration
	events   map[int64][]time.Time
	now      func() time.Time
}

func NewGate(window time.Duration, max int, cooldown time.Duration) *Gate {
	return &Gate{
		window:   window,
		max:      max,
		cooldown: cooldown,
		events:   make(map[int64][]time.Time),
		now:      time.Now,
	}
}

// Allow records the event and returns true unless the user is over the
// window limit or still inside the cooldown after their last accepted event.
// Rejected events are not recorded.
func (g *Gate) Allow(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	cutoff := now.Add(-g.window)

	recent := g.events[userID][:0:0]
	for _, ts := range g.events[userID] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= g.max {
		g.events[userID] = recent
		return false
	}
	if len(recent) > 0 && now.Sub(recent[len(recent)-1]) < g.cooldown {
		g.events[userID] = recent
		return false
	}

	g.events[userID] = append(recent, now)
	return true
}
