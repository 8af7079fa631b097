package shake

import (
	"sort"
	"sync"
	"time"
)

// Clock abstracts time so the pulse works both against the wall clock
// (interactive frontends) and against simulated time (headless runs, tests).
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

func (wallClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// WallClock returns the real-time clock.
func WallClock() Clock { return wallClock{} }

type manualTimer struct {
	at time.Time
	f  func()
}

// ManualClock is advanced explicitly. Timers fire in deadline order during
// Advance, matching the host-environment guarantee that handlers interleave
// but never run concurrently.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []manualTimer
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timers = append(c.timers, manualTimer{at: c.now.Add(d), f: f})
}

// Advance moves the clock forward and fires every timer whose deadline has
// passed, earliest first. Timers are never cancelled.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due, pending []manualTimer
	for _, t := range c.timers {
		if !t.at.After(now) {
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	c.timers = pending
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}
