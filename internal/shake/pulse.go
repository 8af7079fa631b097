package shake

import (
	"sync"
	"time"
)

// PulseWindow is the fixed duration a trigger keeps the flag raised.
const PulseWindow = 100 * time.Millisecond

// Pulse is the shared shake flag: a debounced pulse, not a toggle. Every
// trigger schedules its own unconditional clear and never cancels an earlier
// one, so a trigger landing inside another's window can have its visible
// effect truncated by the older timer. That overlap raciness is part of the
// observed behavior and is kept.
type Pulse struct {
	mu     sync.Mutex
	clock  Clock
	active bool
}

func NewPulse(clock Clock) *Pulse {
	if clock == nil {
		clock = WallClock()
	}
	return &Pulse{clock: clock}
}

// Trigger raises the flag immediately and schedules a clear after
// PulseWindow.
func (p *Pulse) Trigger() {
	p.mu.Lock()
	p.active = true
	p.mu.Unlock()

	p.clock.AfterFunc(PulseWindow, func() {
		p.mu.Lock()
		p.active = false
		p.mu.Unlock()
	})
}

// Active reports whether the flag is currently raised.
func (p *Pulse) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}
