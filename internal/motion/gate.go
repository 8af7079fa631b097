package motion

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is the permission gate's position.
type State int

const (
	Unrequested State = iota
	Requesting
	Granted
	Denied
)

func (s State) String() string {
	switch s {
	case Unrequested:
		return "unrequested"
	case Requesting:
		return "requesting"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Source delivers accelerometer samples. Next returns every sample due at or
// before t, in time order; it is only consulted while the gate is Granted.
type Source interface {
	Next(t float64) []Sample
}

// PermissionRequester is implemented by sources that sit behind a platform
// permission handshake. Sources without it are implicitly granted.
type PermissionRequester interface {
	RequestPermission(ctx context.Context) (bool, error)
}

// Gate is the one-shot permission state machine: the only transition out of
// Unrequested is driven by Request, and sample delivery starts only on
// Granted. There is no re-request path.
type Gate struct {
	mu     sync.Mutex
	state  State
	source Source
	log    *zap.Logger
}

func NewGate(source Source, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{source: source, log: log}
}

// State reports the gate's current position.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Request performs the user-gesture-initiated handshake. Calls after the
// first are no-ops and return the settled state. A request error is logged
// and leaves the gate Denied; it does not surface to the simulation.
func (g *Gate) Request(ctx context.Context) State {
	g.mu.Lock()
	if g.state != Unrequested {
		s := g.state
		g.mu.Unlock()
		return s
	}
	if g.source == nil {
		g.state = Denied
		g.mu.Unlock()
		g.log.Info("motion permission denied: no sensor source")
		return Denied
	}
	g.state = Requesting
	src := g.source
	g.mu.Unlock()

	next := Granted
	if pr, ok := src.(PermissionRequester); ok {
		granted, err := pr.RequestPermission(ctx)
		switch {
		case err != nil:
			g.log.Warn("motion permission request failed", zap.Error(err))
			next = Denied
		case !granted:
			g.log.Info("motion permission denied by user")
			next = Denied
		}
	}

	g.mu.Lock()
	g.state = next
	g.mu.Unlock()
	if next == Granted {
		g.log.Info("motion permission granted")
	}
	return next
}

// Poll returns the samples due at time t. Nothing is delivered unless the
// gate is Granted.
func (g *Gate) Poll(t float64) []Sample {
	g.mu.Lock()
	state, src := g.state, g.source
	g.mu.Unlock()

	if state != Granted || src == nil {
		return nil
	}
	return src.Next(t)
}
