// Package shake owns the live-adjustable shake settings, the debounced shake
// pulse, and the injector that turns an active pulse into per-body impulses.
package shake

import "sync"

// Slider ranges exposed by the settings panel.
const (
	MinStrength      = 1.0
	MaxStrength      = 20.0
	DefaultStrength  = 8.0
	MinThreshold     = 5.0
	MaxThreshold     = 30.0
	DefaultThreshold = 15.0
)

// Settings is the explicit handle passed into the motion adapter and the
// injector; there is no ambient global. Writes clamp to the slider ranges.
type Settings struct {
	mu        sync.RWMutex
	strength  float64
	threshold float64
}

func NewSettings() *Settings {
	return &Settings{
		strength:  DefaultStrength,
		threshold: DefaultThreshold,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Strength is the impulse scale S; components are drawn from [-S/2, S/2].
func (s *Settings) Strength() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strength
}

func (s *Settings) SetStrength(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strength = clamp(v, MinStrength, MaxStrength)
}

// Threshold is the acceleration magnitude above which a motion sample
// triggers a shake.
func (s *Settings) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

func (s *Settings) SetThreshold(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threshold = clamp(v, MinThreshold, MaxThreshold)
}
