package metrics

import (
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/world"
)

// ShakeDuty measures the fraction of ticks spent inside a shake pulse.
type ShakeDuty struct {
	name    string
	pulse   *shake.Pulse
	active  int
	samples int
}

func NewShakeDuty(pulse *shake.Pulse) *ShakeDuty {
	return &ShakeDuty{name: "shake_duty", pulse: pulse}
}

func (d *ShakeDuty) Name() string { return d.name }

func (d *ShakeDuty) Observe(w *world.World, t float64) {
	if d.pulse.Active() {
		d.active++
	}
	d.samples++
}

func (d *ShakeDuty) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.active) / float64(d.samples)
}

func (d *ShakeDuty) Reset() {
	d.active = 0
	d.samples = 0
}
