package metrics

import (
	"github.com/san-kum/shakebox/internal/world"
)

// PeakSpeed records the largest body speed seen during a run.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(w *world.World, t float64) {
	for i := 0; i < w.NumBodies(); i++ {
		if s := w.Body(i).Velocity.Length(); s > p.peak {
			p.peak = s
		}
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }
