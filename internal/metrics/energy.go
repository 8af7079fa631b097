// Package metrics provides per-run aggregate metrics over the sphere arena.
// Each metric implements the sim.Metric shape: Observe once per tick, Value
// after the run, Reset before reuse.
package metrics

import (
	"github.com/san-kum/shakebox/internal/world"
)

// KineticEnergy accumulates the mean total kinetic energy of the arena.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(w *world.World, t float64) {
	k.total += w.KineticEnergy()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
