package shake

import (
	"math/rand"

	"github.com/san-kum/shakebox/internal/world"
)

// Injector applies randomized impulses to every body in the arena while the
// pulse is active.
type Injector struct {
	settings *Settings
	pulse    *Pulse
	rng      *rand.Rand
}

func NewInjector(settings *Settings, pulse *Pulse, seed int64) *Injector {
	return &Injector{
		settings: settings,
		pulse:    pulse,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Pulse exposes the trigger for frontends and the motion adapter.
func (inj *Injector) Pulse() *Pulse { return inj.pulse }

// Apply runs once per simulation tick. While the pulse is active it applies
// exactly one impulse per body, each component independently drawn from
// [-S/2, S/2]. The strength is read once so all bodies in a tick share the
// same snapshot. Returns the number of impulses applied.
func (inj *Injector) Apply(w *world.World) int {
	if !inj.pulse.Active() {
		return 0
	}

	s := inj.settings.Strength()
	n := w.NumBodies()
	for i := 0; i < n; i++ {
		w.ApplyImpulse(i, world.Vec3{
			X: (inj.rng.Float64() - 0.5) * s,
			Y: (inj.rng.Float64() - 0.5) * s,
			Z: (inj.rng.Float64() - 0.5) * s,
		})
	}
	return n
}
