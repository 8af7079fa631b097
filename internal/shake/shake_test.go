package shake

import (
	"testing"
	"time"

	"github.com/san-kum/shakebox/internal/material"
	"github.com/san-kum/shakebox/internal/scene"
	"github.com/san-kum/shakebox/internal/world"
)

func TestSettingsClamp(t *testing.T) {
	s := NewSettings()

	if s.Strength() != DefaultStrength {
		t.Errorf("expected default strength %f, got %f", DefaultStrength, s.Strength())
	}

	s.SetStrength(100)
	if s.Strength() != MaxStrength {
		t.Errorf("expected strength clamped to %f, got %f", MaxStrength, s.Strength())
	}

	s.SetStrength(0)
	if s.Strength() != MinStrength {
		t.Errorf("expected strength clamped to %f, got %f", MinStrength, s.Strength())
	}

	s.SetThreshold(1)
	if s.Threshold() != MinThreshold {
		t.Errorf("expected threshold clamped to %f, got %f", MinThreshold, s.Threshold())
	}

	s.SetThreshold(12.5)
	if s.Threshold() != 12.5 {
		t.Errorf("expected threshold 12.5, got %f", s.Threshold())
	}
}

func TestPulseClearsAfterWindow(t *testing.T) {
	clock := NewManualClock()
	p := NewPulse(clock)

	if p.Active() {
		t.Fatal("pulse should start inactive")
	}

	p.Trigger()
	if !p.Active() {
		t.Fatal("pulse should be active immediately after trigger")
	}

	clock.Advance(99 * time.Millisecond)
	if !p.Active() {
		t.Error("pulse should still be active before the window elapses")
	}

	clock.Advance(time.Millisecond)
	if p.Active() {
		t.Error("pulse should clear once the window elapses")
	}
}

func TestPulseOverlappingTriggersRace(t *testing.T) {
	clock := NewManualClock()
	p := NewPulse(clock)

	p.Trigger()
	clock.Advance(50 * time.Millisecond)
	p.Trigger()

	// the first trigger's clear fires at t=100ms and is never cancelled, so
	// the second trigger's window is truncated
	clock.Advance(50 * time.Millisecond)
	if p.Active() {
		t.Error("earlier clear timer should win over the later trigger")
	}
}

func demoWorld(t *testing.T, n int) *world.World {
	t.Helper()
	reg := material.NewRegistry()
	if err := material.Install(reg); err != nil {
		t.Fatal(err)
	}
	w, err := world.New(reg, scene.Build(n, 1))
	if err != nil {
		t.Fatal(err)
	}
	w.Gravity = world.Vec3{}
	return w
}

func TestInjectorInactiveIsNoop(t *testing.T) {
	w := demoWorld(t, 10)
	inj := NewInjector(NewSettings(), NewPulse(NewManualClock()), 42)

	if applied := inj.Apply(w); applied != 0 {
		t.Errorf("expected no impulses while inactive, got %d", applied)
	}
	for i := 0; i < w.NumBodies(); i++ {
		if v := w.Body(i).Velocity; v != (world.Vec3{}) {
			t.Fatalf("body %d moved without an active pulse: %v", i, v)
		}
	}
}

func TestInjectorAppliesOneImpulsePerBody(t *testing.T) {
	w := demoWorld(t, 25)
	settings := NewSettings()
	settings.SetStrength(10)
	pulse := NewPulse(NewManualClock())
	inj := NewInjector(settings, pulse, 42)

	pulse.Trigger()
	applied := inj.Apply(w)
	if applied != 25 {
		t.Fatalf("expected 25 impulses, got %d", applied)
	}

	// mass is 1, so velocity equals the applied impulse; every component must
	// land in [-S/2, S/2]
	moved := 0
	for i := 0; i < w.NumBodies(); i++ {
		v := w.Body(i).Velocity
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < -5 || c > 5 {
				t.Errorf("body %d: component %f outside [-5, 5]", i, c)
			}
		}
		if v != (world.Vec3{}) {
			moved++
		}
	}
	if moved == 0 {
		t.Error("expected at least some bodies to receive a non-zero impulse")
	}
}

func TestInjectorDeterministicWithSeed(t *testing.T) {
	w1 := demoWorld(t, 10)
	w2 := demoWorld(t, 10)

	for _, w := range []*world.World{w1, w2} {
		settings := NewSettings()
		pulse := NewPulse(NewManualClock())
		pulse.Trigger()
		NewInjector(settings, pulse, 7).Apply(w)
	}

	for i := 0; i < w1.NumBodies(); i++ {
		if w1.Body(i).Velocity != w2.Body(i).Velocity {
			t.Fatalf("body %d: same seed produced different impulses", i)
		}
	}
}
