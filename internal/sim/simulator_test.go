package sim

import (
	"context"
	"testing"

	"github.com/san-kum/shakebox/internal/material"
	"github.com/san-kum/shakebox/internal/motion"
	"github.com/san-kum/shakebox/internal/scene"
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/world"
)

func testSimulator(t *testing.T, n int, seed int64) (*Simulator, *shake.Settings) {
	t.Helper()
	reg := material.NewRegistry()
	if err := material.Install(reg); err != nil {
		t.Fatalf("install materials: %v", err)
	}
	w, err := world.New(reg, scene.Build(n, seed))
	if err != nil {
		t.Fatalf("build world: %v", err)
	}

	clock := shake.NewManualClock()
	settings := shake.NewSettings()
	s := New(w, shake.NewInjector(settings, shake.NewPulse(clock), seed))
	s.UseClock(clock)
	return s, settings
}

func TestSimulatorRun(t *testing.T) {
	s, _ := testSimulator(t, 5, 1)

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames[0]) != 15 {
		t.Errorf("expected 15 coordinates per frame, got %d", len(result.Frames[0]))
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s, _ := testSimulator(t, 1, 1)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type countingMetric struct {
	count int
}

func (m *countingMetric) Name() string                  { return "count" }
func (m *countingMetric) Observe(w *world.World, t float64) { m.count++ }
func (m *countingMetric) Value() float64                { return float64(m.count) }
func (m *countingMetric) Reset()                        { m.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	s, _ := testSimulator(t, 2, 1)

	metric := &countingMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got, ok := result.Metrics["count"]; !ok || got != 10 {
		t.Errorf("expected metric value 10, got %v (present=%v)", got, ok)
	}
}

func TestScriptedTriggersAddEnergy(t *testing.T) {
	s, _ := testSimulator(t, 10, 7)
	w := s.World()
	w.Gravity = world.Vec3{}

	if _, err := s.Run(context.Background(), Config{Dt: 0.01, Duration: 0.5}); err != nil {
		t.Fatalf("quiet run failed: %v", err)
	}
	if ke := w.KineticEnergy(); ke != 0 {
		t.Fatalf("expected a still arena without triggers, energy %f", ke)
	}

	w.Reset()
	if _, err := s.Run(context.Background(), Config{Dt: 0.01, Duration: 0.5, Triggers: []float64{0.1}}); err != nil {
		t.Fatalf("shaken run failed: %v", err)
	}
	if ke := w.KineticEnergy(); ke <= 0 {
		t.Errorf("expected shake impulses to add kinetic energy, got %f", ke)
	}
}

func TestMotionFeedTriggersShake(t *testing.T) {
	s, settings := testSimulator(t, 4, 3)
	w := s.World()
	w.Gravity = world.Vec3{}
	settings.SetThreshold(15)

	trace := motion.NewTraceSource([]motion.Sample{
		motion.At(0.05, 5, 5, 5),
		motion.At(0.20, 9, 9, 9),
	})
	gate := motion.NewGate(trace, nil)
	s.UseMotion(gate, motion.NewAdapter(settings, s.injector.Pulse()))

	if gate.Request(context.Background()) != motion.Granted {
		t.Fatal("expected implicit grant for plain trace source")
	}

	_, err := s.Run(context.Background(), Config{Dt: 0.01, Duration: 0.5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if ke := w.KineticEnergy(); ke <= 0 {
		t.Errorf("expected the above-threshold sample to shake the arena, got %f", ke)
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	s, _ := testSimulator(t, 2, 1)

	calls := 0
	err := s.RunWithCallback(context.Background(), Config{Dt: 0.1, Duration: 10}, func(w *world.World, t float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 callback invocations, got %d", calls)
	}
}

func TestEnsembleRunsAllSeeds(t *testing.T) {
	build := func(seed int64) (*Simulator, error) {
		reg := material.NewRegistry()
		if err := material.Install(reg); err != nil {
			return nil, err
		}
		w, err := world.New(reg, scene.Build(3, seed))
		if err != nil {
			return nil, err
		}
		clock := shake.NewManualClock()
		s := New(w, shake.NewInjector(shake.NewSettings(), shake.NewPulse(clock), seed))
		s.UseClock(clock)
		return s, nil
	}

	ens := NewEnsemble(build, 4, 100)
	results, err := ens.Run(context.Background(), Config{Dt: 0.05, Duration: 0.2})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil || r.StepsTaken != 4 {
			t.Errorf("run %d: expected 4 steps, got %+v", i, r)
		}
	}
}
