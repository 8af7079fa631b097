package sim

import "github.com/san-kum/shakebox/internal/world"

// Metric aggregates a scalar over a run.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64)
	Value() float64
	Reset()
}

// Observer is called once per tick before the world steps.
type Observer interface {
	OnStep(w *world.World, t float64)
}

// Config drives a headless run.
type Config struct {
	Dt       float64
	Duration float64
	Seed     int64

	// Triggers lists simulation times at which a manual shake fires,
	// standing in for the interactive shake key.
	Triggers []float64
}

// Result holds the recorded run: one frame of flat x,y,z triples per tick.
type Result struct {
	Times      []float64
	Frames     [][]float64
	Metrics    map[string]float64
	StepsTaken int
}
