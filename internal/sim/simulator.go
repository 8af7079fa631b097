// Package sim runs the tick loop: motion samples in, impulses applied, world
// stepped, metrics observed.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/shakebox/internal/motion"
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/world"
)

// Advancer is the manually driven clock used by headless runs so the 100ms
// pulse window tracks simulation time instead of wall time.
type Advancer interface {
	Advance(d time.Duration)
}

type Simulator struct {
	world    *world.World
	injector *shake.Injector
	gate     *motion.Gate
	adapter  *motion.Adapter
	clock    Advancer

	metrics   []Metric
	observers []Observer
}

func New(w *world.World, injector *shake.Injector) *Simulator {
	return &Simulator{
		world:     w,
		injector:  injector,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// UseMotion attaches a permission-gated sample feed. Samples due each tick
// are pushed through the adapter before impulses apply.
func (s *Simulator) UseMotion(gate *motion.Gate, adapter *motion.Adapter) {
	s.gate = gate
	s.adapter = adapter
}

// UseClock makes the simulator advance the given clock by dt every tick.
// Interactive frontends leave this unset and run on wall time.
func (s *Simulator) UseClock(c Advancer) { s.clock = c }

func (s *Simulator) World() *world.World { return s.world }

// Run executes the full loop and records every frame.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Frames:  make([][]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Times = append(result.Times, t)
	result.Frames = append(result.Frames, s.world.Frame())

	trigger := 0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		trigger = s.tick(t, cfg, trigger)

		for _, m := range s.metrics {
			m.Observe(s.world, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.world, t)
		}

		s.world.Step(cfg.Dt)
		s.advance(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, s.world.Frame())
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback executes the loop without recording, handing each frame to
// the callback. The callback returning false stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(w *world.World, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	trigger := 0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		trigger = s.tick(t, cfg, trigger)

		if !callback(s.world, t) {
			return nil
		}

		s.world.Step(cfg.Dt)
		s.advance(cfg.Dt)
		t += cfg.Dt
	}

	return nil
}

// tick fires due scripted triggers, delivers due motion samples, and applies
// shake impulses. Returns the advanced trigger cursor.
func (s *Simulator) tick(t float64, cfg Config, trigger int) int {
	for trigger < len(cfg.Triggers) && cfg.Triggers[trigger] <= t {
		s.injector.Pulse().Trigger()
		trigger++
	}
	if s.gate != nil && s.adapter != nil {
		for _, smp := range s.gate.Poll(t) {
			s.adapter.OnSample(smp)
		}
	}
	s.injector.Apply(s.world)
	return trigger
}

func (s *Simulator) advance(dt float64) {
	if s.clock != nil {
		s.clock.Advance(time.Duration(dt * float64(time.Second)))
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
