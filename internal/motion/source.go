package motion

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Trace is the on-disk format for recorded motion: a yaml list of
// timestamped samples.
type Trace struct {
	Samples []Sample `yaml:"samples"`
}

// TraceSource replays a recorded trace against simulation time.
type TraceSource struct {
	samples []Sample
	cursor  int
}

// LoadTrace reads a yaml motion trace and returns a source replaying it.
func LoadTrace(path string) (*TraceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("motion: read trace: %w", err)
	}
	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("motion: parse trace: %w", err)
	}
	return NewTraceSource(tr.Samples), nil
}

// NewTraceSource builds a source from samples, sorting them by time.
func NewTraceSource(samples []Sample) *TraceSource {
	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	return &TraceSource{samples: sorted}
}

// Next returns the samples due at or before t that have not been delivered
// yet.
func (s *TraceSource) Next(t float64) []Sample {
	start := s.cursor
	for s.cursor < len(s.samples) && s.samples[s.cursor].T <= t {
		s.cursor++
	}
	if start == s.cursor {
		return nil
	}
	return s.samples[start:s.cursor]
}

// Len reports the total number of samples in the trace.
func (s *TraceSource) Len() int { return len(s.samples) }

// WobbleSource synthesizes handheld jitter: a low-amplitude sinusoid with
// occasional sharp spikes, sampled at a fixed rate. It stands in for the
// device sensor in interactive runs.
type WobbleSource struct {
	rng      *rand.Rand
	interval float64
	next     float64
	baseAmp  float64
	spikeAmp float64
	spikeP   float64
}

func NewWobbleSource(seed int64) *WobbleSource {
	return &WobbleSource{
		rng:      rand.New(rand.NewSource(seed)),
		interval: 1.0 / 50.0,
		baseAmp:  3.0,
		spikeAmp: 28.0,
		spikeP:   0.02,
	}
}

func (s *WobbleSource) Next(t float64) []Sample {
	var out []Sample
	for s.next <= t {
		amp := s.baseAmp
		if s.rng.Float64() < s.spikeP {
			amp = s.spikeAmp
		}
		phase := s.next * 2 * math.Pi
		out = append(out, At(s.next,
			amp*math.Sin(phase*1.3)*s.rng.Float64(),
			amp*math.Cos(phase*0.7)*s.rng.Float64(),
			amp*math.Sin(phase*2.1)*s.rng.Float64(),
		))
		s.next += s.interval
	}
	return out
}
