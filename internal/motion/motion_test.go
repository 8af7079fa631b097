package motion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/shakebox/internal/shake"
)

func newAdapter(t *testing.T) (*Adapter, *shake.Pulse, *shake.ManualClock) {
	t.Helper()
	clock := shake.NewManualClock()
	pulse := shake.NewPulse(clock)
	settings := shake.NewSettings()
	settings.SetThreshold(15)
	return NewAdapter(settings, pulse), pulse, clock
}

func TestMagnitudeCoercesMissingAxes(t *testing.T) {
	y := 3.0
	z := 4.0
	s := Sample{Y: &y, Z: &z}

	assert.False(t, s.Empty())
	assert.InDelta(t, 5.0, s.Magnitude(), 1e-12)
}

func TestEmptySampleIsIgnored(t *testing.T) {
	adapter, pulse, _ := newAdapter(t)

	triggered := adapter.OnSample(Sample{T: 1})
	assert.False(t, triggered)
	assert.False(t, pulse.Active())
}

func TestThresholdScenario(t *testing.T) {
	adapter, pulse, clock := newAdapter(t)

	// magnitude ≈ 15.588 > 15
	assert.True(t, adapter.OnSample(At(0, 9, 9, 9)))
	assert.True(t, pulse.Active())

	clock.Advance(200 * time.Millisecond)
	require.False(t, pulse.Active())

	// magnitude ≈ 8.66 < 15
	assert.False(t, adapter.OnSample(At(1, 5, 5, 5)))
	assert.False(t, pulse.Active())
}

func TestThresholdBoundaryDoesNotTrigger(t *testing.T) {
	adapter, pulse, _ := newAdapter(t)

	assert.False(t, adapter.OnSample(At(0, 15, 0, 0)), "m == threshold must not trigger")
	assert.False(t, pulse.Active())
}

type grantingSource struct {
	granted bool
	err     error
	asked   int
}

func (g *grantingSource) Next(float64) []Sample { return nil }

func (g *grantingSource) RequestPermission(context.Context) (bool, error) {
	g.asked++
	return g.granted, g.err
}

func TestGateImplicitGrantWithoutPermissionAPI(t *testing.T) {
	src := NewTraceSource([]Sample{At(0, 1, 2, 3)})
	g := NewGate(src, nil)

	require.Equal(t, Unrequested, g.State())
	assert.Nil(t, g.Poll(10), "nothing may be delivered before the handshake")

	assert.Equal(t, Granted, g.Request(context.Background()))
	assert.Len(t, g.Poll(10), 1)
}

func TestGateNoSourceIsDenied(t *testing.T) {
	g := NewGate(nil, nil)
	assert.Equal(t, Denied, g.Request(context.Background()))
	assert.Nil(t, g.Poll(10))
}

func TestGateDeniedAndErrorOutcomes(t *testing.T) {
	denied := &grantingSource{granted: false}
	g := NewGate(denied, nil)
	assert.Equal(t, Denied, g.Request(context.Background()))

	failing := &grantingSource{err: errors.New("sensor unavailable")}
	g = NewGate(failing, nil)
	assert.Equal(t, Denied, g.Request(context.Background()))
}

func TestGateIsOneShot(t *testing.T) {
	src := &grantingSource{granted: false}
	g := NewGate(src, nil)

	require.Equal(t, Denied, g.Request(context.Background()))
	assert.Equal(t, Denied, g.Request(context.Background()), "no re-request path exists")
	assert.Equal(t, 1, src.asked, "the handshake must run at most once")
}

func TestTraceSourceDeliversInTimeOrder(t *testing.T) {
	src := NewTraceSource([]Sample{
		At(2.0, 0, 0, 1),
		At(0.5, 0, 0, 2),
		At(1.0, 0, 0, 3),
	})

	first := src.Next(1.0)
	require.Len(t, first, 2)
	assert.Equal(t, 0.5, first[0].T)
	assert.Equal(t, 1.0, first[1].T)

	assert.Nil(t, src.Next(1.5), "already-delivered samples must not repeat")

	second := src.Next(5)
	require.Len(t, second, 1)
	assert.Equal(t, 2.0, second[0].T)
}

func TestLoadTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.yaml")
	data := []byte("samples:\n  - t: 0.5\n    x: 9\n    y: 9\n    z: 9\n  - t: 1.5\n    y: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	src, err := LoadTrace(path)
	require.NoError(t, err)
	require.Equal(t, 2, src.Len())

	samples := src.Next(2)
	require.Len(t, samples, 2)
	assert.InDelta(t, 15.588, samples[0].Magnitude(), 0.001)
	assert.Nil(t, samples[1].X, "missing axes stay missing in the parsed trace")
	assert.InDelta(t, 2.0, samples[1].Magnitude(), 1e-12)
}

func TestWobbleSourceEmitsAtFixedRate(t *testing.T) {
	src := NewWobbleSource(3)

	out := src.Next(1.0)
	require.NotEmpty(t, out)
	assert.GreaterOrEqual(t, len(out), 50, "50Hz source should emit ~51 samples in the first second")

	prev := -1.0
	for _, s := range out {
		require.Greater(t, s.T, prev)
		prev = s.T
	}

	assert.Nil(t, src.Next(1.0), "no new samples until time advances")
}
