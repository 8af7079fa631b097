package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	result := FFT(data)

	if math.Abs(real(result[0])-4) > 1e-9 {
		t.Errorf("expected DC component 4, got %f", real(result[0]))
	}
	for i := 1; i < len(result); i++ {
		if math.Abs(real(result[i])) > 1e-9 || math.Abs(imag(result[i])) > 1e-9 {
			t.Errorf("bin %d: expected zero, got %v", i, result[i])
		}
	}
}

func TestSpectrumFindsSinusoid(t *testing.T) {
	// 2 Hz sinusoid sampled at 64 Hz for 2 seconds
	dt := 1.0 / 64.0
	n := 128
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 3.0 + math.Sin(2*math.Pi*2.0*float64(i)*dt)
	}

	got := DominantFrequency(signal, dt)
	if math.Abs(got-2.0) > 0.5 {
		t.Errorf("expected dominant frequency ~2 Hz, got %f", got)
	}
}

func TestSpectrumTruncatesOddLengths(t *testing.T) {
	dt := 0.01
	signal := make([]float64, 100)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 5.0 * float64(i) * dt)
	}

	freqs, power := Spectrum(signal, dt)
	// largest power of two below 100 is 64
	if len(power) != 32 || len(freqs) != 32 {
		t.Fatalf("expected 32 bins, got %d/%d", len(power), len(freqs))
	}
}

func TestSpectrumDegenerateInputs(t *testing.T) {
	if f, p := Spectrum(nil, 0.01); f != nil || p != nil {
		t.Error("expected nil spectrum for empty signal")
	}
	if f, p := Spectrum([]float64{1, 2, 3, 4}, 0); f != nil || p != nil {
		t.Error("expected nil spectrum for zero dt")
	}
}
