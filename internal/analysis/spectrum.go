// Package analysis extracts frequency content from recorded runs.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a power-of-two length
// signal via radix-2 Cooley-Tukey.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// Spectrum prepares an arbitrary-length signal (mean removed, truncated to
// the largest power of two) and returns frequency bins in Hz alongside the
// power at each bin. dt is the sample spacing in seconds.
func Spectrum(signal []float64, dt float64) (freqs, power []float64) {
	n := largestPowerOfTwo(len(signal))
	if n < 2 || dt <= 0 {
		return nil, nil
	}

	mean := 0.0
	for _, v := range signal[:n] {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i := 0; i < n; i++ {
		centered[i] = signal[i] - mean
	}

	power = PowerSpectrum(centered)
	freqs = make([]float64, len(power))
	for i := range freqs {
		freqs[i] = float64(i) / (float64(n) * dt)
	}
	return freqs, power
}

// DominantFrequency returns the non-DC bin with the most power.
func DominantFrequency(signal []float64, dt float64) float64 {
	freqs, power := Spectrum(signal, dt)
	if len(power) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[best] {
			best = i
		}
	}
	return freqs[best]
}

func largestPowerOfTwo(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	if n == 0 {
		return 0
	}
	return p
}
