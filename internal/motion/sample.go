// Package motion turns accelerometer samples into shake triggers, behind a
// one-shot permission gate modeled after the platform sensor handshake.
package motion

import "math"

// Sample is one accelerometer reading. T is seconds since the source
// started. A nil axis means the sensor reported no data for it; a sample
// with every axis nil carries no acceleration at all.
type Sample struct {
	T float64  `yaml:"t"`
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
	Z *float64 `yaml:"z,omitempty"`
}

// Empty reports whether the device delivered no acceleration data.
func (s Sample) Empty() bool {
	return s.X == nil && s.Y == nil && s.Z == nil
}

// Magnitude computes sqrt(x²+y²+z²). Missing axes coerce to zero rather
// than invalidating the sample; this masks "no data" as zero acceleration,
// which is the observed behavior and is kept.
func (s Sample) Magnitude() float64 {
	x, y, z := axis(s.X), axis(s.Y), axis(s.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

func axis(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// At builds a fully populated sample, mostly for tests and the synthetic
// source.
func At(t, x, y, z float64) Sample {
	return Sample{T: t, X: &x, Y: &y, Z: &z}
}
