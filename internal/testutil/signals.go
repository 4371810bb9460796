// Package testutil holds signal fixtures and tolerance checks shared by the
// measurement tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of amp*sin(2*pi*freq*i/rate).
func Sine(freq, rate, amp float64, n int) []float64 {
	w := 2 * math.Pi * freq / rate
	out := make([]float64, n)

	for i := range out {
		out[i] = amp * math.Sin(w*float64(i))
	}

	return out
}

// Noise returns n uniform samples in [-amp, amp) drawn from a seeded source.
func Noise(seed int64, amp float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)

	for i := range out {
		out[i] = amp * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns n samples that are zero except for a 1 at pos. A pos
// outside [0, n) yields all zeros.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}

	return out
}

// DC returns n samples equal to v.
func DC(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// Ones returns n samples equal to 1.
func Ones(n int) []float64 { return DC(1, n) }

// Delay shifts x right by d samples, keeping its length.
func Delay(x []float64, d int) []float64 {
	out := make([]float64, len(x))
	if d < len(x) {
		copy(out[d:], x)
	}

	return out
}

// Convolve returns the first len(x) samples of the linear convolution x*h,
// the response of a system h that starts at rest.
func Convolve(x, h []float64) []float64 {
	out := make([]float64, len(x))

	for j, v := range h {
		if v == 0 {
			continue
		}

		for i := j; i < len(out); i++ {
			out[i] += v * x[i-j]
		}
	}

	return out
}
