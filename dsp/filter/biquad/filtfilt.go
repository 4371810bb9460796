package biquad

import "slices"

// Filter runs x through a fresh cascade built from coeffs and returns the
// filtered copy. The input is not modified.
func Filter(coeffs []Coefficients, x []float64) []float64 {
	out := slices.Clone(x)
	NewCascade(coeffs).ProcessBlock(out)

	return out
}

// FiltFilt applies the cascade forward and then backward over x, giving a
// zero-phase response with squared magnitude. The signal is treated as zero
// outside its support: the forward pass runs over a trailing run of zeros
// long enough for the cascade to ring out so the backward pass sees the
// full tail. The result has the same length as x.
func FiltFilt(coeffs []Coefficients, x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}

	tail := max(len(x), 64*len(coeffs))
	buf := make([]float64, len(x)+tail)
	copy(buf, x)

	cascade := NewCascade(coeffs)
	cascade.ProcessBlock(buf)

	slices.Reverse(buf)
	cascade.Reset()
	cascade.ProcessBlock(buf)
	slices.Reverse(buf)

	return buf[:len(x):len(x)]
}
