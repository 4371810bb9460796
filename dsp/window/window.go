// Package window generates the tapers used to lift a cepstrum.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLength is returned by Multiply when the operands differ in length.
var ErrLength = errors.New("window: samples and coefficients differ in length")

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
)

// At evaluates the window at normalized position x in [0, 1], where 0 and
// 1 are the symmetric end points. Positions outside are clamped.
func (t Type) At(x float64) float64 {
	x = min(max(x, 0), 1)

	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	default:
		return 1
	}
}

// Generate returns the symmetric window of length n.
func Generate(t Type, n int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = t.At(0)

		return out
	}

	den := float64(n - 1)
	for i := range out {
		out[i] = t.At(float64(i) / den)
	}

	return out
}

// Rising returns the first n samples of the symmetric window of length 2n,
// a taper climbing from zero towards one.
func Rising(t Type, n int) []float64 {
	if n <= 0 {
		return nil
	}

	return Generate(t, 2*n)[:n:n]
}

// Falling returns the last n samples of the symmetric window of length 2n,
// a taper decaying from one towards zero.
func Falling(t Type, n int) []float64 {
	if n <= 0 {
		return nil
	}

	return Generate(t, 2*n)[n:]
}

// Multiply scales samples by coeffs element-wise in place.
func Multiply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return ErrLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}
