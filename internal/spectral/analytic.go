package spectral

import "github.com/cwbudde/algo-vecmath"

// Analytic returns the analytic signal x + j*H{x}, computed by zeroing the
// negative-frequency half of a zero-padded spectrum. The result has the
// same length as x and its real part equals x.
func Analytic(x []float64) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := NextPowerOf2(2 * len(x))

	spec, err := Forward(x, n)
	if err != nil {
		return nil, err
	}

	half := n / 2
	for k := 1; k < half; k++ {
		spec[k] *= 2
	}

	for k := half + 1; k < n; k++ {
		spec[k] = 0
	}

	td, err := Inverse(spec)
	if err != nil {
		return nil, err
	}

	return td[:len(x)], nil
}

// Envelope returns the magnitude of the analytic signal of x.
func Envelope(x []float64) ([]float64, error) {
	a, err := Analytic(x)
	if err != nil {
		return nil, err
	}

	re := make([]float64, len(a))
	im := make([]float64, len(a))

	for i, c := range a {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(a))
	vecmath.Magnitude(out, re, im)

	return out, nil
}
