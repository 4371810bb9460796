// Package spectral wraps the FFT back ends used by the measurement
// packages.
//
// Power-of-two lengths run on algo-fft plans. Other lengths (maximum-length
// sequence periods are 2^n-1 samples) fall back to gonum's mixed-radix
// transform. Inverse transforms are normalized by 1/n in both cases.
package spectral

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Errors returned by spectral functions.
var (
	ErrInvalidSize = errors.New("spectral: transform size must be positive")
	ErrTooLong     = errors.New("spectral: input longer than transform size")
	ErrEmptyInput  = errors.New("spectral: input is empty")
)

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOf2 returns the next power of 2 >= n.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}

// Forward returns the n-point DFT of x, zero-padding x to n samples.
func Forward(x []float64, n int) ([]complex128, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}

	if len(x) > n {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLong, len(x), n)
	}

	padded := make([]complex128, n)
	for i, v := range x {
		padded[i] = complex(v, 0)
	}

	return transform(padded, false)
}

// ForwardComplex returns the DFT of x without padding.
func ForwardComplex(x []complex128) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	return transform(x, false)
}

// Inverse returns the normalized inverse DFT of spec.
func Inverse(spec []complex128) ([]complex128, error) {
	if len(spec) == 0 {
		return nil, ErrEmptyInput
	}

	return transform(spec, true)
}

// InverseReal returns the real part of the normalized inverse DFT of spec.
func InverseReal(spec []complex128) ([]float64, error) {
	td, err := Inverse(spec)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(td))
	for i, v := range td {
		out[i] = real(v)
	}

	return out, nil
}

// Power returns |X[k]|^2 for each bin.
func Power(spec []complex128) []float64 {
	if len(spec) == 0 {
		return nil
	}

	re := make([]float64, len(spec))
	im := make([]float64, len(spec))

	for i, c := range spec {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(spec))
	vecmath.Power(out, re, im)

	return out
}

func transform(src []complex128, inverse bool) ([]complex128, error) {
	n := len(src)
	dst := make([]complex128, n)

	if IsPowerOf2(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("spectral: failed to create FFT plan: %w", err)
		}

		if inverse {
			err = plan.Inverse(dst, src)
		} else {
			err = plan.Forward(dst, src)
		}

		if err != nil {
			return nil, fmt.Errorf("spectral: FFT failed: %w", err)
		}

		return dst, nil
	}

	fft := fourier.NewCmplxFFT(n)
	if !inverse {
		return fft.Coefficients(dst, src), nil
	}

	fft.Sequence(dst, src)

	scale := complex(1/float64(n), 0)
	for i := range dst {
		dst[i] *= scale
	}

	return dst, nil
}
