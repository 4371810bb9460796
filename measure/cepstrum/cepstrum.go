package cepstrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-alpha/internal/spectral"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// smallestNormal floors the power spectrum so log stays finite.
const smallestNormal = 0x1p-1022

// Errors returned by cepstrum functions.
var (
	ErrFFTSize    = errors.New("cepstrum: FFT size must be a power of two")
	ErrTooLong    = errors.New("cepstrum: response longer than FFT size")
	ErrWindow     = errors.New("cepstrum: invalid lifter window")
	ErrDecimation = errors.New("cepstrum: invalid decimation")
)

// Power returns the n-point power cepstrum IFFT(log|FFT(x, n)|^2) of x,
// zero-padding x to n samples. n must be a power of two no smaller than
// len(x).
func Power(x []float64, n int) ([]float64, error) {
	if !spectral.IsPowerOf2(n) {
		return nil, measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: %d", ErrFFTSize, n))
	}

	if len(x) > n {
		return nil, measerr.Wrap(measerr.ErrDataShape, fmt.Errorf("%w: %d > %d", ErrTooLong, len(x), n))
	}

	spec, err := spectral.Forward(x, n)
	if err != nil {
		return nil, err
	}

	for k, p := range spectral.Power(spec) {
		spec[k] = complex(math.Log(math.Max(p, smallestNormal)), 0)
	}

	return spectral.InverseReal(spec)
}

// Difference returns the microphone power cepstrum minus the generator
// power cepstrum.
func Difference(mic, gen []float64, n int) ([]float64, error) {
	cm, err := Power(mic, n)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: microphone: %w", err)
	}

	cg, err := Power(gen, n)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: generator: %w", err)
	}

	for i := range cm {
		cm[i] -= cg[i]
	}

	return cm, nil
}

// Alpha returns 1 - |FFT(ir, n)|^2 for every one of the n bins.
func Alpha(ir []float64, n int) ([]float64, error) {
	if !spectral.IsPowerOf2(n) {
		return nil, measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: %d", ErrFFTSize, n))
	}

	if len(ir) > n {
		return nil, measerr.Wrap(measerr.ErrDataShape, fmt.Errorf("%w: %d > %d", ErrTooLong, len(ir), n))
	}

	spec, err := spectral.Forward(ir, n)
	if err != nil {
		return nil, err
	}

	alpha := spectral.Power(spec)
	for k, p := range alpha {
		alpha[k] = 1 - p
	}

	return alpha, nil
}
