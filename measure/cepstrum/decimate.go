package cepstrum

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-alpha/dsp/filter/biquad"
	"github.com/cwbudde/algo-alpha/dsp/filter/design/pass"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// DefaultAntialiasCutoff is the anti-aliasing cutoff, as a fraction of
// the decimated Nyquist frequency, used when none is configured.
const DefaultAntialiasCutoff = 0.8

// Decimate low-pass filters x with a zero-phase (forward-backward)
// Butterworth cascade of the given order and keeps every factor-th
// sample. cutoff is a fraction of the decimated Nyquist frequency in
// (0, 1]. A factor of 1 returns a copy of x.
func Decimate(x []float64, factor, order int, cutoff float64) ([]float64, error) {
	if factor < 1 {
		return nil, invalidDecimation("factor %d", factor)
	}

	if factor == 1 {
		return slices.Clone(x), nil
	}

	if !(cutoff > 0) || cutoff > 1 {
		return nil, invalidDecimation("cutoff %v", cutoff)
	}

	coeffs := pass.ButterworthLPNormalized(cutoff/float64(factor), order)
	if coeffs == nil {
		return nil, invalidDecimation("filter order %d", order)
	}

	filtered := biquad.FiltFilt(coeffs, x)

	out := make([]float64, 0, (len(filtered)+factor-1)/factor)
	for i := 0; i < len(filtered); i += factor {
		out = append(out, filtered[i])
	}

	return out, nil
}

func invalidDecimation(format string, args ...any) error {
	return measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: "+format, append([]any{ErrDecimation}, args...)...))
}
