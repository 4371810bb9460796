package cepstrum

import (
	"fmt"

	"github.com/cwbudde/algo-alpha/dsp/window"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// WindowType selects the lifter shape.
type WindowType string

// Lifter shapes, spelled as they appear in analysis settings.
const (
	OneSided WindowType = "one sided"
	TwoSided WindowType = "two sided"
)

// Valid reports whether t names a supported lifter shape.
func (t WindowType) Valid() bool {
	return t == OneSided || t == TwoSided
}

// Lifter builds a lifter of length samples. The tapers are the halves of
// a symmetric Hann window of 2*taper points; a zero taper gives an all-ones
// window.
//
//	one sided: length-taper ones, then the falling half
//	two sided: the rising half, length-2*taper ones, the falling half
func Lifter(kind WindowType, length, taper int) ([]float64, error) {
	if length <= 0 || taper < 0 {
		return nil, invalidWindow("length %d, taper %d", length, taper)
	}

	out := make([]float64, 0, length)

	switch kind {
	case OneSided:
		if taper > length {
			return nil, invalidWindow("taper %d longer than window %d", taper, length)
		}

		out = appendOnes(out, length-taper)
		out = append(out, window.Falling(window.TypeHann, taper)...)
	case TwoSided:
		if 2*taper > length {
			return nil, invalidWindow("two tapers of %d longer than window %d", taper, length)
		}

		out = append(out, window.Rising(window.TypeHann, taper)...)
		out = appendOnes(out, length-2*taper)
		out = append(out, window.Falling(window.TypeHann, taper)...)
	default:
		return nil, invalidWindow("unknown type %q", kind)
	}

	return out, nil
}

// Lift returns the cepstrum segment [start, start+len(w)) multiplied by
// the lifter w.
func Lift(cepstrum []float64, start int, w []float64) ([]float64, error) {
	if start < 0 || start+len(w) > len(cepstrum) {
		return nil, invalidWindow("segment [%d, %d) outside cepstrum of %d samples", start, start+len(w), len(cepstrum))
	}

	out := make([]float64, len(w))
	copy(out, cepstrum[start:])

	if err := window.Multiply(out, w); err != nil {
		return nil, err
	}

	return out, nil
}

func appendOnes(dst []float64, n int) []float64 {
	for range n {
		dst = append(dst, 1)
	}

	return dst
}

func invalidWindow(format string, args ...any) error {
	return measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: "+format, append([]any{ErrWindow}, args...)...))
}
