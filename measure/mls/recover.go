package mls

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// Recover returns the periodic impulse response of a system from one
// period of its steady-state response to the bipolar MLS of the given
// order. The response must hold exactly 2^order-1 samples.
//
// The circular cross-correlation r of the response with the sequence
// equals (L+1)h - sum(h), which is inverted exactly:
//
//	h[k] = (r[k] + sum(r)) / (L+1)
func Recover(periodResponse []float64, order int) ([]float64, error) {
	seq, err := Generate(order)
	if err != nil {
		return nil, err
	}

	l := len(seq)
	if len(periodResponse) != l {
		return nil, measerr.Wrap(measerr.ErrDataShape,
			fmt.Errorf("%w: got %d samples, want %d", ErrPeriod, len(periodResponse), l))
	}

	r := correlate(periodResponse, Bipolar(seq))
	total := floats.Sum(r)

	h := make([]float64, l)
	for k := range h {
		h[k] = (r[k] + total) / float64(l+1)
	}

	return h, nil
}

// RecoverInverseRepeat returns the impulse response of a system from one
// period (2*(2^order-1) samples) of its steady-state response to the
// inverse-repeat sequence of the given order. The result holds the first L
// samples of the response, exact for systems whose response is shorter
// than L.
//
// Over the 2L period the correlation satisfies
// r[k] = 2(L+1)h[k] - 2(-1)^k A, with A the alternating sum of h, so
//
//	A    = 1/2 * sum_{k<L} (-1)^k r[k]
//	h[k] = (r[k] + 2(-1)^k A) / (2(L+1))
func RecoverInverseRepeat(periodResponse []float64, order int) ([]float64, error) {
	seq, err := Generate(order)
	if err != nil {
		return nil, err
	}

	l := len(seq)
	if len(periodResponse) != 2*l {
		return nil, measerr.Wrap(measerr.ErrDataShape,
			fmt.Errorf("%w: got %d samples, want %d", ErrPeriod, len(periodResponse), 2*l))
	}

	r := correlate(periodResponse, InverseRepeat(Bipolar(seq)))

	var alt float64
	for k := range l {
		alt += alternate(k) * r[k]
	}
	alt /= 2

	h := make([]float64, l)
	for k := range h {
		h[k] = (r[k] + 2*alternate(k)*alt) / float64(2*(l+1))
	}

	return h, nil
}

func alternate(k int) float64 {
	if k%2 == 1 {
		return -1
	}

	return 1
}

// correlate returns the circular cross-correlation
// r[k] = sum_n y[n] x[(n-k) mod N] computed in the DFT domain. Sequence
// periods are odd or twice odd, so gonum's mixed-radix transform is used.
func correlate(y, x []float64) []float64 {
	n := len(y)
	if n == 1 {
		return []float64{y[0] * x[0]}
	}

	fft := fourier.NewFFT(n)
	ys := fft.Coefficients(nil, y)
	xs := fft.Coefficients(nil, x)

	for i := range ys {
		ys[i] *= cmplx.Conj(xs[i])
	}

	r := fft.Sequence(nil, ys)
	floats.Scale(1/float64(n), r)

	return r
}
