package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients describes one second-order section with a0 normalized to 1.
// Processing uses Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// DCGain returns H(1).
func (c Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// Response evaluates H(e^jw) at freq Hz for the given sample rate.
func (c Coefficients) Response(freq, sampleRate float64) complex128 {
	z := cmplx.Rect(1, -2*math.Pi*freq/sampleRate)
	num := complex(c.B0, 0) + z*(complex(c.B1, 0)+z*complex(c.B2, 0))
	den := 1 + z*(complex(c.A1, 0)+z*complex(c.A2, 0))

	return num / den
}

// MagnitudeDB returns 20*log10|H| at freq Hz.
func (c Coefficients) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freq, sampleRate)))
}

// Section is a stateful second-order filter.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section at rest.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset returns the section to rest.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}
