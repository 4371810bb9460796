package biquad

import (
	"math"
	"math/cmplx"
)

// Cascade runs a signal through sections in series. Higher-order
// Butterworth designs are expressed as one Cascade.
type Cascade struct {
	sections []Section
}

// NewCascade builds a Cascade at rest with one section per coefficient set.
func NewCascade(coeffs []Coefficients) *Cascade {
	c := &Cascade{sections: make([]Section, len(coeffs))}
	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}

	return c
}

// Len returns the number of sections.
func (c *Cascade) Len() int { return len(c.sections) }

// ProcessSample filters one sample through every section.
func (c *Cascade) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through every section.
func (c *Cascade) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset returns every section to rest.
func (c *Cascade) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Response evaluates the product of the section responses at freq Hz.
func (c *Cascade) Response(freq, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freq, sampleRate)
	}

	return h
}

// MagnitudeDB returns 20*log10|H| of the cascade at freq Hz.
func (c *Cascade) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freq, sampleRate)))
}

// ImpulseResponse returns the first n samples of the cascade's impulse
// response. The cascade is left at rest.
func (c *Cascade) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	c.Reset()

	ir := make([]float64, n)
	ir[0] = 1
	c.ProcessBlock(ir)
	c.Reset()

	return ir
}
