package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func twoSections() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestCascadeMatchesSectionsInSeries(t *testing.T) {
	coeffs := twoSections()
	s1, s2 := NewSection(coeffs[0]), NewSection(coeffs[1])
	c := NewCascade(coeffs)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	in := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}
	buf := append([]float64(nil), in...)
	NewCascade(coeffs).ProcessBlock(buf)

	for i, x := range in {
		want := s2.ProcessSample(s1.ProcessSample(x))
		if got := c.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("[%d] sample %v, want %v", i, got, want)
		}

		if !almostEqual(buf[i], want, eps) {
			t.Fatalf("[%d] block %v, want %v", i, buf[i], want)
		}
	}
}

func TestCascadeImpulseResponseLeavesRest(t *testing.T) {
	c := NewCascade(twoSections())
	c.ProcessSample(0.7)

	ir := c.ImpulseResponse(16)
	if len(ir) != 16 || !almostEqual(ir[0], 0.025, eps) {
		t.Fatalf("ir = %v", ir)
	}

	again := c.ImpulseResponse(16)
	for i := range ir {
		if ir[i] != again[i] {
			t.Fatalf("[%d] %v != %v", i, ir[i], again[i])
		}
	}

	if c.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}

func TestCascadeResponseIsProduct(t *testing.T) {
	coeffs := twoSections()
	c := NewCascade(coeffs)

	for _, f := range []float64{0, 100, 1000, 10000} {
		want := coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)
		if got := c.Response(f, 48000); cmplx.Abs(got-want) > eps {
			t.Fatalf("f=%v: %v, want %v", f, got, want)
		}

		wantDB := 20 * math.Log10(cmplx.Abs(want))
		if got := c.MagnitudeDB(f, 48000); !almostEqual(got, wantDB, 1e-9) {
			t.Fatalf("f=%v: %v dB, want %v", f, got, wantDB)
		}
	}
}
