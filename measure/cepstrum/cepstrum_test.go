package cepstrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-alpha/internal/testutil"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// echo returns x convolved with 1 + g*z^-d, including the tail.
func echo(x []float64, g float64, d int) []float64 {
	out := make([]float64, len(x)+d)
	for i, v := range x {
		out[i] += v
		out[i+d] += g * v
	}

	return out
}

func TestPowerImpulse(t *testing.T) {
	c, err := Power(testutil.Impulse(16, 0), 64)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, c, make([]float64, 64), 1e-12)

	// a*delta has a flat log power spectrum of log(a^2).
	x := testutil.Impulse(16, 0)
	x[0] = 3

	c, err = Power(x, 64)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, 64)
	want[0] = math.Log(9)
	testutil.RequireSliceNearlyEqual(t, c, want, 1e-12)
}

func TestPowerEcho(t *testing.T) {
	const (
		n = 1024
		d = 8
		g = 0.5
	)

	c, err := Power(echo([]float64{1}, g, d), n)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, n)
	for k := 1; k*d < n/2; k++ {
		v := math.Pow(g, float64(k)) / float64(k)
		if k%2 == 0 {
			v = -v
		}

		want[k*d] = v
		want[n-k*d] = v
	}

	testutil.RequireSliceNearlyEqual(t, c, want, 1e-10)
}

func TestPowerZeroSignal(t *testing.T) {
	c, err := Power(make([]float64, 8), 8)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, c)

	if math.Abs(c[0]-2*math.Log(0x1p-511)) > 1e-9 {
		t.Fatalf("c[0] = %v", c[0])
	}
}

func TestPowerErrors(t *testing.T) {
	if _, err := Power([]float64{1}, 12); !errors.Is(err, ErrFFTSize) || !errors.Is(err, measerr.ErrConfiguration) {
		t.Fatalf("n=12: err = %v", err)
	}

	if _, err := Power(make([]float64, 9), 8); !errors.Is(err, ErrTooLong) || !errors.Is(err, measerr.ErrDataShape) {
		t.Fatalf("too long: err = %v", err)
	}
}

func TestDifferenceCancelsExcitation(t *testing.T) {
	const (
		n = 1024
		d = 10
		g = 0.5
	)

	gen := testutil.Noise(7, 0.5, 200)
	mic := echo(gen, g, d)

	got, err := Difference(mic, gen, n)
	if err != nil {
		t.Fatal(err)
	}

	want, err := Power(echo([]float64{1}, g, d), n)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)

	if _, err := Difference(mic, gen, 128); !errors.Is(err, ErrTooLong) {
		t.Fatalf("short FFT: err = %v", err)
	}
}

func TestAlpha(t *testing.T) {
	got, err := Alpha([]float64{0.5}, 16)
	if err != nil {
		t.Fatal(err)
	}

	for k, a := range got {
		if math.Abs(a-0.75) > 1e-12 {
			t.Fatalf("bin %d: alpha = %v, want 0.75", k, a)
		}
	}

	// Not clipped: a gain above one gives negative alpha.
	got, err = Alpha([]float64{0, 0, 2}, 8)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got[3]+3) > 1e-12 {
		t.Fatalf("alpha = %v, want -3", got[3])
	}

	if _, err := Alpha(make([]float64, 9), 8); !errors.Is(err, ErrTooLong) {
		t.Fatalf("too long: err = %v", err)
	}
}
