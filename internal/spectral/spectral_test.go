package spectral

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-alpha/internal/testutil"
)

func naiveDFT(x []float64, n int) []complex128 {
	out := make([]complex128, n)
	for k := range out {
		var sum complex128
		for j, v := range x {
			sum += complex(v, 0) * cmplx.Exp(complex(0, -2*math.Pi*float64(j*k)/float64(n)))
		}
		out[k] = sum
	}
	return out
}

func TestForwardMatchesNaiveDFT(t *testing.T) {
	x := testutil.Noise(3, 1, 20)

	for _, n := range []int{32, 31, 21, 64} {
		got, err := Forward(x, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := naiveDFT(x, n)
		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-9 {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	x := testutil.Noise(11, 1, 15)

	for _, n := range []int{16, 15, 30} {
		spec, err := Forward(x, n)
		if err != nil {
			t.Fatal(err)
		}
		back, err := InverseReal(spec)
		if err != nil {
			t.Fatal(err)
		}
		want := make([]float64, n)
		copy(want, x)
		testutil.RequireSliceNearlyEqual(t, back, want, 1e-12)
	}
}

func TestForwardErrors(t *testing.T) {
	if _, err := Forward([]float64{1}, 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("size 0: err = %v", err)
	}
	if _, err := Forward([]float64{1, 2, 3}, 2); !errors.Is(err, ErrTooLong) {
		t.Fatalf("too long: err = %v", err)
	}
	if _, err := Inverse(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("empty inverse: err = %v", err)
	}
}

func TestPower(t *testing.T) {
	got := Power([]complex128{3 + 4i, -1, 2i})
	testutil.RequireSliceNearlyEqual(t, got, []float64{25, 1, 4}, 1e-12)
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1024, 1024}}
	for _, tt := range tests {
		if got := NextPowerOf2(tt.in); got != tt.want {
			t.Errorf("NextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if IsPowerOf2(0) || IsPowerOf2(12) || !IsPowerOf2(4096) {
		t.Error("IsPowerOf2 misclassified")
	}
}

func TestAnalyticRealPartIsInput(t *testing.T) {
	x := testutil.Noise(5, 1, 100)
	a, err := Analytic(x)
	if err != nil {
		t.Fatal(err)
	}
	re := make([]float64, len(a))
	for i, v := range a {
		re[i] = real(v)
	}
	testutil.RequireSliceNearlyEqual(t, re, x, 1e-9)
}

func TestEnvelopeOfImpulsePeaksAtImpulse(t *testing.T) {
	const k = 300
	env, err := Envelope(testutil.Impulse(1000, k))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(env[k]-1) > 1e-9 {
		t.Fatalf("env[k] = %v, want 1", env[k])
	}
	// The Hilbert pre-lobe at k-1 is close to 2/pi.
	if math.Abs(env[k-1]-2/math.Pi) > 0.01 {
		t.Fatalf("env[k-1] = %v, want ~%v", env[k-1], 2/math.Pi)
	}
	for i, v := range env {
		if i != k && v >= env[k] {
			t.Fatalf("env[%d] = %v >= peak %v", i, v, env[k])
		}
	}
}

func TestEnvelopeOfSineIsFlat(t *testing.T) {
	x := testutil.Sine(1000, 48000, 0.5, 4800)
	env, err := Envelope(x)
	if err != nil {
		t.Fatal(err)
	}
	// Away from the edges the envelope equals the amplitude.
	for i := 1000; i < 3800; i++ {
		if math.Abs(env[i]-0.5) > 0.02 {
			t.Fatalf("env[%d] = %v, want ~0.5", i, env[i])
		}
	}
}
