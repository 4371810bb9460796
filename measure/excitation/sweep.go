package excitation

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-alpha/dsp/filter/biquad"
	"github.com/cwbudde/algo-alpha/dsp/filter/design/pass"
	"github.com/cwbudde/algo-alpha/internal/spectral"
)

const (
	// lowPassOrder is the Butterworth order band-limiting the flattened
	// sweep to its upper frequency.
	lowPassOrder = 8

	// magnitudeFloor bounds spectral bins below this fraction of the peak
	// before they are inverted and logged (-160 dB).
	magnitudeFloor = 1e-8
)

// SweptSine returns round(T*fs) samples of the linear chirp
//
//	s(t) = sin((a*t + b) * t),  a = pi*(f1-f0)/T,  b = 2*pi*f0
//
// whose instantaneous frequency runs from f0 to f1 over T seconds.
func SweptSine(f0, f1, duration, sampleRate float64) []float64 {
	a := math.Pi * (f1 - f0) / duration

	return chirp(a, 2*math.Pi*f0, duration, sampleRate)
}

func chirp(a, b, duration, sampleRate float64) []float64 {
	n := int(math.Round(duration * sampleRate))
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = math.Sin((a*t + b) * t)
	}

	return out
}

// LowPassSweptSine returns a swept sine with a flattened magnitude
// spectrum, band-limited to f1 and normalized to a peak of exactly 1.
//
// The chirp is synthesized at the internally doubled bandwidth
// a = pi*(fs/2 - f0)/(2T). Its spectrum S (fftSize points) is whitened by
// a minimum-phase inverse filter obtained homomorphically: the real
// cepstrum c of 1/|S| is folded onto the causal half (c[0] and c[N/2]
// kept, c[1..N/2-1] doubled, the rest zeroed), transformed back and
// exponentiated. The whitened signal is truncated to the chirp length and
// passed through an 8th-order Butterworth low-pass at f1.
func LowPassSweptSine(f0, f1, duration, sampleRate float64, fftSize int) ([]float64, error) {
	cfg := Config{
		Type:           LowPassSweptSineType,
		SampleRate:     sampleRate,
		LowerFrequency: f0,
		UpperFrequency: f1,
		Duration:       duration,
		FFTSize:        fftSize,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return lowPassSweptSine(cfg)
}

func lowPassSweptSine(cfg Config) ([]float64, error) {
	a := math.Pi * (cfg.SampleRate/2 - cfg.LowerFrequency) / (2 * cfg.Duration)
	s := chirp(a, 2*math.Pi*cfg.LowerFrequency, cfg.Duration, cfg.SampleRate)

	spec, err := spectral.Forward(s, cfg.FFTSize)
	if err != nil {
		return nil, invalid(ErrFFTSize, "%v", err)
	}

	inverse, err := minimumPhaseInverse(spec)
	if err != nil {
		return nil, err
	}

	for k := range spec {
		spec[k] *= inverse[k]
	}

	flat, err := spectral.InverseReal(spec)
	if err != nil {
		return nil, err
	}

	flat = flat[:len(s):len(s)]

	coeffs := pass.ButterworthLP(cfg.UpperFrequency, lowPassOrder, cfg.SampleRate)
	if coeffs == nil {
		return nil, invalid(ErrFilter, "low-pass at %v Hz", cfg.UpperFrequency)
	}

	biquad.NewCascade(coeffs).ProcessBlock(flat)

	if err := normalizePeak(flat); err != nil {
		return nil, err
	}

	return flat, nil
}

// minimumPhaseInverse returns the spectrum of the minimum-phase filter
// whose magnitude is 1/|spec|.
func minimumPhaseInverse(spec []complex128) ([]complex128, error) {
	n := len(spec)

	peak := 0.0
	for _, v := range spec {
		peak = math.Max(peak, cmplx.Abs(v))
	}

	floor := peak * magnitudeFloor
	if floor == 0 {
		floor = math.SmallestNonzeroFloat64
	}

	logInv := make([]complex128, n)
	for k, v := range spec {
		logInv[k] = complex(-math.Log(math.Max(cmplx.Abs(v), floor)), 0)
	}

	c, err := spectral.InverseReal(logInv)
	if err != nil {
		return nil, err
	}

	half := n / 2
	folded := make([]complex128, n)
	folded[0] = complex(c[0], 0)

	for k := 1; k < half; k++ {
		folded[k] = complex(2*c[k], 0)
	}

	if half > 0 {
		folded[half] = complex(c[half], 0)
	}

	m, err := spectral.ForwardComplex(folded)
	if err != nil {
		return nil, err
	}

	for k := range m {
		m[k] = cmplx.Exp(m[k])
	}

	return m, nil
}

func normalizePeak(x []float64) error {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}

	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return invalid(ErrGain, "cannot normalize signal with peak %v", peak)
	}

	for i := range x {
		x[i] /= peak
	}

	return nil
}
