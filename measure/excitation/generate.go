package excitation

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-alpha/dsp/filter/biquad"
	"github.com/cwbudde/algo-alpha/dsp/filter/design/pass"
	"github.com/cwbudde/algo-alpha/measure/mls"
)

// Sequence returns reps+1 back-to-back periods of the bipolar MLS of the
// given order. The first period is the pre-roll that brings the system
// into steady state.
func Sequence(order, reps int) ([]float64, error) {
	seq, err := mls.Generate(order)
	if err != nil {
		return nil, err
	}

	return Repeat(mls.Bipolar(seq), reps), nil
}

// InverseRepeatSequence returns reps+1 periods of the inverse-repeat
// sequence of the given order, each 2*(2^order-1) samples long.
func InverseRepeatSequence(order, reps int) ([]float64, error) {
	seq, err := mls.Generate(order)
	if err != nil {
		return nil, err
	}

	return Repeat(mls.InverseRepeat(mls.Bipolar(seq)), reps), nil
}

// Generate synthesizes the excitation described by cfg: the base signal,
// optional low-pass then high-pass filtering, gain, synchronization
// padding and whole-signal repetition. The result has cfg.Samples()
// samples.
func Generate(cfg Config) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		sig []float64
		err error
	)

	switch cfg.Type {
	case SweptSineType:
		sig = SweptSine(cfg.LowerFrequency, cfg.UpperFrequency, cfg.Duration, cfg.SampleRate)
	case LowPassSweptSineType:
		sig, err = lowPassSweptSine(cfg)
	case MLSType:
		sig, err = Sequence(cfg.Order, cfg.SequenceReps)
	case InverseRepeatType:
		sig, err = InverseRepeatSequence(cfg.Order, cfg.SequenceReps)
	}

	if err != nil {
		return nil, err
	}

	if cfg.LowPass.Enabled {
		biquad.NewCascade(pass.ButterworthLP(cfg.LowPass.Cutoff, cfg.LowPass.Order, cfg.SampleRate)).ProcessBlock(sig)
	}

	if cfg.HighPass.Enabled {
		biquad.NewCascade(pass.ButterworthHP(cfg.HighPass.Cutoff, cfg.HighPass.Order, cfg.SampleRate)).ProcessBlock(sig)
	}

	vecmath.ScaleBlockInPlace(sig, cfg.Gain)

	if cfg.Pad {
		sig = Pad(sig, cfg.DelaySamples(), cfg.PaddingSamples())
	}

	return Repeat(sig, cfg.Reps), nil
}

// Pad frames sig with a leading unit impulse followed by delay-1 zeros, so
// the signal starts delay samples after the impulse, and appends padding
// zeros. The impulse delay is measured impulse to signal rather than as
// the length of the silent gap, which is one sample shorter; extraction
// then slices at exactly location+delay.
func Pad(sig []float64, delay, padding int) []float64 {
	delay = max(delay, 1)
	padding = max(padding, 0)

	out := make([]float64, delay+len(sig)+padding)
	out[0] = 1
	copy(out[delay:], sig)

	return out
}

// Repeat returns reps+1 back-to-back copies of sig.
func Repeat(sig []float64, reps int) []float64 {
	reps = max(reps, 0)

	out := make([]float64, 0, len(sig)*(reps+1))
	for range reps + 1 {
		out = append(out, sig...)
	}

	return out
}
