package excitation

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-alpha/internal/spectral"
	"github.com/cwbudde/algo-alpha/measure/measerr"
	"github.com/cwbudde/algo-alpha/measure/mls"
)

// SignalType selects the excitation waveform.
type SignalType string

// Signal types, spelled as they appear in measurement settings.
const (
	SweptSineType        SignalType = "swept sine"
	LowPassSweptSineType SignalType = "low pass swept sine"
	MLSType              SignalType = "maximum length sequence"
	InverseRepeatType    SignalType = "inverse repeat sequence"
)

// IsSequence reports whether t is one of the sequence excitations.
func (t SignalType) IsSequence() bool {
	return t == MLSType || t == InverseRepeatType
}

// Valid reports whether t names a supported signal type.
func (t SignalType) Valid() bool {
	switch t {
	case SweptSineType, LowPassSweptSineType, MLSType, InverseRepeatType:
		return true
	default:
		return false
	}
}

// Errors returned by excitation functions. All of them are tagged with
// measerr.ErrConfiguration.
var (
	ErrSignalType  = errors.New("excitation: unknown signal type")
	ErrSampleRate  = errors.New("excitation: sample rate must be positive")
	ErrFrequency   = errors.New("excitation: invalid frequency range")
	ErrDuration    = errors.New("excitation: signal length must be positive")
	ErrFFTSize     = errors.New("excitation: invalid FFT size")
	ErrFilter      = errors.New("excitation: invalid filter")
	ErrGain        = errors.New("excitation: gain must be finite")
	ErrPadding     = errors.New("excitation: invalid padding")
	ErrRepetitions = errors.New("excitation: repetitions must be >= 0")
)

// Filter describes an optional Butterworth pre-filter.
type Filter struct {
	Enabled bool
	Cutoff  float64 // Hz
	Order   int
}

// Config describes one excitation signal.
type Config struct {
	Type       SignalType
	SampleRate float64 // Hz

	// Swept sine parameters.
	LowerFrequency float64 // Hz
	UpperFrequency float64 // Hz
	Duration       float64 // seconds
	FFTSize        int     // low pass swept sine only

	// Sequence parameters.
	Order        int // shift register length (taps)
	SequenceReps int // steady-state periods after the pre-roll period

	LowPass  Filter
	HighPass Filter
	Gain     float64

	Pad          bool
	ImpulseDelay float64 // seconds between impulse and signal
	Padding      float64 // seconds of trailing silence

	Reps int // extra copies of the padded signal
}

// Validate checks that the configuration can be synthesized.
func (c Config) Validate() error {
	if !c.Type.Valid() {
		return invalid(ErrSignalType, "%q", c.Type)
	}

	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return invalid(ErrSampleRate, "%v", c.SampleRate)
	}

	nyquist := c.SampleRate / 2

	switch c.Type {
	case SweptSineType, LowPassSweptSineType:
		if c.LowerFrequency < 0 || c.LowerFrequency >= c.UpperFrequency || c.UpperFrequency > nyquist {
			return invalid(ErrFrequency, "%v..%v Hz at %v Hz", c.LowerFrequency, c.UpperFrequency, c.SampleRate)
		}

		if c.SweepSamples() < 1 {
			return invalid(ErrDuration, "%v s", c.Duration)
		}

		if c.Type == LowPassSweptSineType {
			if c.UpperFrequency >= nyquist {
				return invalid(ErrFrequency, "upper frequency %v Hz must be below Nyquist", c.UpperFrequency)
			}

			if !spectral.IsPowerOf2(c.FFTSize) || c.FFTSize < c.SweepSamples() {
				return invalid(ErrFFTSize, "%d for %d samples", c.FFTSize, c.SweepSamples())
			}
		}
	case MLSType, InverseRepeatType:
		if c.Order < mls.MinOrder || c.Order > mls.MaxOrder {
			return measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: %d", mls.ErrOrder, c.Order))
		}

		if c.SequenceReps < 0 {
			return invalid(ErrRepetitions, "sequence reps %d", c.SequenceReps)
		}
	}

	for _, f := range []Filter{c.LowPass, c.HighPass} {
		if f.Enabled && (f.Order < 1 || !(f.Cutoff > 0) || f.Cutoff >= nyquist) {
			return invalid(ErrFilter, "cutoff %v Hz, order %d", f.Cutoff, f.Order)
		}
	}

	if math.IsNaN(c.Gain) || math.IsInf(c.Gain, 0) {
		return invalid(ErrGain, "%v", c.Gain)
	}

	if c.Pad && (c.DelaySamples() < 1 || c.Padding < 0) {
		return invalid(ErrPadding, "impulse delay %v s, padding %v s", c.ImpulseDelay, c.Padding)
	}

	if c.Reps < 0 {
		return invalid(ErrRepetitions, "signal reps %d", c.Reps)
	}

	return nil
}

// SweepSamples returns round(Duration * SampleRate).
func (c Config) SweepSamples() int {
	return int(math.Round(c.Duration * c.SampleRate))
}

// DelaySamples returns the distance in samples between the
// synchronization impulse and the start of the signal.
func (c Config) DelaySamples() int {
	return int(math.Round(c.ImpulseDelay * c.SampleRate))
}

// PaddingSamples returns the length of the trailing silence.
func (c Config) PaddingSamples() int {
	return int(math.Round(c.Padding * c.SampleRate))
}

// PeriodSamples returns the length of one sequence period: L for an MLS
// and 2L for an IRS. It is zero for swept sines.
func (c Config) PeriodSamples() int {
	switch c.Type {
	case MLSType:
		return mls.Length(c.Order)
	case InverseRepeatType:
		return 2 * mls.Length(c.Order)
	default:
		return 0
	}
}

// SignalSamples returns the length of the unpadded signal.
func (c Config) SignalSamples() int {
	if c.Type.IsSequence() {
		return c.PeriodSamples() * (c.SequenceReps + 1)
	}

	return c.SweepSamples()
}

// RepetitionSamples returns the length of one padded repetition.
func (c Config) RepetitionSamples() int {
	n := c.SignalSamples()
	if c.Pad {
		n += c.DelaySamples() + c.PaddingSamples()
	}

	return n
}

// Samples returns the total length produced by Generate.
func (c Config) Samples() int {
	return c.RepetitionSamples() * (c.Reps + 1)
}

func invalid(kind error, format string, args ...any) error {
	return measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: "+format, append([]any{kind}, args...)...))
}
