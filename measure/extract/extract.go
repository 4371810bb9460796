// Package extract turns raw two-channel recordings into averaged
// responses ready for cepstral analysis.
//
// Each channel is reshaped into one segment per excitation repetition,
// every segment is sliced where the excitation starts (the located
// synchronization impulse plus the configured impulse delay) and the
// segments are averaged. For sequence excitations the averaged response
// still holds reps+1 sequence periods: the first one is discarded as
// pre-roll, the steady-state periods are averaged, and the impulse
// response is recovered through the sequence's circular correlation.
package extract

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-alpha/measure/excitation"
	"github.com/cwbudde/algo-alpha/measure/measerr"
	"github.com/cwbudde/algo-alpha/measure/mls"
)

// Errors returned by extract functions.
var (
	ErrChannelLength = errors.New("extract: channel lengths differ")
	ErrReshape       = errors.New("extract: recording does not divide into repetitions")
	ErrOffset        = errors.New("extract: start offset outside segment")
	ErrTooShort      = errors.New("extract: response shorter than the sequence periods")
	ErrNotLocated    = errors.New("extract: impulse not located")
)

// Locations holds the synchronization impulse index of each channel,
// measured within the first repetition.
type Locations struct {
	Microphone int
	Generator  int
}

// Responses holds the averaged (and for sequences, recovered) responses
// of both channels. Microphone and Generator have equal length; System is
// their difference.
type Responses struct {
	Microphone []float64
	Generator  []float64
	System     []float64
}

// Repetitions reshapes raw into reps+1 equal segments. The segments alias
// raw.
func Repetitions(raw []float64, reps int) ([][]float64, error) {
	if reps < 0 {
		return nil, measerr.Configf("extract: repetitions must be >= 0: %d", reps)
	}

	n := reps + 1
	if len(raw) == 0 || len(raw)%n != 0 {
		return nil, measerr.Wrap(measerr.ErrDataShape,
			fmt.Errorf("%w: %d samples into %d segments", ErrReshape, len(raw), n))
	}

	size := len(raw) / n
	segs := make([][]float64, n)

	for i := range segs {
		segs[i] = raw[i*size : (i+1)*size : (i+1)*size]
	}

	return segs, nil
}

// Average slices every segment at start and returns their elementwise
// mean.
func Average(segments [][]float64, start int) ([]float64, error) {
	if len(segments) == 0 {
		return nil, measerr.Wrap(measerr.ErrDataShape, fmt.Errorf("%w: no segments", ErrReshape))
	}

	size := len(segments[0])
	if start < 0 || start >= size {
		return nil, measerr.Wrap(measerr.ErrDataShape,
			fmt.Errorf("%w: %d not in [0, %d)", ErrOffset, start, size))
	}

	out := make([]float64, size-start)
	for _, seg := range segments {
		if len(seg) != size {
			return nil, measerr.Wrap(measerr.ErrDataShape,
				fmt.Errorf("%w: segment lengths %d and %d", ErrReshape, len(seg), size))
		}

		vecmath.AddBlockInPlace(out, seg[start:])
	}

	vecmath.ScaleBlockInPlace(out, 1/float64(len(segments)))

	return out, nil
}

// Extract averages both channels of a recording made with the excitation
// described by cfg and, for sequence excitations, recovers the impulse
// responses.
func Extract(cfg excitation.Config, mic, gen []float64, loc Locations) (*Responses, error) {
	if len(mic) != len(gen) {
		return nil, measerr.Wrap(measerr.ErrDataShape,
			fmt.Errorf("%w: microphone %d, generator %d", ErrChannelLength, len(mic), len(gen)))
	}

	if loc.Microphone < 0 || loc.Generator < 0 {
		return nil, measerr.Wrap(measerr.ErrSynchronization,
			fmt.Errorf("%w: microphone %d, generator %d", ErrNotLocated, loc.Microphone, loc.Generator))
	}

	delay := 0
	if cfg.Pad {
		delay = cfg.DelaySamples()
	}

	micAvg, err := channel(mic, cfg.Reps, loc.Microphone+delay)
	if err != nil {
		return nil, fmt.Errorf("extract: microphone: %w", err)
	}

	genAvg, err := channel(gen, cfg.Reps, loc.Generator+delay)
	if err != nil {
		return nil, fmt.Errorf("extract: generator: %w", err)
	}

	n := min(len(micAvg), len(genAvg))
	micAvg, genAvg = micAvg[:n:n], genAvg[:n:n]

	if cfg.Type.IsSequence() {
		if micAvg, err = recoverSequence(cfg, micAvg); err != nil {
			return nil, fmt.Errorf("extract: microphone: %w", err)
		}

		if genAvg, err = recoverSequence(cfg, genAvg); err != nil {
			return nil, fmt.Errorf("extract: generator: %w", err)
		}
	}

	system := make([]float64, len(micAvg))
	for i := range system {
		system[i] = micAvg[i] - genAvg[i]
	}

	return &Responses{Microphone: micAvg, Generator: genAvg, System: system}, nil
}

func channel(raw []float64, reps, start int) ([]float64, error) {
	segs, err := Repetitions(raw, reps)
	if err != nil {
		return nil, err
	}

	return Average(segs, start)
}

// SteadyState averages the steady-state sequence periods of an averaged
// response. With reps >= 1 the first of the reps+1 periods is pre-roll and
// is skipped; with reps == 0 the single period is returned.
func SteadyState(response []float64, period, reps int) ([]float64, error) {
	if period <= 0 || reps < 0 {
		return nil, measerr.Configf("extract: invalid sequence period %d x %d", period, reps+1)
	}

	if need := period * (reps + 1); len(response) < need {
		return nil, measerr.Wrap(measerr.ErrDataShape,
			fmt.Errorf("%w: %d samples, need %d", ErrTooShort, len(response), need))
	}

	first, count := 1, reps
	if reps == 0 {
		first, count = 0, 1
	}

	segs := make([][]float64, count)
	for i := range segs {
		off := (first + i) * period
		segs[i] = response[off : off+period]
	}

	return Average(segs, 0)
}

func recoverSequence(cfg excitation.Config, response []float64) ([]float64, error) {
	steady, err := SteadyState(response, cfg.PeriodSamples(), cfg.SequenceReps)
	if err != nil {
		return nil, err
	}

	if cfg.Type == excitation.InverseRepeatType {
		return mls.RecoverInverseRepeat(steady, cfg.Order)
	}

	return mls.Recover(steady, cfg.Order)
}
