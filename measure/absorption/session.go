package absorption

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// ErrTransport reports a failed playback/record call. It is tagged with
// measerr.ErrDevice.
var ErrTransport = errors.New("absorption: audio transport failed")

// Transport plays a signal and records the microphone (measured) and the
// generator loopback (reference) channels simultaneously. It either
// returns both complete channels or fails.
type Transport interface {
	PlaybackAndRecord(ctx context.Context, signal []float64) (measured, reference []float64, err error)
}

// Measurement is a captured recording together with the settings it was
// made with, including the located impulses.
type Measurement struct {
	Settings  MeasurementSettings
	Recording Recording
}

// Session captures measurements through a transport.
type Session struct {
	transport Transport
	logger    *slog.Logger
}

// NewSession returns a session using t, logging to logger (slog.Default
// when nil).
func NewSession(t Transport, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{transport: t, logger: logger}
}

// Measure synthesizes the excitation for ms, plays and records it, and
// locates the synchronization impulses.
func (s *Session) Measure(ctx context.Context, ms MeasurementSettings) (*Measurement, error) {
	if err := ms.ValidateLocate(); err != nil {
		return nil, err
	}

	signal, err := Synthesize(ms)
	if err != nil {
		return nil, err
	}

	s.logger.Info("starting measurement",
		"signal_type", ms.SignalType,
		"samples", len(signal),
		"sample_rate", ms.SampleRate,
		"input", ms.InputDevice,
		"output", ms.OutputDevice)

	mic, gen, err := s.transport.PlaybackAndRecord(ctx, signal)
	if err != nil {
		s.logger.Error("playback and record failed", "err", err)
		return nil, measerr.Wrap(measerr.ErrDevice, fmt.Errorf("%w: %w", ErrTransport, err))
	}

	rec := Recording{Microphone: mic, Generator: gen}

	loc, err := Locate(ms, rec)
	if err != nil {
		s.logger.Warn("impulse location failed", "err", err, "kind", measerr.Kind(err))
		return nil, err
	}

	s.logger.Info("measurement captured", "microphone_impulse", loc.Microphone, "generator_impulse", loc.Generator)

	return &Measurement{Settings: ms.WithLocations(loc), Recording: rec}, nil
}
