package absorption

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-alpha/measure/cepstrum"
	"github.com/cwbudde/algo-alpha/measure/excitation"
	"github.com/cwbudde/algo-alpha/measure/extract"
	"github.com/cwbudde/algo-alpha/measure/impulse"
	"github.com/cwbudde/algo-alpha/measure/measerr"
	"github.com/cwbudde/algo-alpha/measure/mls"
)

// ErrImpulseNotFound reports that a channel holds no synchronization
// impulse. It is tagged with measerr.ErrSynchronization.
var ErrImpulseNotFound = errors.New("absorption: synchronization impulse not found")

// ErrFFTTooShort reports an analysis FFT size smaller than the decimated
// response it has to hold. It is tagged with measerr.ErrConfiguration.
var ErrFFTTooShort = errors.New("absorption: analysis FFT size shorter than the response")

// Recording holds the two captured channels. Both cover all repetitions
// back to back and have equal length.
type Recording struct {
	Microphone []float64
	Generator  []float64
}

func (r Recording) validate() error {
	if len(r.Microphone) != len(r.Generator) {
		return measerr.Wrap(measerr.ErrDataShape, fmt.Errorf("%w: microphone %d, generator %d",
			extract.ErrChannelLength, len(r.Microphone), len(r.Generator)))
	}

	if len(r.Microphone) == 0 {
		return measerr.Shapef("absorption: empty recording")
	}

	return nil
}

// Synthesize returns the excitation signal described by ms.
func Synthesize(ms MeasurementSettings) ([]float64, error) {
	if err := ms.ValidateSynthesis(); err != nil {
		return nil, err
	}

	return excitation.Generate(ms.Excitation())
}

// Locate finds the synchronization impulse of both channels within the
// first repetition.
func Locate(ms MeasurementSettings, rec Recording) (extract.Locations, error) {
	if err := ms.ValidateLocate(); err != nil {
		return extract.Locations{}, err
	}

	if err := rec.validate(); err != nil {
		return extract.Locations{}, err
	}

	micReps, err := extract.Repetitions(rec.Microphone, ms.SignalReps)
	if err != nil {
		return extract.Locations{}, fmt.Errorf("absorption: microphone: %w", err)
	}

	genReps, err := extract.Repetitions(rec.Generator, ms.SignalReps)
	if err != nil {
		return extract.Locations{}, fmt.Errorf("absorption: generator: %w", err)
	}

	loc := extract.Locations{
		Microphone: impulse.LocateMicrophone(micReps[0], ms.NoiseSamples, ms.ImpulseConstant),
		Generator:  impulse.LocateGenerator(genReps[0], ms.ImpulseThreshold),
	}

	if loc.Microphone == impulse.NotFound || loc.Generator == impulse.NotFound {
		return loc, measerr.Wrap(measerr.ErrSynchronization, fmt.Errorf("%w: microphone %d, generator %d",
			ErrImpulseNotFound, loc.Microphone, loc.Generator))
	}

	return loc, nil
}

// Analyzer runs the analysis stages on captured recordings.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer returns an analyzer logging to logger (slog.Default when
// nil).
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{logger: logger}
}

// Analyze locates the impulses (unless ms carries them), extracts the
// averaged responses and runs the cepstral analysis.
func (a *Analyzer) Analyze(ms MeasurementSettings, as AnalysisSettings, rec Recording) (*Result, error) {
	if err := ms.ValidateExtract(); err != nil {
		return nil, err
	}

	if err := as.Validate(ms.SampleRate); err != nil {
		return nil, err
	}

	if err := rec.validate(); err != nil {
		return nil, err
	}

	loc, ok := ms.Locations()

	if err := fitFFT(ms, as, rec, loc, ok); err != nil {
		return nil, err
	}

	if !ok {
		var err error

		if loc, err = Locate(ms, rec); err != nil {
			a.logger.Warn("impulse location failed", "err", err, "kind", measerr.Kind(err))
			return nil, err
		}
	}

	a.logger.Debug("impulses located", "microphone", loc.Microphone, "generator", loc.Generator, "persisted", ok)

	resp, err := extract.Extract(ms.Excitation(), rec.Microphone, rec.Generator, loc)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("responses extracted", "samples", len(resp.Microphone), "signal_type", ms.SignalType)

	an, err := cepstrum.Analyze(as.Config(ms.SampleRate), resp.Microphone, resp.Generator)
	if err != nil {
		return nil, err
	}

	a.logger.Info("analysis complete",
		"signal_type", ms.SignalType,
		"sample_rate", an.SampleRate,
		"fft_size", an.FFTSize,
		"window", as.WindowType)

	return &Result{Locations: loc, Responses: *resp, Analysis: *an}, nil
}

// responseSamples returns the longest averaged response Extract can cut
// from rec, before decimation. Without persisted locations the impulse is
// assumed at the start of the repetition.
func responseSamples(cfg excitation.Config, rec Recording, loc extract.Locations, located bool) int {
	if cfg.Type.IsSequence() {
		return mls.Length(cfg.Order)
	}

	n := len(rec.Microphone) / (cfg.Reps + 1)
	if cfg.Pad {
		n -= cfg.DelaySamples()
	}

	if located {
		n -= max(loc.Microphone, loc.Generator)
	}

	return max(n, 0)
}

// fitFFT rejects analysis settings whose FFT cannot hold the decimated
// response, before any numeric work is done.
func fitFFT(ms MeasurementSettings, as AnalysisSettings, rec Recording, loc extract.Locations, located bool) error {
	n := responseSamples(ms.Excitation(), rec, loc, located)
	if f := as.DecimationFactor; f > 1 {
		n = (n + f - 1) / f
	}

	if n > as.FFTSize {
		return measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: %d samples after decimation, fft size %d",
			ErrFFTTooShort, n, as.FFTSize))
	}

	return nil
}
