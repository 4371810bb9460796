package cepstrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-alpha/internal/spectral"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// Config holds the analysis stage parameters. Times are in seconds and
// refer to the decimated sample rate.
type Config struct {
	SampleRate float64

	// Decimation
	DecimationFactor int
	FilterOrder      int
	FilterCutoff     float64 // fraction of the decimated Nyquist; 0 selects DefaultAntialiasCutoff

	FFTSize int

	// Lifter
	Window      WindowType
	WindowStart float64
	WindowEnd   float64
	Taper       float64
}

// Rate returns the sample rate after decimation.
func (c Config) Rate() float64 {
	if c.DecimationFactor <= 1 {
		return c.SampleRate
	}

	return c.SampleRate / float64(c.DecimationFactor)
}

// StartSample returns the lifter start in decimated samples.
func (c Config) StartSample() int { return samples(c.WindowStart, c.Rate()) }

// WindowSamples returns the lifter length in decimated samples.
func (c Config) WindowSamples() int { return samples(c.WindowEnd-c.WindowStart, c.Rate()) }

// TaperSamples returns the taper length in decimated samples.
func (c Config) TaperSamples() int { return samples(c.Taper, c.Rate()) }

// Validate checks the configuration without looking at any signal.
func (c Config) Validate() error {
	switch {
	case !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0):
		return measerr.Configf("cepstrum: sample rate %v", c.SampleRate)
	case c.DecimationFactor < 1:
		return invalidDecimation("factor %d", c.DecimationFactor)
	case c.DecimationFactor > 1 && c.FilterOrder < 1:
		return invalidDecimation("filter order %d", c.FilterOrder)
	case c.FilterCutoff < 0 || c.FilterCutoff > 1:
		return invalidDecimation("cutoff %v", c.FilterCutoff)
	case !spectral.IsPowerOf2(c.FFTSize):
		return measerr.Wrap(measerr.ErrConfiguration, fmt.Errorf("%w: %d", ErrFFTSize, c.FFTSize))
	case !c.Window.Valid():
		return invalidWindow("unknown type %q", c.Window)
	case c.WindowStart < 0 || c.Taper < 0:
		return invalidWindow("start %v, taper %v", c.WindowStart, c.Taper)
	case !(c.WindowEnd > c.WindowStart):
		return invalidWindow("end %v not after start %v", c.WindowEnd, c.WindowStart)
	}

	if end := c.StartSample() + c.WindowSamples(); end > c.FFTSize {
		return invalidWindow("window ends at sample %d beyond FFT size %d", end, c.FFTSize)
	}

	return nil
}

func (c Config) cutoff() float64 {
	if c.FilterCutoff == 0 {
		return DefaultAntialiasCutoff
	}

	return c.FilterCutoff
}

// Analysis holds the artifacts of one cepstral analysis.
type Analysis struct {
	// Decimated averaged responses.
	Microphone []float64
	Generator  []float64

	MicrophoneCepstrum []float64
	GeneratorCepstrum  []float64
	PowerCepstrum      []float64 // microphone minus generator

	Window          []float64
	WindowStart     int
	ImpulseResponse []float64

	// Alpha has FFTSize bins; bin k sits at k*SampleRate/FFTSize.
	Alpha []float64

	SampleRate float64
	FFTSize    int
}

// Frequencies returns the center frequency of every alpha bin.
func (a *Analysis) Frequencies() []float64 {
	out := make([]float64, len(a.Alpha))
	for k := range out {
		out[k] = float64(k) * a.SampleRate / float64(a.FFTSize)
	}

	return out
}

// Analyze decimates both averaged responses, computes their power
// cepstra, lifts the material impulse response out of the difference and
// derives the absorption coefficient.
func Analyze(cfg Config, mic, gen []float64) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(mic) == 0 || len(gen) == 0 {
		return nil, measerr.Shapef("cepstrum: empty response")
	}

	dm, err := Decimate(mic, cfg.DecimationFactor, cfg.FilterOrder, cfg.cutoff())
	if err != nil {
		return nil, err
	}

	dg, err := Decimate(gen, cfg.DecimationFactor, cfg.FilterOrder, cfg.cutoff())
	if err != nil {
		return nil, err
	}

	cm, err := Power(dm, cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: microphone: %w", err)
	}

	cg, err := Power(dg, cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: generator: %w", err)
	}

	diff := make([]float64, len(cm))
	for i := range diff {
		diff[i] = cm[i] - cg[i]
	}

	w, err := Lifter(cfg.Window, cfg.WindowSamples(), cfg.TaperSamples())
	if err != nil {
		return nil, err
	}

	start := cfg.StartSample()

	ir, err := Lift(diff, start, w)
	if err != nil {
		return nil, err
	}

	alpha, err := Alpha(ir, cfg.FFTSize)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Microphone:         dm,
		Generator:          dg,
		MicrophoneCepstrum: cm,
		GeneratorCepstrum:  cg,
		PowerCepstrum:      diff,
		Window:             w,
		WindowStart:        start,
		ImpulseResponse:    ir,
		Alpha:              alpha,
		SampleRate:         cfg.Rate(),
		FFTSize:            cfg.FFTSize,
	}, nil
}

// samples converts seconds to whole samples, truncating like an integer
// cast but tolerant of products such as 0.002*8000 landing just below an
// integer.
func samples(seconds, rate float64) int {
	return int(math.Floor(seconds*rate + 1e-9))
}
