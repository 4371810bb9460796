package absorption

import (
	"math"

	lin "github.com/sgreben/piecewiselinear"

	"github.com/cwbudde/algo-alpha/internal/spectral"
	"github.com/cwbudde/algo-alpha/measure/cepstrum"
	"github.com/cwbudde/algo-alpha/measure/extract"
)

// ThirdOctaveCenters are the nominal third-octave band centres, in Hz,
// covered by the impedance tube.
var ThirdOctaveCenters = []float64{
	100, 125, 160, 200, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600, 2000,
}

// responseFloor bounds FrequencyResponseDB at -300 dB.
const responseFloor = 1e-15

// Result is the outcome of one analysis.
type Result struct {
	Locations extract.Locations
	Responses extract.Responses
	Analysis  cepstrum.Analysis
}

// Alpha returns the absorption coefficient for every FFT bin.
func (r *Result) Alpha() []float64 { return r.Analysis.Alpha }

// ImpulseResponse returns the lifted material impulse response.
func (r *Result) ImpulseResponse() []float64 { return r.Analysis.ImpulseResponse }

// SampleRate returns the sample rate the analysis ran at.
func (r *Result) SampleRate() float64 { return r.Analysis.SampleRate }

// Frequencies returns the bin frequencies up to and including Nyquist.
func (r *Result) Frequencies() []float64 {
	return r.Analysis.Frequencies()[:r.half()]
}

// AlphaSeries returns alpha over frequency, up to Nyquist.
func (r *Result) AlphaSeries() Series {
	return Series{
		Name:   "Absorption Coefficient",
		XLabel: "Frequency (Hz)",
		YLabel: "Absorption Coefficient",
		X:      r.Frequencies(),
		Y:      r.Analysis.Alpha[:r.half()],
	}
}

// ImpulseSeries returns the lifted impulse response over quefrency in
// milliseconds.
func (r *Result) ImpulseSeries() Series {
	ir := r.Analysis.ImpulseResponse

	x := make([]float64, len(ir))
	for i := range x {
		x[i] = 1000 * float64(r.Analysis.WindowStart+i) / r.Analysis.SampleRate
	}

	return Series{
		Name:   "Impulse Response",
		XLabel: "Time (ms)",
		YLabel: "Amplitude",
		X:      x,
		Y:      ir,
	}
}

// FrequencyResponseDB returns the magnitude response of the lifted
// impulse response up to Nyquist in dB, normalized to a 0 dB peak.
func (r *Result) FrequencyResponseDB() ([]float64, error) {
	spec, err := spectral.Forward(r.Analysis.ImpulseResponse, r.Analysis.FFTSize)
	if err != nil {
		return nil, err
	}

	mag := spectral.Power(spec[:r.half()])

	peak := 0.0
	for _, p := range mag {
		peak = math.Max(peak, p)
	}

	for i, p := range mag {
		rel := responseFloor
		if peak > 0 {
			rel = math.Max(math.Sqrt(p/peak), responseFloor)
		}

		mag[i] = 20 * math.Log10(rel)
	}

	return mag, nil
}

// Band is alpha read out at one band centre.
type Band struct {
	Center float64
	Alpha  float64
}

// Bands interpolates alpha at the third-octave centres below Nyquist.
func (r *Result) Bands() []Band {
	f := lin.Function{X: r.Frequencies(), Y: r.Analysis.Alpha[:r.half()]}
	nyquist := r.Analysis.SampleRate / 2

	out := make([]Band, 0, len(ThirdOctaveCenters))
	for _, fc := range ThirdOctaveCenters {
		if fc > nyquist {
			break
		}

		out = append(out, Band{Center: fc, Alpha: f.At(fc)})
	}

	return out
}

func (r *Result) half() int {
	return r.Analysis.FFTSize/2 + 1
}
