package absorption

import (
	"github.com/cwbudde/algo-alpha/measure/cepstrum"
)

// AnalysisSettings is the typed form of an analysis settings map. It can
// change independently of the measurement it is applied to.
type AnalysisSettings struct {
	DecimationFactor int
	FilterOrder      int
	FilterCutoff     float64 // fraction of the decimated Nyquist, optional
	FFTSize          int
	WindowType       cepstrum.WindowType
	WindowStart      float64 // seconds
	WindowEnd        float64 // seconds
	TaperLength      float64 // seconds

	present keySet
	extra   map[string]string
}

func (a *AnalysisSettings) fields() map[string]any {
	return map[string]any{
		KeyDecimationFactor: &a.DecimationFactor,
		KeyFilterOrder:      &a.FilterOrder,
		KeyFilterCutoff:     &a.FilterCutoff,
		KeyFFTSize:          &a.FFTSize,
		KeyWindowType:       &a.WindowType,
		KeyWindowStart:      &a.WindowStart,
		KeyWindowEnd:        &a.WindowEnd,
		KeyTaperLength:      &a.TaperLength,
	}
}

// ParseAnalysis parses an analysis settings map.
func ParseAnalysis(m map[string]string) (AnalysisSettings, error) {
	var a AnalysisSettings

	present, extra, err := parseFields(m, a.fields())
	if err != nil {
		return AnalysisSettings{}, err
	}

	a.present, a.extra = present, extra

	return a, nil
}

// Map returns the settings as a flat string map.
func (a AnalysisSettings) Map() map[string]string {
	return formatFields(a.present, a.extra, a.fields())
}

// Has reports whether the settings carried key.
func (a AnalysisSettings) Has(key string) bool {
	return a.present.has(key)
}

// Config returns the cepstral analyzer configuration for recordings made
// at sampleRate.
func (a AnalysisSettings) Config(sampleRate float64) cepstrum.Config {
	return cepstrum.Config{
		SampleRate:       sampleRate,
		DecimationFactor: a.DecimationFactor,
		FilterOrder:      a.FilterOrder,
		FilterCutoff:     a.FilterCutoff,
		FFTSize:          a.FFTSize,
		Window:           a.WindowType,
		WindowStart:      a.WindowStart,
		WindowEnd:        a.WindowEnd,
		Taper:            a.TaperLength,
	}
}

// Validate checks the settings for recordings made at sampleRate.
func (a AnalysisSettings) Validate(sampleRate float64) error {
	keys := []string{KeyDecimationFactor, KeyFFTSize, KeyWindowType, KeyWindowStart, KeyWindowEnd, KeyTaperLength}
	if a.DecimationFactor > 1 {
		keys = append(keys, KeyFilterOrder)
	}

	if err := require("analysis", a.present, keys...); err != nil {
		return err
	}

	return a.Config(sampleRate).Validate()
}
