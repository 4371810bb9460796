package absorption

import (
	"maps"

	"github.com/cwbudde/algo-alpha/measure/excitation"
	"github.com/cwbudde/algo-alpha/measure/extract"
	"github.com/cwbudde/algo-alpha/measure/impulse"
	"github.com/cwbudde/algo-alpha/measure/measerr"
	"github.com/cwbudde/algo-alpha/measure/mls"
)

// MeasurementSettings is the typed form of a measurement settings map.
// It is a value: methods never modify the receiver.
type MeasurementSettings struct {
	SampleRate float64
	SignalType excitation.SignalType

	LowerFrequency float64
	UpperFrequency float64
	SignalLength   float64 // seconds
	FFTSize        int     // low pass swept sine

	SequenceTaps int
	SequenceReps int

	LowPass  excitation.Filter
	HighPass excitation.Filter
	Gain     float64

	PadSignal     bool
	ImpulseDelay  float64 // seconds
	SignalPadding float64 // seconds
	SignalReps    int

	ImpulseThreshold float64
	ImpulseConstant  float64
	NoiseSamples     int

	MicrophoneLocation int
	GeneratorLocation  int

	InputDevice  string
	OutputDevice string

	present keySet
	extra   map[string]string
}

func (s *MeasurementSettings) fields() map[string]any {
	return map[string]any{
		KeySampleRate:         &s.SampleRate,
		KeySignalType:         &s.SignalType,
		KeyLowerFrequency:     &s.LowerFrequency,
		KeyUpperFrequency:     &s.UpperFrequency,
		KeySignalLength:       &s.SignalLength,
		KeyFFTSize:            &s.FFTSize,
		KeySequenceTaps:       &s.SequenceTaps,
		KeySequenceReps:       &s.SequenceReps,
		KeyLowPassEnabled:     &s.LowPass.Enabled,
		KeyLowPassCutoff:      &s.LowPass.Cutoff,
		KeyLowPassOrder:       &s.LowPass.Order,
		KeyHighPassEnabled:    &s.HighPass.Enabled,
		KeyHighPassCutoff:     &s.HighPass.Cutoff,
		KeyHighPassOrder:      &s.HighPass.Order,
		KeyGain:               &s.Gain,
		KeyPadSignal:          &s.PadSignal,
		KeyImpulseDelay:       &s.ImpulseDelay,
		KeySignalPadding:      &s.SignalPadding,
		KeySignalReps:         &s.SignalReps,
		KeyImpulseThreshold:   &s.ImpulseThreshold,
		KeyImpulseConstant:    &s.ImpulseConstant,
		KeyNoiseSamples:       &s.NoiseSamples,
		KeyMicrophoneLocation: &s.MicrophoneLocation,
		KeyGeneratorLocation:  &s.GeneratorLocation,
		KeyInputDevice:        &s.InputDevice,
		KeyOutputDevice:       &s.OutputDevice,
	}
}

// ParseMeasurement parses a measurement settings map. Malformed values
// are rejected; missing keys are only reported by the stage validators.
// Unknown keys are carried through to Map unchanged.
func ParseMeasurement(m map[string]string) (MeasurementSettings, error) {
	var s MeasurementSettings

	present, extra, err := parseFields(m, s.fields())
	if err != nil {
		return MeasurementSettings{}, err
	}

	s.present, s.extra = present, extra

	return s, nil
}

// Map returns the settings as a flat string map.
func (s MeasurementSettings) Map() map[string]string {
	return formatFields(s.present, s.extra, s.fields())
}

// Has reports whether the settings carried key.
func (s MeasurementSettings) Has(key string) bool {
	return s.present.has(key)
}

// Locations returns the persisted impulse locations, if both are set and
// valid.
func (s MeasurementSettings) Locations() (extract.Locations, bool) {
	if !s.Has(KeyMicrophoneLocation) || !s.Has(KeyGeneratorLocation) ||
		s.MicrophoneLocation < 0 || s.GeneratorLocation < 0 {
		return extract.Locations{}, false
	}

	return extract.Locations{Microphone: s.MicrophoneLocation, Generator: s.GeneratorLocation}, true
}

// WithLocations returns a copy of s carrying loc.
func (s MeasurementSettings) WithLocations(loc extract.Locations) MeasurementSettings {
	s.present = maps.Clone(s.present)
	if s.present == nil {
		s.present = make(keySet)
	}

	s.MicrophoneLocation = loc.Microphone
	s.GeneratorLocation = loc.Generator
	s.present[KeyMicrophoneLocation] = struct{}{}
	s.present[KeyGeneratorLocation] = struct{}{}

	return s
}

// Excitation returns the excitation configuration described by s.
func (s MeasurementSettings) Excitation() excitation.Config {
	return excitation.Config{
		Type:           s.SignalType,
		SampleRate:     s.SampleRate,
		LowerFrequency: s.LowerFrequency,
		UpperFrequency: s.UpperFrequency,
		Duration:       s.SignalLength,
		FFTSize:        s.FFTSize,
		Order:          s.SequenceTaps,
		SequenceReps:   s.SequenceReps,
		LowPass:        s.LowPass,
		HighPass:       s.HighPass,
		Gain:           s.Gain,
		Pad:            s.PadSignal,
		ImpulseDelay:   s.ImpulseDelay,
		Padding:        s.SignalPadding,
		Reps:           s.SignalReps,
	}
}

// ValidateSynthesis checks everything the excitation synthesizer reads.
func (s MeasurementSettings) ValidateSynthesis() error {
	keys := []string{KeySampleRate, KeySignalType, KeyGain, KeyPadSignal, KeySignalReps}

	switch s.SignalType {
	case excitation.SweptSineType:
		keys = append(keys, KeyLowerFrequency, KeyUpperFrequency, KeySignalLength)
	case excitation.LowPassSweptSineType:
		keys = append(keys, KeyLowerFrequency, KeyUpperFrequency, KeySignalLength, KeyFFTSize)
	case excitation.MLSType, excitation.InverseRepeatType:
		keys = append(keys, KeySequenceTaps, KeySequenceReps)
	}

	keys = append(keys, s.paddingKeys()...)

	if s.LowPass.Enabled {
		keys = append(keys, KeyLowPassCutoff, KeyLowPassOrder)
	}

	if s.HighPass.Enabled {
		keys = append(keys, KeyHighPassCutoff, KeyHighPassOrder)
	}

	if err := require("synthesis", s.present, keys...); err != nil {
		return err
	}

	return s.Excitation().Validate()
}

// ValidateLocate checks everything the impulse locator reads.
func (s MeasurementSettings) ValidateLocate() error {
	err := require("locate", s.present,
		KeySignalReps, KeyImpulseThreshold, KeyImpulseConstant, KeyNoiseSamples)
	if err != nil {
		return err
	}

	switch {
	case s.SignalReps < 0:
		return measerr.Configf("absorption: signal reps %d", s.SignalReps)
	case !(s.ImpulseThreshold > 0):
		return measerr.Configf("absorption: impulse threshold %v must be positive", s.ImpulseThreshold)
	case !(s.ImpulseConstant > 0):
		return measerr.Configf("absorption: impulse constant %v must be positive", s.ImpulseConstant)
	case s.NoiseSamples < 1:
		return measerr.Configf("absorption: noise samples %d must be positive", s.NoiseSamples)
	}

	if !s.PadSignal {
		return nil
	}

	if err := require("locate", s.present, KeySampleRate, KeyImpulseDelay); err != nil {
		return err
	}

	// The generator locator must settle on the impulse before the signal starts.
	if d, span := s.Excitation().DelaySamples(), impulse.SettleSpan(s.ImpulseThreshold); d <= span {
		return measerr.Configf("absorption: impulse delay of %d samples within the %d sample locator span", d, span)
	}

	return nil
}

// ValidateExtract checks everything the response extractor reads.
func (s MeasurementSettings) ValidateExtract() error {
	keys := []string{KeySampleRate, KeySignalType, KeyPadSignal, KeySignalReps}
	if s.SignalType.IsSequence() {
		keys = append(keys, KeySequenceTaps, KeySequenceReps)
	}

	keys = append(keys, s.paddingKeys()...)

	if err := require("extract", s.present, keys...); err != nil {
		return err
	}

	cfg := s.Excitation()

	switch {
	case !cfg.Type.Valid():
		return measerr.Wrap(measerr.ErrConfiguration, excitation.ErrSignalType)
	case !(cfg.SampleRate > 0):
		return measerr.Wrap(measerr.ErrConfiguration, excitation.ErrSampleRate)
	case cfg.Reps < 0:
		return measerr.Wrap(measerr.ErrConfiguration, excitation.ErrRepetitions)
	case cfg.Pad && cfg.DelaySamples() < 0:
		return measerr.Wrap(measerr.ErrConfiguration, excitation.ErrPadding)
	case cfg.Type.IsSequence() && (cfg.Order < mls.MinOrder || cfg.Order > mls.MaxOrder):
		return measerr.Wrap(measerr.ErrConfiguration, mls.ErrOrder)
	case cfg.Type.IsSequence() && cfg.SequenceReps < 0:
		return measerr.Wrap(measerr.ErrConfiguration, excitation.ErrRepetitions)
	}

	return nil
}

func (s MeasurementSettings) paddingKeys() []string {
	if !s.PadSignal {
		return nil
	}

	return []string{KeyImpulseDelay, KeySignalPadding}
}
