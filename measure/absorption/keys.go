package absorption

// Measurement settings keys.
const (
	KeySampleRate         = "sample rate"
	KeySignalType         = "signal type"
	KeyLowerFrequency     = "lower frequency"
	KeyUpperFrequency     = "upper frequency"
	KeySignalLength       = "signal length"
	KeySequenceTaps       = "mls taps"
	KeySequenceReps       = "mls reps"
	KeyLowPassEnabled     = "lpf enabled"
	KeyLowPassCutoff      = "lpf cutoff"
	KeyLowPassOrder       = "lpf order"
	KeyHighPassEnabled    = "hpf enabled"
	KeyHighPassCutoff     = "hpf cutoff"
	KeyHighPassOrder      = "hpf order"
	KeyGain               = "gain"
	KeyPadSignal          = "pad signal"
	KeyImpulseDelay       = "impulse delay"
	KeySignalPadding      = "signal padding"
	KeySignalReps         = "signal reps"
	KeyImpulseThreshold   = "impulse threshold"
	KeyImpulseConstant    = "impulse constant"
	KeyNoiseSamples       = "noise samples"
	KeyMicrophoneLocation = "microphone impulse location"
	KeyGeneratorLocation  = "generator impulse location"
	KeyInputDevice        = "input device"
	KeyOutputDevice       = "output device"
)

// Analysis settings keys.
const (
	KeyDecimationFactor = "decimation factor"
	KeyFilterOrder      = "antialiasing filter order"
	KeyFilterCutoff     = "antialiasing filter cutoff"
	KeyFFTSize          = "fft size"
	KeyWindowType       = "window type"
	KeyWindowStart      = "window start"
	KeyWindowEnd        = "window end"
	KeyTaperLength      = "taper length"
)
