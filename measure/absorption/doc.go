// Package absorption measures the absorption coefficient of a material
// sample with cepstral deconvolution.
//
// A measurement runs five strictly sequential stages:
//
//	Synthesize   excitation signal from MeasurementSettings
//	Transport    play it and record microphone + generator channels
//	Locate       find the synchronization impulse in both channels
//	Extract      reshape, align and average the repetitions
//	Analyze      cepstra, lifter, impulse response, alpha
//
// Settings cross every outer boundary (store, configuration, HTTP) as flat
// string maps keyed by well-known names such as "sample rate" or
// "window type". [ParseMeasurement] and [ParseAnalysis] turn them into
// immutable typed records; each stage validates the keys it needs before
// doing any numeric work and fails with measerr.ErrConfiguration
// otherwise.
//
// All functions are pure apart from the injected [Transport] and
// [Repository]; independent measurements may be analyzed concurrently.
package absorption
