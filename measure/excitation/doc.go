// Package excitation synthesizes the probe signals played into the
// material under test.
//
// Four signal types are supported:
//
//   - swept sine: a linear chirp sin((a*t + b)*t) with a = pi*(f1-f0)/T and
//     b = 2*pi*f0
//   - low pass swept sine: a chirp whose ripple is flattened by a
//     minimum-phase inverse filter derived through the cepstrum, then
//     band-limited to the upper frequency and normalized to unit peak
//   - maximum length sequence: reps+1 periods of a bipolar MLS
//   - inverse repeat sequence: reps+1 periods of the 2L-sample IRS
//
// [Generate] then applies the optional low-pass and high-pass Butterworth
// filters, the gain, the synchronization padding and the whole-signal
// repetitions described by a [Config]:
//
//	[1, 0 ... 0, signal ..., 0 ... 0] x (Reps+1)
//	 |<- delay ->|          |<- pad ->|
//
// The signal starts exactly DelaySamples after the synchronization
// impulse, so the response extractor can skip straight to it once the
// impulse has been located.
package excitation
