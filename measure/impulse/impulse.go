// Package impulse locates the synchronization impulse that precedes each
// excitation in a recording.
//
// The generator (reference) channel is clean but carries pre-ringing at
// Fs/2 from the converters' anti-alias filters, so it is located on its
// Hilbert envelope against a fixed threshold. The microphone channel is
// noisy and its impulse is smeared by the transducer and the material, so
// it is located against a threshold relative to the noise floor measured
// over its leading samples.
package impulse

import (
	"math"

	"github.com/cwbudde/algo-alpha/internal/spectral"
)

// NotFound is returned when no sample crosses the threshold.
const NotFound = -1

// SettleSpan returns the number of samples LocateGenerator searches for
// the envelope peak after the threshold crossing: ceil(2/(pi*threshold)).
func SettleSpan(threshold float64) int {
	return int(math.Ceil(2 / (math.Pi * threshold)))
}

// LocateGenerator returns the index of the synchronization impulse in a
// reference-channel recording, or NotFound.
//
// The first difference of the analytic envelope (d[0] = 0) is scanned for
// the first sample exceeding threshold. An ideal impulse's envelope rises
// through the Hilbert pre-lobe 2/(pi*m) before it peaks, so the scan then
// settles on the envelope maximum within the next SettleSpan(threshold)
// samples.
//
// Two layouts are out of reach. An impulse at index 0 has no rising edge
// before it, so the scan either misses it or stops on its trailing lobe.
// A signal louder than the impulse that starts within the settling span
// pulls the peak onto the signal. Recordings with latency and an impulse
// delay longer than the span avoid both.
func LocateGenerator(x []float64, threshold float64) int {
	if len(x) == 0 || !(threshold > 0) {
		return NotFound
	}

	env, err := spectral.Envelope(x)
	if err != nil {
		return NotFound
	}

	first := NotFound
	for i := 1; i < len(env); i++ {
		if env[i]-env[i-1] > threshold {
			first = i
			break
		}
	}

	if first == NotFound {
		return NotFound
	}

	end := min(first+SettleSpan(threshold), len(env)-1)

	peak := first
	for i := first + 1; i <= end; i++ {
		if env[i] > env[peak] {
			peak = i
		}
	}

	return peak
}

// LocateMicrophone returns the index of the synchronization impulse in a
// measurement-channel recording, or NotFound.
//
// The first noiseSamples samples are assumed to hold noise only. The
// largest absolute first difference over them is the noise floor, and the
// first sample whose absolute difference exceeds floor*constant is the
// impulse.
func LocateMicrophone(x []float64, noiseSamples int, constant float64) int {
	if len(x) == 0 {
		return NotFound
	}

	noiseSamples = max(0, min(noiseSamples, len(x)))

	floor := 0.0
	for i := 1; i < noiseSamples; i++ {
		floor = math.Max(floor, math.Abs(x[i]-x[i-1]))
	}

	limit := floor * constant
	for i := 1; i < len(x); i++ {
		if math.Abs(x[i]-x[i-1]) > limit {
			return i
		}
	}

	return NotFound
}
