package config

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

const (
	tubeLatency    = 100
	tubeReflection = 44
	tubeGain       = 0.5
)

// tube loops the excitation back with latency and adds one reflection
// on the microphone side.
type tube struct{}

func (tube) PlaybackAndRecord(_ context.Context, signal []float64) ([]float64, []float64, error) {
	gen := make([]float64, len(signal))
	copy(gen[tubeLatency:], signal)

	mic := make([]float64, len(gen))
	for i, v := range gen {
		mic[i] = v
		if i >= tubeReflection {
			mic[i] += tubeGain * gen[i-tubeReflection]
		}
	}

	return mic, gen, nil
}

func TestDefaultsMeasureAndAnalyze(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	ms, err := absorption.ParseMeasurement(cfg.Measurement)
	require.NoError(t, err)

	as, err := absorption.ParseAnalysis(cfg.Analysis)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	meas, err := absorption.NewSession(tube{}, logger).Measure(context.Background(), ms)
	require.NoError(t, err)

	loc, ok := meas.Settings.Locations()
	require.True(t, ok)
	assert.Equal(t, tubeLatency, loc.Microphone)
	assert.Equal(t, tubeLatency, loc.Generator)

	res, err := absorption.NewAnalyzer(logger).Analyze(meas.Settings, as, meas.Recording)
	require.NoError(t, err)

	assert.Equal(t, as.FFTSize, len(res.Alpha()))
	assert.InDelta(t, ms.SampleRate/float64(as.DecimationFactor), res.SampleRate(), 1e-9)

	for k, a := range res.Alpha() {
		require.False(t, math.IsNaN(a) || math.IsInf(a, 0), "alpha[%d] = %v", k, a)
	}

	// The reflection lands on a whole decimated sample, counted from the
	// lifter start.
	cc := as.Config(ms.SampleRate)
	peak := tubeReflection/as.DecimationFactor - cc.StartSample()
	ir := res.ImpulseResponse()
	require.Greater(t, len(ir), peak)
	assert.InDelta(t, tubeGain, ir[peak], 0.05)
}
