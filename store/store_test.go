package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

// Store is consumed by the analyzer through this interface.
var _ absorption.Repository = (*Store)(nil)

func openTemp(t *testing.T) *Store {
	t.Helper()

	st, err := Create(filepath.Join(t.TempDir(), "sample.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	st := openTemp(t)
	ctx := context.Background()

	analyzed, err := st.IsAnalyzed(ctx)
	require.NoError(t, err)
	assert.False(t, analyzed)

	ms := map[string]string{"sample rate": "44100", "signal type": "swept sine"}
	require.NoError(t, st.SaveMeasurementSettings(ctx, ms))
	require.NoError(t, st.SaveMeasurementSettings(ctx, map[string]string{"microphone impulse location": "120"}))

	got, err := st.MeasurementSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"sample rate":                 "44100",
		"signal type":                 "swept sine",
		"microphone impulse location": "120",
	}, got)

	require.NoError(t, st.SaveAnalysisSettings(ctx, map[string]string{"fft size": "8192"}))
	require.NoError(t, st.SaveAnalysisSettings(ctx, map[string]string{"fft size": "16384"}))

	as, err := st.AnalysisSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"fft size": "16384"}, as)

	analyzed, err = st.IsAnalyzed(ctx)
	require.NoError(t, err)
	assert.True(t, analyzed)
}

func TestSignals(t *testing.T) {
	t.Parallel()

	st := openTemp(t)
	ctx := context.Background()

	_, _, err := st.Recording(ctx)
	require.ErrorIs(t, err, ErrNoSignal)

	first, err := st.SaveSignal(ctx, []float64{1, -0.5, 0.25}, []float64{0, 1, 0})
	require.NoError(t, err)

	second, err := st.SaveSignal(ctx, []float64{3}, []float64{4})
	require.NoError(t, err)

	signals, err := st.Signals(ctx)
	require.NoError(t, err)
	require.Len(t, signals, 2)
	assert.Equal(t, []float64{1, -0.5, 0.25}, signals[0].Microphone)
	assert.Equal(t, []float64{0, 1, 0}, signals[0].Generator)
	assert.True(t, signals[1].Enabled)

	require.NoError(t, st.SetEnabled(ctx, first, false))

	mic, gen, err := st.Recording(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, mic)
	assert.Equal(t, []float64{4}, gen)

	require.NoError(t, st.SetEnabled(ctx, second, false))
	_, _, err = st.Recording(ctx)
	require.ErrorIs(t, err, ErrNoSignal)

	require.Error(t, st.SetEnabled(ctx, 99, true))
}

func TestCreateReplacesAndOpenKeeps(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "m.db")
	ctx := context.Background()

	st, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveMeasurementSettings(ctx, map[string]string{"gain": "0.5"}))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)

	got, err := st.MeasurementSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.5", got["gain"])
	require.NoError(t, st.Close())

	st, err = Create(path)
	require.NoError(t, err)
	defer st.Close()

	got, err = st.MeasurementSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCodec(t *testing.T) {
	t.Parallel()

	in := make([]float64, 4096)
	for i := range in {
		in[i] = float64(i%7) - 3
	}

	blob, err := encodeSamples(in)
	require.NoError(t, err)
	assert.Less(t, len(blob), 8*len(in))

	out, err := decodeSamples(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = decodeSamples([]byte("not zlib"))
	require.Error(t, err)
}
