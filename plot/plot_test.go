package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

func series() absorption.Series {
	return absorption.Series{
		Name:   "Absorption Coefficient",
		XLabel: "Frequency (Hz)",
		YLabel: "Absorption Coefficient",
		X:      []float64{0, 500, 1000},
		Y:      []float64{0.1, 0.45, 0.8},
	}
}

func TestImageRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpha.png")

	im := NewImage(path)
	im.YMin, im.YMax = 0, 1
	require.NoError(t, im.Render(series()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestCSVRender(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, CSV{W: &buf}.Render(series()))
	assert.Equal(t, "Frequency (Hz),Absorption Coefficient\n0,0.1\n500,0.45\n1000,0.8\n", buf.String())
}

func TestRenderRejectsMismatchedSeries(t *testing.T) {
	s := series()
	s.Y = s.Y[:2]

	require.ErrorIs(t, CSV{W: &bytes.Buffer{}}.Render(s), ErrSeries)
	require.ErrorIs(t, NewImage(filepath.Join(t.TempDir(), "x.png")).Render(s), ErrSeries)
}

var _ absorption.Renderer = (*Image)(nil)
var _ absorption.Renderer = CSV{}
