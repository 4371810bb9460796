package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-alpha/publish"
)

type capture struct {
	messages []publish.Message
}

func (c *capture) Publish(m publish.Message) error {
	c.messages = append(c.messages, m)
	return nil
}

func measurement() map[string]string {
	return map[string]string{
		"sample rate":       "44100",
		"signal type":       "swept sine",
		"lower frequency":   "0",
		"upper frequency":   "6400",
		"signal length":     "0.1",
		"gain":              "0.5",
		"pad signal":        "false",
		"signal reps":       "0",
		"impulse threshold": "0.1",
		"impulse constant":  "10",
		"noise samples":     "50",
	}
}

func analysis() map[string]string {
	return map[string]string{
		"decimation factor": "1",
		"fft size":          "8192",
		"window type":       "one sided",
		"window start":      "0.0005",
		"window end":        "0.0015",
		"taper length":      "0",
	}
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()

	api := New(slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
	ts := httptest.NewServer(api.Echo())
	t.Cleanup(ts.Close)

	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestExcitationThenAnalyze(t *testing.T) {
	pub := &capture{}
	ts := newTestServer(t, WithPublisher(pub))

	resp := post(t, ts.URL+"/api/excitation", excitationRequest{Measurement: measurement()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var exc excitationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&exc))
	require.Len(t, exc.Samples, 4410)
	assert.Equal(t, 44100.0, exc.SampleRate)

	gen := append(exc.Samples, make([]float64, 100)...)
	mic := make([]float64, len(gen))
	for i, v := range gen {
		mic[i] = v
		if i >= 44 {
			mic[i] += 0.5 * gen[i-44]
		}
	}

	ms := measurement()
	ms["microphone impulse location"] = "0"
	ms["generator impulse location"] = "0"

	resp = post(t, ts.URL+"/api/analyze", analyzeRequest{
		Name:        "panel",
		Measurement: ms,
		Analysis:    analysis(),
		Microphone:  mic,
		Generator:   gen,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got analyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 8192, got.FFTSize)
	require.Len(t, got.Alpha, 4097)
	assert.Equal(t, 22050.0, got.Frequencies[4096])

	for _, a := range got.Alpha {
		require.InDelta(t, 0.75, a, 1e-6)
	}

	assert.Len(t, got.ImpulseResponse, 44)
	assert.Len(t, got.Bands, 14)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "panel", pub.messages[0].Name)
}

func TestAnalyzeErrorStatus(t *testing.T) {
	ts := newTestServer(t)

	located := measurement()
	located["microphone impulse location"] = "0"
	located["generator impulse location"] = "0"

	missing := measurement()
	delete(missing, "signal type")

	tests := []struct {
		name   string
		req    analyzeRequest
		status int
		kind   string
	}{
		{
			name:   "missing setting",
			req:    analyzeRequest{Measurement: missing, Analysis: analysis(), Microphone: []float64{0}, Generator: []float64{0}},
			status: http.StatusBadRequest,
			kind:   "configuration",
		},
		{
			name:   "unequal channels",
			req:    analyzeRequest{Measurement: located, Analysis: analysis(), Microphone: make([]float64, 8), Generator: make([]float64, 7)},
			status: http.StatusUnprocessableEntity,
			kind:   "data_shape",
		},
		{
			name:   "no impulse",
			req:    analyzeRequest{Measurement: measurement(), Analysis: analysis(), Microphone: make([]float64, 64), Generator: make([]float64, 64)},
			status: http.StatusUnprocessableEntity,
			kind:   "synchronization",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/analyze", tt.req)
			require.Equal(t, tt.status, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestBadJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
