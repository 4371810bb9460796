package publish

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-alpha/measure/absorption"
	"github.com/cwbudde/algo-alpha/measure/cepstrum"
	"github.com/cwbudde/algo-alpha/measure/extract"
)

type token struct{ err error }

func (t token) Wait() bool                     { return true }
func (t token) WaitTimeout(time.Duration) bool { return true }
func (t token) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t token) Error() error { return t.err }

// recorder captures publishes; unused client methods panic via the nil
// embedded interface.
type recorder struct {
	mqtt.Client
	topic   string
	qos     byte
	payload []byte
	err     error
}

func (r *recorder) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	r.topic, r.qos = topic, qos
	r.payload, _ = payload.([]byte)
	return token{err: r.err}
}

func result() *absorption.Result {
	alpha := make([]float64, 16)
	for i := range alpha {
		alpha[i] = 0.5
	}

	return &absorption.Result{
		Locations: extract.Locations{Microphone: 120, Generator: 118},
		Analysis:  cepstrum.Analysis{Alpha: alpha, SampleRate: 4000, FFTSize: 16},
	}
}

func TestPublish(t *testing.T) {
	rec := &recorder{}
	p := New(rec, "lab/alpha", slog.New(slog.NewTextHandler(io.Discard, nil)))

	as, err := absorption.ParseAnalysis(map[string]string{absorption.KeyFFTSize: "16"})
	require.NoError(t, err)

	require.NoError(t, p.Publish(NewMessage("panel A", result(), as)))
	assert.Equal(t, "lab/alpha", rec.topic)
	assert.Equal(t, byte(1), rec.qos)

	var got Message
	require.NoError(t, json.Unmarshal(rec.payload, &got))
	assert.Equal(t, "panel A", got.Name)
	assert.Len(t, got.Alpha, 9)
	assert.Equal(t, 2000.0, got.Frequencies[8])
	assert.Equal(t, 118, got.Locations.Generator)
	assert.Equal(t, "16", got.Analysis[absorption.KeyFFTSize])
	require.NotEmpty(t, got.Bands)
	assert.InDelta(t, 0.5, got.Bands[0].Alpha, 1e-12)
}

func TestPublishError(t *testing.T) {
	rec := &recorder{err: errors.New("not connected")}
	p := New(rec, "lab/alpha", nil)

	require.Error(t, p.Publish(Message{}))
}

func TestDialWithoutBroker(t *testing.T) {
	_, err := Dial(Config{}, nil)
	require.ErrorIs(t, err, ErrNoBroker)
}
