// Package publish announces analysis results on an MQTT topic as JSON.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

// ErrNoBroker is returned by Dial when no broker address is configured.
var ErrNoBroker = errors.New("publish: no MQTT broker configured")

// Config holds the broker connection parameters.
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// Message is the JSON payload published per analysis.
type Message struct {
	Name        string            `json:"name,omitempty"`
	SampleRate  float64           `json:"sample_rate"`
	FFTSize     int               `json:"fft_size"`
	Frequencies []float64         `json:"frequencies"`
	Alpha       []float64         `json:"alpha"`
	Bands       []Band            `json:"bands"`
	Locations   Locations         `json:"locations"`
	Analysis    map[string]string `json:"analysis,omitempty"`
	Time        time.Time         `json:"time"`
}

// Band is one third-octave readout.
type Band struct {
	Center float64 `json:"center"`
	Alpha  float64 `json:"alpha"`
}

// Locations holds the synchronization impulse indices.
type Locations struct {
	Microphone int `json:"microphone"`
	Generator  int `json:"generator"`
}

// NewMessage builds the payload for res.
func NewMessage(name string, res *absorption.Result, as absorption.AnalysisSettings) Message {
	bands := make([]Band, 0, len(absorption.ThirdOctaveCenters))
	for _, b := range res.Bands() {
		bands = append(bands, Band{Center: b.Center, Alpha: b.Alpha})
	}

	s := res.AlphaSeries()

	return Message{
		Name:        name,
		SampleRate:  res.SampleRate(),
		FFTSize:     res.Analysis.FFTSize,
		Frequencies: s.X,
		Alpha:       s.Y,
		Bands:       bands,
		Locations:   Locations{Microphone: res.Locations.Microphone, Generator: res.Locations.Generator},
		Analysis:    as.Map(),
		Time:        time.Now().UTC(),
	}
}

// Publisher sends messages to one topic.
type Publisher struct {
	client mqtt.Client
	topic  string
	logger *slog.Logger
}

// New wraps an already connected client.
func New(client mqtt.Client, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{client: client, topic: topic, logger: logger}
}

// Dial connects to the broker in cfg.
func Dial(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, ErrNoBroker
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetKeepAlive(60 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("publish: connect to %s: %w", cfg.Broker, token.Error())
	}

	p := New(client, cfg.Topic, logger)
	p.logger.Info("mqtt connected", "broker", cfg.Broker, "topic", cfg.Topic)

	return p, nil
}

// Publish sends msg with QoS 1.
func (p *Publisher) Publish(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("publish: marshal: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish: %s: %w", p.topic, token.Error())
	}

	p.logger.Debug("result published", "topic", p.topic, "bytes", len(payload))

	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
