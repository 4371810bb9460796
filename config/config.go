// Package config supplies the default measurement and analysis settings
// and the service parameters.
//
// Defaults are embedded YAML, optionally overlaid by a user YAML file with
// the same layout. Service parameters and audio devices can be overridden
// from the environment (ALPHA_*), which is seeded from a .env file when
// one exists.
package config

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaults []byte

// Service holds the process-level parameters.
type Service struct {
	Database     string
	Listen       string
	MQTTBroker   string
	MQTTClientID string
	MQTTTopic    string
}

// Config is the merged configuration.
type Config struct {
	Measurement map[string]string
	Analysis    map[string]string
	Service     Service
}

type file struct {
	Measurement map[string]any `yaml:"measurement"`
	Analysis    map[string]any `yaml:"analysis"`
	Service     map[string]any `yaml:"service"`
}

// Defaults returns the embedded defaults without consulting the
// environment.
func Defaults() (*Config, error) {
	cfg := &Config{
		Measurement: make(map[string]string),
		Analysis:    make(map[string]string),
	}

	if err := cfg.merge(defaults); err != nil {
		return nil, fmt.Errorf("config: embedded defaults: %w", err)
	}

	return cfg, nil
}

// Load returns the defaults overlaid by the YAML file at path (skipped
// when path is empty) and by the environment.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}

		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}

	maps.Copy(c.Measurement, stringify(f.Measurement))
	maps.Copy(c.Analysis, stringify(f.Analysis))

	svc := stringify(f.Service)
	override(&c.Service.Database, svc["database"])
	override(&c.Service.Listen, svc["listen"])
	override(&c.Service.MQTTBroker, svc["mqtt broker"])
	override(&c.Service.MQTTClientID, svc["mqtt client id"])
	override(&c.Service.MQTTTopic, svc["mqtt topic"])

	return nil
}

func (c *Config) applyEnv() {
	override(&c.Service.Database, os.Getenv("ALPHA_DATABASE"))
	override(&c.Service.Listen, os.Getenv("ALPHA_LISTEN"))
	override(&c.Service.MQTTBroker, os.Getenv("ALPHA_MQTT_BROKER"))
	override(&c.Service.MQTTClientID, os.Getenv("ALPHA_MQTT_CLIENT_ID"))
	override(&c.Service.MQTTTopic, os.Getenv("ALPHA_MQTT_TOPIC"))

	if v := os.Getenv("ALPHA_INPUT_DEVICE"); v != "" {
		c.Measurement["input device"] = v
	}

	if v := os.Getenv("ALPHA_OUTPUT_DEVICE"); v != "" {
		c.Measurement["output device"] = v
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// stringify renders YAML scalars the way settings maps carry them.
func stringify(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))

	for k, v := range in {
		switch x := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = x
		case float64:
			out[k] = strconv.FormatFloat(x, 'g', -1, 64)
		default:
			out[k] = fmt.Sprint(x)
		}
	}

	return out
}
