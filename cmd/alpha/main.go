// Command alpha measures the absorption coefficient of a material sample
// in an impedance tube using cepstral deconvolution.
//
// Usage:
//
//	alpha <command> [flags]
//
// Commands:
//
//	generate   write the excitation signal, one sample per line
//	devices    list audio devices
//	measure    play the excitation, record, and save the measurement
//	analyze    analyze a saved measurement
//	serve      run the HTTP analysis service
//
// Examples:
//
//	alpha generate -set "signal type=maximum length sequence" -set "mls taps=16"
//	alpha measure -db sample.db
//	alpha analyze -db sample.db -csv alpha.csv -png alpha.png
//	alpha serve -config lab.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cwbudde/algo-alpha/config"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

var commands = []command{
	{"generate", "write the excitation signal, one sample per line", runGenerate},
	{"devices", "list audio devices", runDevices},
	{"measure", "play the excitation, record, and save the measurement", runMeasure},
	{"analyze", "analyze a saved measurement", runAnalyze},
	{"serve", "run the HTTP analysis service", runServe},
}

// env carries what every command shares.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name, args := os.Args[1], os.Args[2:]
	for _, c := range commands {
		if c.name != name {
			continue
		}

		if err := c.run(ctx, args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				os.Exit(0)
			}

			fmt.Fprintf(os.Stderr, "alpha %s: %v\n", name, err)
			os.Exit(1)
		}

		return
	}

	fmt.Fprintf(os.Stderr, "alpha: unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: alpha <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
}

// common registers the flags every command accepts and returns a
// function that builds the environment after parsing.
func common(fs *flag.FlagSet) func() (*env, error) {
	configPath := fs.String("config", "", "YAML file overriding the default settings")
	debug := fs.Bool("debug", false, "enable debug logging")

	return func() (*env, error) {
		level := slog.LevelInfo
		if *debug {
			level = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}

		return &env{cfg: cfg, logger: logger}, nil
	}
}

// settingsFlag collects repeated "key=value" overrides.
type settingsFlag map[string]string

func (s settingsFlag) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, k+"="+v)
	}

	return strings.Join(parts, ", ")
}

func (s settingsFlag) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("want key=value, got %q", v)
	}

	s[strings.TrimSpace(key)] = strings.TrimSpace(value)

	return nil
}

func (s settingsFlag) apply(dst map[string]string) {
	for k, v := range s {
		dst[k] = v
	}
}
