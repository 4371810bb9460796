package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-alpha/measure/absorption"
	"github.com/cwbudde/algo-alpha/plot"
	"github.com/cwbudde/algo-alpha/publish"
	"github.com/cwbudde/algo-alpha/store"
)

func runAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	build := common(fs)
	db := fs.String("db", "", "measurement file (default from configuration)")
	csvPath := fs.String("csv", "", "export alpha as CSV")
	pngPath := fs.String("png", "", "plot alpha to an image file")
	irPath := fs.String("ir", "", "plot the lifted impulse response to an image file")
	mqttOut := fs.Bool("publish", false, "publish the result to the configured MQTT topic")
	name := fs.String("name", "", "sample name used when publishing")
	set := settingsFlag{}
	fs.Var(set, "set", "override an analysis setting, key=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := build()
	if err != nil {
		return err
	}

	set.apply(e.cfg.Analysis)

	path := *db
	if path == "" {
		path = e.cfg.Service.Database
	}

	if _, err := os.Stat(path); err != nil {
		return err
	}

	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	// Explicit overrides win over persisted analysis settings.
	defaults := e.cfg.Analysis
	if len(set) > 0 {
		persisted, err := st.AnalysisSettings(ctx)
		if err != nil {
			return err
		}

		defaults = persisted
		if len(defaults) == 0 {
			defaults = e.cfg.Analysis
		}

		set.apply(defaults)

		if err := st.SaveAnalysisSettings(ctx, defaults); err != nil {
			return err
		}
	}

	res, as, err := absorption.NewAnalyzer(e.logger).Reanalyze(ctx, st, defaults)
	if err != nil {
		return err
	}

	if err := st.SaveAnalysisSettings(ctx, as.Map()); err != nil {
		return err
	}

	if err := st.SaveMeasurementSettings(ctx, map[string]string{
		absorption.KeyMicrophoneLocation: fmt.Sprint(res.Locations.Microphone),
		absorption.KeyGeneratorLocation:  fmt.Sprint(res.Locations.Generator),
	}); err != nil {
		return err
	}

	for _, b := range res.Bands() {
		fmt.Printf("%6.0f Hz  %.3f\n", b.Center, b.Alpha)
	}

	if err := export(*csvPath, *pngPath, *irPath, res); err != nil {
		return err
	}

	if *mqttOut {
		p, err := publish.Dial(publish.Config{
			Broker:   e.cfg.Service.MQTTBroker,
			ClientID: e.cfg.Service.MQTTClientID,
			Topic:    e.cfg.Service.MQTTTopic,
		}, e.logger)
		if err != nil {
			return err
		}
		defer p.Close()

		if err := p.Publish(publish.NewMessage(*name, res, as)); err != nil {
			return err
		}
	}

	return nil
}

type output struct {
	renderer absorption.Renderer
	series   absorption.Series
}

func export(csvPath, pngPath, irPath string, res *absorption.Result) error {
	var outputs []output

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()

		outputs = append(outputs, output{plot.CSV{W: f}, res.AlphaSeries()})
	}

	if pngPath != "" {
		im := plot.NewImage(pngPath)
		im.YMin, im.YMax = 0, 1

		outputs = append(outputs, output{im, res.AlphaSeries()})
	}

	if irPath != "" {
		outputs = append(outputs, output{plot.NewImage(irPath), res.ImpulseSeries()})
	}

	for _, o := range outputs {
		if err := o.renderer.Render(o.series); err != nil {
			return fmt.Errorf("render %s: %w", strings.ToLower(o.series.Name), err)
		}
	}

	return nil
}
