package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/cwbudde/algo-alpha/audio"
	"github.com/cwbudde/algo-alpha/measure/absorption"
	"github.com/cwbudde/algo-alpha/store"
)

func runMeasure(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("measure", flag.ContinueOnError)
	build := common(fs)
	db := fs.String("db", "", "measurement file to create (default from configuration)")
	set := settingsFlag{}
	fs.Var(set, "set", "override a measurement setting, key=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := build()
	if err != nil {
		return err
	}

	set.apply(e.cfg.Measurement)

	ms, err := absorption.ParseMeasurement(e.cfg.Measurement)
	if err != nil {
		return err
	}

	transport := &audio.Transport{
		SampleRate: ms.SampleRate,
		Input:      ms.InputDevice,
		Output:     ms.OutputDevice,
	}

	meas, err := absorption.NewSession(transport, e.logger).Measure(ctx, ms)
	if err != nil {
		return err
	}

	path := *db
	if path == "" {
		path = e.cfg.Service.Database
	}

	st, err := store.Create(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveMeasurementSettings(ctx, meas.Settings.Map()); err != nil {
		return err
	}

	id, err := st.SaveSignal(ctx, meas.Recording.Microphone, meas.Recording.Generator)
	if err != nil {
		return fmt.Errorf("save signal: %w", err)
	}

	e.logger.Info("measurement saved", "path", path, "signal", id, "samples", len(meas.Recording.Microphone))

	return nil
}
