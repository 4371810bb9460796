package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

func runGenerate(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	build := common(fs)
	out := fs.String("o", "", "output file (default stdout)")
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

	samples, err := absorption.Synthesize(ms)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()

		w = f
	}

	bw := bufio.NewWriter(w)
	for _, v := range samples {
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		bw.WriteByte('\n')
	}

	e.logger.Debug("excitation written", "samples", len(samples), "signal_type", ms.SignalType)

	return bw.Flush()
}
