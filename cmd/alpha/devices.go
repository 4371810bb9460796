package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-alpha/audio"
)

func runDevices(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("devices", flag.ContinueOnError)
	build := common(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := build(); err != nil {
		return err
	}

	devices, err := audio.Devices()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tHOST API\tIN\tOUT\tRATE")

	for _, d := range devices {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.0f\n",
			d.Index, d.Name, d.HostAPI, d.MaxInputChannels, d.MaxOutputChannels, d.DefaultSampleRate)
	}

	return tw.Flush()
}
