package main

import (
	"context"
	"errors"
	"flag"

	"github.com/cwbudde/algo-alpha/publish"
	"github.com/cwbudde/algo-alpha/server"
)

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	build := common(fs)
	addr := fs.String("addr", "", "listen address (default from configuration)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := build()
	if err != nil {
		return err
	}

	listen := *addr
	if listen == "" {
		listen = e.cfg.Service.Listen
	}

	var opts []server.Option

	p, err := publish.Dial(publish.Config{
		Broker:   e.cfg.Service.MQTTBroker,
		ClientID: e.cfg.Service.MQTTClientID,
		Topic:    e.cfg.Service.MQTTTopic,
	}, e.logger)

	switch {
	case err == nil:
		defer p.Close()

		opts = append(opts, server.WithPublisher(p))
	case errors.Is(err, publish.ErrNoBroker):
		e.logger.Info("mqtt publishing disabled")
	default:
		return err
	}

	return server.New(e.logger, opts...).Run(ctx, listen)
}
