// Package server exposes excitation synthesis and analysis over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cwbudde/algo-alpha/measure/absorption"
	"github.com/cwbudde/algo-alpha/measure/measerr"
	"github.com/cwbudde/algo-alpha/publish"
)

// Publisher receives every successful analysis.
type Publisher interface {
	Publish(publish.Message) error
}

// Server is the Echo application.
type Server struct {
	echo      *echo.Echo
	analyzer  *absorption.Analyzer
	publisher Publisher
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithPublisher publishes every analysis result through p.
func WithPublisher(p Publisher) Option {
	return func(s *Server) { s.publisher = p }
}

// New constructs the Echo app and registers the routes.
func New(logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("256M"))

	s := &Server{echo: e, analyzer: absorption.NewAnalyzer(logger), logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()

	return s
}

// Echo exposes the underlying Echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.POST("/api/excitation", s.handleExcitation)
	s.echo.POST("/api/analyze", s.handleAnalyze)
}

// Run starts Echo and blocks until ctx cancellation or startup failure.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		err := s.echo.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	s.logger.Info("http server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.echo.Shutdown(shutCtx)
		return nil
	}
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, measerr.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, measerr.ErrDataShape), errors.Is(err, measerr.ErrSynchronization):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) fail(c echo.Context, err error) error {
	status := statusFor(err)
	s.logger.Warn("request failed", "path", c.Path(), "status", status, "kind", measerr.Kind(err), "err", err)

	return c.JSON(status, errorResponse{Error: err.Error(), Kind: measerr.Kind(err)})
}
