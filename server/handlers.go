package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cwbudde/algo-alpha/measure/absorption"
	"github.com/cwbudde/algo-alpha/publish"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

type excitationRequest struct {
	Measurement map[string]string `json:"measurement"`
}

type excitationResponse struct {
	SampleRate float64   `json:"sample_rate"`
	Samples    []float64 `json:"samples"`
}

func (s *Server) handleExcitation(c echo.Context) error {
	var req excitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}

	ms, err := absorption.ParseMeasurement(req.Measurement)
	if err != nil {
		return s.fail(c, err)
	}

	samples, err := absorption.Synthesize(ms)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, excitationResponse{SampleRate: ms.SampleRate, Samples: samples})
}

type analyzeRequest struct {
	Name        string            `json:"name"`
	Measurement map[string]string `json:"measurement"`
	Analysis    map[string]string `json:"analysis"`
	Microphone  []float64         `json:"microphone"`
	Generator   []float64         `json:"generator"`
}

type locations struct {
	Microphone int `json:"microphone"`
	Generator  int `json:"generator"`
}

type band struct {
	Center float64 `json:"center"`
	Alpha  float64 `json:"alpha"`
}

type analyzeResponse struct {
	SampleRate      float64   `json:"sample_rate"`
	FFTSize         int       `json:"fft_size"`
	Frequencies     []float64 `json:"frequencies"`
	Alpha           []float64 `json:"alpha"`
	ImpulseResponse []float64 `json:"impulse_response"`
	Locations       locations `json:"locations"`
	Bands           []band    `json:"bands"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}

	ms, err := absorption.ParseMeasurement(req.Measurement)
	if err != nil {
		return s.fail(c, err)
	}

	as, err := absorption.ParseAnalysis(req.Analysis)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.analyzer.Analyze(ms, as, absorption.Recording{Microphone: req.Microphone, Generator: req.Generator})
	if err != nil {
		return s.fail(c, err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(publish.NewMessage(req.Name, res, as)); err != nil {
			s.logger.Warn("publish failed", "err", err)
		}
	}

	alpha := res.AlphaSeries()

	resp := analyzeResponse{
		SampleRate:      res.SampleRate(),
		FFTSize:         res.Analysis.FFTSize,
		Frequencies:     alpha.X,
		Alpha:           alpha.Y,
		ImpulseResponse: res.ImpulseResponse(),
		Locations:       locations{Microphone: res.Locations.Microphone, Generator: res.Locations.Generator},
		Bands:           []band{},
	}

	for _, b := range res.Bands() {
		resp.Bands = append(resp.Bands, band{Center: b.Center, Alpha: b.Alpha})
	}

	return c.JSON(http.StatusOK, resp)
}
