package absorption

import (
	"context"
	"fmt"
)

// Repository loads a saved measurement.
type Repository interface {
	MeasurementSettings(ctx context.Context) (map[string]string, error)
	AnalysisSettings(ctx context.Context) (map[string]string, error)
	IsAnalyzed(ctx context.Context) (bool, error)
	Recording(ctx context.Context) (microphone, generator []float64, err error)
}

// Reanalyze analyzes a saved measurement. The persisted analysis settings
// are used when the measurement has been analyzed before, defaults
// otherwise. The settings actually applied are returned with the result.
func (a *Analyzer) Reanalyze(ctx context.Context, repo Repository, defaults map[string]string) (*Result, AnalysisSettings, error) {
	msMap, err := repo.MeasurementSettings(ctx)
	if err != nil {
		return nil, AnalysisSettings{}, fmt.Errorf("absorption: load measurement settings: %w", err)
	}

	ms, err := ParseMeasurement(msMap)
	if err != nil {
		return nil, AnalysisSettings{}, err
	}

	asMap := defaults

	analyzed, err := repo.IsAnalyzed(ctx)
	if err != nil {
		return nil, AnalysisSettings{}, fmt.Errorf("absorption: query analysis state: %w", err)
	}

	if analyzed {
		if asMap, err = repo.AnalysisSettings(ctx); err != nil {
			return nil, AnalysisSettings{}, fmt.Errorf("absorption: load analysis settings: %w", err)
		}
	}

	as, err := ParseAnalysis(asMap)
	if err != nil {
		return nil, AnalysisSettings{}, err
	}

	mic, gen, err := repo.Recording(ctx)
	if err != nil {
		return nil, AnalysisSettings{}, fmt.Errorf("absorption: load recording: %w", err)
	}

	a.logger.Debug("reanalyzing", "persisted_analysis", analyzed, "samples", len(mic))

	res, err := a.Analyze(ms, as, Recording{Microphone: mic, Generator: gen})
	if err != nil {
		return nil, AnalysisSettings{}, err
	}

	return res, as, nil
}
