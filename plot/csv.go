package plot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

// CSV writes a series as two labelled columns.
type CSV struct {
	W io.Writer
}

// Render implements absorption.Renderer.
func (c CSV) Render(s absorption.Series) error {
	if err := validate(s); err != nil {
		return err
	}

	w := csv.NewWriter(c.W)

	if err := w.Write([]string{s.XLabel, s.YLabel}); err != nil {
		return fmt.Errorf("plot: csv header: %w", err)
	}

	for i := range s.X {
		row := []string{
			strconv.FormatFloat(s.X[i], 'g', -1, 64),
			strconv.FormatFloat(s.Y[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("plot: csv row %d: %w", i, err)
		}
	}

	w.Flush()

	return w.Error()
}
