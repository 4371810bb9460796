// Package plot renders analysis series to image files and CSV.
package plot

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-alpha/measure/absorption"
)

// ErrSeries reports a series whose axes differ in length or are empty.
var ErrSeries = errors.New("plot: invalid series")

// Image renders a series as a line plot. The format follows the file
// extension (png, svg, pdf, ...).
type Image struct {
	Path   string
	Width  vg.Length
	Height vg.Length

	// YMin and YMax fix the vertical range when YMax > YMin.
	YMin, YMax float64
}

// NewImage returns a 16x10 cm renderer writing to path.
func NewImage(path string) *Image {
	return &Image{Path: path, Width: 16 * vg.Centimeter, Height: 10 * vg.Centimeter}
}

// Render implements absorption.Renderer.
func (im *Image) Render(s absorption.Series) error {
	if err := validate(s); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = s.Name
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys(s))
	if err != nil {
		return fmt.Errorf("plot: %s: %w", s.Name, err)
	}

	p.Add(line)

	if im.YMax > im.YMin {
		p.Y.Min, p.Y.Max = im.YMin, im.YMax
	}

	if err := p.Save(im.Width, im.Height, im.Path); err != nil {
		return fmt.Errorf("plot: save %s: %w", im.Path, err)
	}

	return nil
}

func xys(s absorption.Series) plotter.XYs {
	pts := make(plotter.XYs, len(s.X))
	for i := range pts {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}

	return pts
}

func validate(s absorption.Series) error {
	if len(s.X) == 0 || len(s.X) != len(s.Y) {
		return fmt.Errorf("%w: %q has %d x and %d y values", ErrSeries, s.Name, len(s.X), len(s.Y))
	}

	return nil
}
