package absorption

// Series is one plottable curve.
type Series struct {
	Name   string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// Renderer draws or exports a series. Implementations live outside the
// analysis core.
type Renderer interface {
	Render(s Series) error
}
