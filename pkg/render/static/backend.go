package static

import (
	"sync"

	"github.com/matzehuels/featureviewer/pkg/capability"
	"github.com/matzehuels/featureviewer/pkg/fonts"
	"github.com/matzehuels/featureviewer/pkg/layout"
	"github.com/matzehuels/featureviewer/pkg/record"
)

// Backend runs the static layout pass.
type Backend struct {
	Options layout.Options
}

// New returns a backend using opts for every layout.
func New(opts layout.Options) *Backend {
	return &Backend{Options: opts}
}

// Requirements lists the capabilities Plot, RenderSVG and RenderPNG need.
// Everything is pure Go, so the list is empty; PDF output adds
// render.RSVGRequirement.
func (b *Backend) Requirements() []capability.Requirement { return nil }

// Plot computes the layout of rec on a figure widthInches wide and returns
// the still-open axis. The caller must Close the axis.
func (b *Backend) Plot(rec record.Record, widthInches float64) (*Axis, layout.Layout, error) {
	opts := b.Options
	if opts.FontSize == 0 {
		opts.FontSize = layout.DefaultOptions().FontSize
	}

	fig, err := newFigure(widthInches, opts.FontSize)
	if err != nil {
		return nil, layout.Layout{}, err
	}

	l, err := layout.Compute(rec, fig.measurer, widthInches, opts)
	if err != nil {
		fig.close()
		return nil, layout.Layout{}, err
	}
	fig.heightInches = l.HeightInches

	return &Axis{figure: fig}, l, nil
}

// Figure is the static drawing surface. It owns the measurement font face.
type Figure struct {
	widthInches  float64
	heightInches float64
	measurer     *fonts.Measurer
}

func newFigure(widthInches, fontSize float64) (*Figure, error) {
	m, err := fonts.NewMeasurer(fontSize)
	if err != nil {
		return nil, err
	}
	return &Figure{widthInches: widthInches, measurer: m}, nil
}

// SizeInches returns the figure width and height in inches.
func (f *Figure) SizeInches() (width, height float64) {
	return f.widthInches, f.heightInches
}

func (f *Figure) close() error {
	return f.measurer.Close()
}

// Axis is the handle returned by Plot.
type Axis struct {
	figure    *Figure
	closeOnce sync.Once
	closeErr  error
}

// Figure returns the figure the axis draws on.
func (a *Axis) Figure() *Figure { return a.figure }

// SizeInches is shorthand for a.Figure().SizeInches().
func (a *Axis) SizeInches() (width, height float64) { return a.figure.SizeInches() }

// Close releases the figure. It is safe to call more than once.
func (a *Axis) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.figure.close()
	})
	return a.closeErr
}
