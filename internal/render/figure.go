package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/promplot/internal/channel"
	"github.com/san-kum/promplot/internal/matrix"
)

// Figure is a constructed, unsaved plot together with the elements drawn on it.
type Figure struct {
	Plot  *plot.Plot
	Means []*plotter.Line
	Bands []*plotter.Polygon
	Demos [][]*plotter.Line // per series, in demonstration order
}

// NewFigure draws, for each series in order, the mean curve, the
// mean±deviation band and every raw demonstration curve. Nothing is drawn
// if any series fails validation.
func NewFigure(series []channel.Series, style Style) (*Figure, error) {
	for _, s := range series {
		if err := checkLengths(s); err != nil {
			return nil, err
		}
	}

	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = style.XLabel
	p.Y.Label.Text = style.YLabel
	if style.Grid {
		p.Add(plotter.NewGrid())
	}
	p.Legend.Top = true

	fig := &Figure{Plot: p}
	for _, s := range series {
		colors := style.colors(s.Channel)

		mean, err := plotter.NewLine(samplesXY(s.Mean))
		if err != nil {
			return nil, fmt.Errorf("channel %s mean: %w", s.Channel, err)
		}
		mean.LineStyle.Width = style.MeanWidth
		mean.LineStyle.Color = colors.Mean

		band, err := plotter.NewPolygon(bandXY(s.Lower, s.Upper))
		if err != nil {
			return nil, fmt.Errorf("channel %s band: %w", s.Channel, err)
		}
		band.Color = translucent(colors.Mean, style.BandAlpha)
		band.LineStyle.Width = 0

		p.Add(mean, band)
		p.Legend.Add(s.Channel.String(), mean)

		demos := make([]*plotter.Line, 0, len(s.Demos))
		for i, d := range s.Demos {
			l, err := plotter.NewLine(samplesXY(d))
			if err != nil {
				return nil, fmt.Errorf("channel %s demonstration %d: %w", s.Channel, i+1, err)
			}
			l.LineStyle.Width = style.DemoWidth
			l.LineStyle.Color = colors.Demo
			p.Add(l)
			demos = append(demos, l)
		}

		fig.Means = append(fig.Means, mean)
		fig.Bands = append(fig.Bands, band)
		fig.Demos = append(fig.Demos, demos)
	}
	return fig, nil
}

// Save writes the figure; the format follows the file extension.
func (f *Figure) Save(path string, width, height vg.Length) error {
	return f.Plot.Save(width, height, path)
}

// WriteTo encodes the figure as format ("png", "svg", "pdf", ...) into w.
func (f *Figure) WriteTo(w io.Writer, width, height vg.Length, format string) (int64, error) {
	wt, err := f.Plot.WriterTo(width, height, format)
	if err != nil {
		return 0, err
	}
	return wt.WriteTo(w)
}

func checkLengths(s channel.Series) error {
	n := len(s.Mean)
	if len(s.Lower) != n || len(s.Upper) != n {
		return fmt.Errorf("%w: channel %s band has %d/%d points, mean has %d",
			matrix.ErrShapeMismatch, s.Channel, len(s.Lower), len(s.Upper), n)
	}
	for i, d := range s.Demos {
		if len(d) != n {
			return fmt.Errorf("%w: channel %s demonstration %d has %d points, mean has %d",
				matrix.ErrShapeMismatch, s.Channel, i+1, len(d), n)
		}
	}
	return nil
}

// samplesXY places v at x = 0, 1, ..., len(v)-1.
func samplesXY(v matrix.Vector) plotter.XYs {
	pts := make(plotter.XYs, len(v))
	for i := range v {
		pts[i].X = float64(i)
		pts[i].Y = v[i]
	}
	return pts
}

// bandXY traces upper left to right and lower right to left.
func bandXY(lower, upper matrix.Vector) plotter.XYs {
	n := len(upper)
	pts := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		pts = append(pts, plotter.XY{X: float64(i), Y: upper[i]})
	}
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: float64(i), Y: lower[i]})
	}
	return pts
}
