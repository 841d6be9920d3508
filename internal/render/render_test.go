package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/promplot/internal/channel"
	"github.com/san-kum/promplot/internal/matrix"
)

func makeSeries(ch channel.Channel, samples, demos int) channel.Series {
	s := channel.Series{Channel: ch}
	for i := 0; i < samples; i++ {
		m := float64(i) * 0.01
		d := 0.1 + float64(i)*0.001
		s.Mean = append(s.Mean, m)
		s.Deviation = append(s.Deviation, d)
		s.Lower = append(s.Lower, m-d)
		s.Upper = append(s.Upper, m+d)
	}
	for k := 0; k < demos; k++ {
		v := make(matrix.Vector, samples)
		for i := range v {
			v[i] = s.Mean[i] + float64(k)*0.005
		}
		s.Demos = append(s.Demos, v)
	}
	return s
}

func allSeries(samples, demos int) []channel.Series {
	return []channel.Series{
		makeSeries(channel.X, samples, demos),
		makeSeries(channel.Y, samples, demos),
		makeSeries(channel.Z, samples, demos),
	}
}

func TestNewFigure_Elements(t *testing.T) {
	fig, err := NewFigure(allSeries(100, 10), DefaultStyle())
	require.NoError(t, err)

	assert.Len(t, fig.Means, 3)
	assert.Len(t, fig.Bands, 3)
	require.Len(t, fig.Demos, 3)
	total := 0
	for _, d := range fig.Demos {
		assert.Len(t, d, 10)
		total += len(d)
	}
	assert.Equal(t, 30, total)

	assert.Equal(t, "#samples", fig.Plot.X.Label.Text)
	assert.Equal(t, "right hand [m]", fig.Plot.Y.Label.Text)
}

func TestNewFigure_SampleAxis(t *testing.T) {
	series := allSeries(5, 1)
	fig, err := NewFigure(series, DefaultStyle())
	require.NoError(t, err)

	mean := fig.Means[0]
	require.Len(t, mean.XYs, 5)
	for i, pt := range mean.XYs {
		assert.Equal(t, float64(i), pt.X)
		assert.Equal(t, series[0].Mean[i], pt.Y)
	}
}

func TestNewFigure_BandIsMeanPlusMinusDeviation(t *testing.T) {
	s := makeSeries(channel.Y, 4, 0)
	fig, err := NewFigure([]channel.Series{s}, DefaultStyle())
	require.NoError(t, err)

	band := fig.Bands[0]
	require.Len(t, band.XYs, 1)
	ring := band.XYs[0]
	require.Len(t, ring, 8)

	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(i), ring[i].X)
		assert.Equal(t, s.Mean[i]+s.Deviation[i], ring[i].Y)
	}
	for i := 0; i < 4; i++ {
		pt := ring[7-i]
		assert.Equal(t, float64(i), pt.X)
		assert.Equal(t, s.Mean[i]-s.Deviation[i], pt.Y)
	}
}

func TestNewFigure_Colors(t *testing.T) {
	style := DefaultStyle()
	fig, err := NewFigure(allSeries(3, 2), style)
	require.NoError(t, err)

	for i, ch := range channel.All {
		want := style.Palette[ch]
		assert.Equal(t, want.Mean, fig.Means[i].LineStyle.Color)
		assert.Equal(t, style.MeanWidth, fig.Means[i].LineStyle.Width)
		for _, d := range fig.Demos[i] {
			assert.Equal(t, want.Demo, d.LineStyle.Color)
			assert.Equal(t, style.DemoWidth, d.LineStyle.Width)
		}

		band := color.NRGBAModel.Convert(fig.Bands[i].Color).(color.NRGBA)
		assert.Equal(t, uint8(51), band.A)
	}
}

func TestNewFigure_LengthMismatch(t *testing.T) {
	series := allSeries(10, 3)
	series[1].Demos[2] = series[1].Demos[2][:9]

	fig, err := NewFigure(series, DefaultStyle())
	assert.Nil(t, fig)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	series = allSeries(10, 0)
	series[0].Upper = series[0].Upper[:8]
	_, err = NewFigure(series, DefaultStyle())
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestFigure_WriteTo(t *testing.T) {
	fig, err := NewFigure(allSeries(20, 2), DefaultStyle())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := fig.WriteTo(&buf, 4*vg.Inch, 3*vg.Inch, "png")
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestFigure_Save(t *testing.T) {
	fig, err := NewFigure(allSeries(20, 2), DefaultStyle())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trajectories.svg")
	require.NoError(t, fig.Save(path, 6*vg.Inch, 4*vg.Inch))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestPreview(t *testing.T) {
	s := makeSeries(channel.Z, 50, 3)
	out := Preview(s, PreviewOptions{Width: 40, Height: 6, WithDemos: true})
	assert.Contains(t, out, "Z: mean ± deviation (50 samples)")

	assert.Empty(t, Preview(channel.Series{Channel: channel.X}, PreviewOptions{}))

	all := PreviewAll(allSeries(10, 0), PreviewOptions{Width: 30, Height: 4})
	assert.Equal(t, 3, strings.Count(all, "mean ± deviation"))
}
