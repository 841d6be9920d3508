package render

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/promplot/internal/channel"
)

var meanColors = map[channel.Channel]asciigraph.AnsiColor{
	channel.X: asciigraph.Red,
	channel.Y: asciigraph.Green,
	channel.Z: asciigraph.Blue,
}

type PreviewOptions struct {
	Width     int
	Height    int
	WithDemos bool
}

// Preview draws one series as a terminal chart: mean, band edges and
// optionally every demonstration.
func Preview(s channel.Series, opts PreviewOptions) string {
	if len(s.Mean) == 0 {
		return ""
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 10
	}

	data := [][]float64{s.Lower, s.Upper}
	colors := []asciigraph.AnsiColor{asciigraph.DarkGray, asciigraph.DarkGray}
	if opts.WithDemos {
		for _, d := range s.Demos {
			data = append(data, d)
			colors = append(colors, asciigraph.Gray)
		}
	}
	// mean last so it stays on top
	data = append(data, s.Mean)
	mc, ok := meanColors[s.Channel]
	if !ok {
		mc = asciigraph.Default
	}
	colors = append(colors, mc)

	return asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s: mean ± deviation (%d samples)", s.Channel, len(s.Mean))),
	)
}

// PreviewAll joins the previews of every series.
func PreviewAll(series []channel.Series, opts PreviewOptions) string {
	var sb strings.Builder
	for _, s := range series {
		sb.WriteString(Preview(s, opts))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
