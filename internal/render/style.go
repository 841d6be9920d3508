package render

import (
	"image/color"

	"gonum.org/v1/plot/vg"

	"github.com/san-kum/promplot/internal/channel"
)

// Colors is the pair assigned to a channel: one for the aggregate curve and
// its band, one for the raw demonstration overlays.
type Colors struct {
	Mean color.Color
	Demo color.Color
}

type Style struct {
	Title     string
	XLabel    string
	YLabel    string
	MeanWidth vg.Length
	DemoWidth vg.Length
	BandAlpha float64
	Grid      bool
	Palette   map[channel.Channel]Colors
}

func DefaultStyle() Style {
	return Style{
		XLabel:    "#samples",
		YLabel:    "right hand [m]",
		MeanWidth: vg.Points(2),
		DemoWidth: vg.Points(0.5),
		BandAlpha: 0.2,
		Grid:      true,
		Palette: map[channel.Channel]Colors{
			channel.X: {Mean: color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, Demo: color.NRGBA{R: 0xff, G: 0x98, B: 0x96, A: 0xff}},
			channel.Y: {Mean: color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, Demo: color.NRGBA{R: 0x98, G: 0xdf, B: 0x8a, A: 0xff}},
			channel.Z: {Mean: color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, Demo: color.NRGBA{R: 0xae, G: 0xc7, B: 0xe8, A: 0xff}},
		},
	}
}

func (s Style) colors(ch channel.Channel) Colors {
	if c, ok := s.Palette[ch]; ok {
		return c
	}
	return DefaultStyle().Palette[ch]
}

// translucent returns c with its alpha replaced.
func translucent(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}
