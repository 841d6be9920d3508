package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/promplot/internal/channel"
	"github.com/san-kum/promplot/internal/render"
)

const (
	DefaultDemoPattern   = "demo%d.csv"
	DefaultDemoCount     = 10
	DefaultWorkers       = 4
	DefaultMeanFile      = "mean.csv"
	DefaultDeviationFile = "variance.csv"
	DefaultWidth         = 8.0 // inches
	DefaultHeight        = 5.0
	DefaultMeanWidth     = 2.0 // points
	DefaultDemoWidth     = 0.5
	DefaultBandAlpha     = 0.2
	DefaultXLabel        = "#samples"
	DefaultYLabel        = "right hand [m]"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	DataDir       string      `yaml:"data_dir"`
	DemoPattern   string      `yaml:"demo_pattern"`
	DemoCount     int         `yaml:"demo_count"`
	Workers       int         `yaml:"workers"`
	MeanFile      string      `yaml:"mean_file"`
	DeviationFile string      `yaml:"variance_file"`
	Channels      []string    `yaml:"channels"`
	Output        string      `yaml:"output"`
	Width         float64     `yaml:"width"`
	Height        float64     `yaml:"height"`
	Style         StyleConfig `yaml:"style"`
}

type StyleConfig struct {
	Title     string               `yaml:"title"`
	XLabel    string               `yaml:"x_label"`
	YLabel    string               `yaml:"y_label"`
	MeanWidth float64              `yaml:"mean_width"`
	DemoWidth float64              `yaml:"demo_width"`
	BandAlpha float64              `yaml:"band_alpha"`
	Grid      bool                 `yaml:"grid"`
	Palette   map[string]ColorPair `yaml:"palette"`
}

// ColorPair holds hex colors for a channel's aggregate curve and its demonstration overlays.
type ColorPair struct {
	Mean string `yaml:"mean"`
	Demo string `yaml:"demo"`
}

func DefaultPalette() map[string]ColorPair {
	return map[string]ColorPair{
		"x": {Mean: "#d62728", Demo: "#ff9896"},
		"y": {Mean: "#2ca02c", Demo: "#98df8a"},
		"z": {Mean: "#1f77b4", Demo: "#aec7e8"},
	}
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:       ".",
		DemoPattern:   DefaultDemoPattern,
		DemoCount:     DefaultDemoCount,
		Workers:       DefaultWorkers,
		MeanFile:      DefaultMeanFile,
		DeviationFile: DefaultDeviationFile,
		Channels:      []string{"x", "y", "z"},
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Style: StyleConfig{
			XLabel:    DefaultXLabel,
			YLabel:    DefaultYLabel,
			MeanWidth: DefaultMeanWidth,
			DemoWidth: DefaultDemoWidth,
			BandAlpha: DefaultBandAlpha,
			Grid:      true,
			Palette:   DefaultPalette(),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.DemoCount < 1 {
		return fmt.Errorf("%w: demo_count must be at least 1, got %d", ErrInvalidConfig, c.DemoCount)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if strings.Count(c.DemoPattern, "%d") != 1 || strings.Count(c.DemoPattern, "%") != 1 {
		return fmt.Errorf("%w: demo_pattern %q must contain exactly one %%d", ErrInvalidConfig, c.DemoPattern)
	}
	if c.MeanFile == "" || c.DeviationFile == "" {
		return fmt.Errorf("%w: mean_file and variance_file are required", ErrInvalidConfig)
	}
	if c.Style.BandAlpha < 0 || c.Style.BandAlpha > 1 {
		return fmt.Errorf("%w: band_alpha %v outside [0, 1]", ErrInvalidConfig, c.Style.BandAlpha)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: figure size must be positive", ErrInvalidConfig)
	}
	if _, err := c.ChannelList(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.RenderStyle(); err != nil {
		return err
	}
	return nil
}

func (c *Config) ChannelList() ([]channel.Channel, error) {
	return channel.ParseList(strings.Join(c.Channels, ","))
}

// RenderStyle resolves the style section into drawing parameters.
// Channels missing from the palette fall back to the defaults.
func (c *Config) RenderStyle() (render.Style, error) {
	st := render.DefaultStyle()
	st.Title = c.Style.Title
	st.XLabel = c.Style.XLabel
	st.YLabel = c.Style.YLabel
	st.Grid = c.Style.Grid
	st.BandAlpha = c.Style.BandAlpha
	if c.Style.MeanWidth > 0 {
		st.MeanWidth = vg.Points(c.Style.MeanWidth)
	}
	if c.Style.DemoWidth > 0 {
		st.DemoWidth = vg.Points(c.Style.DemoWidth)
	}

	for name, pair := range c.Style.Palette {
		ch, err := channel.Parse(name)
		if err != nil {
			return render.Style{}, fmt.Errorf("%w: palette: %v", ErrInvalidConfig, err)
		}
		colors := st.Palette[ch]
		if pair.Mean != "" {
			if colors.Mean, err = parseColor(pair.Mean); err != nil {
				return render.Style{}, err
			}
		}
		if pair.Demo != "" {
			if colors.Demo, err = parseColor(pair.Demo); err != nil {
				return render.Style{}, err
			}
		}
		st.Palette[ch] = colors
	}
	return st, nil
}

func parseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
