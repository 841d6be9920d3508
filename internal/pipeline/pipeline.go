package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/promplot/internal/channel"
	"github.com/san-kum/promplot/internal/config"
	"github.com/san-kum/promplot/internal/dataset"
	"github.com/san-kum/promplot/internal/render"
)

// Result is everything loaded and extracted for one figure.
type Result struct {
	Demonstrations []dataset.Demonstration
	Statistics     *dataset.Statistics
	Series         []channel.Series
}

// Pipeline runs load demonstrations, load statistics, extract. Rendering is a
// separate step so callers can export or preview without a figure.
type Pipeline struct {
	cfg    *config.Config
	loader *dataset.Loader
	logger *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		loader: dataset.NewLoader(cfg.DataDir, logger.Named("dataset")).WithWorkers(cfg.Workers),
		logger: logger,
	}, nil
}

func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	demos, err := p.loader.Demonstrations(ctx, p.cfg.DemoPattern, p.cfg.DemoCount)
	if err != nil {
		return nil, fmt.Errorf("load demonstrations: %w", err)
	}

	stats, err := p.loader.Statistics(p.cfg.MeanFile, p.cfg.DeviationFile)
	if err != nil {
		return nil, fmt.Errorf("load statistics: %w", err)
	}

	channels, err := p.cfg.ChannelList()
	if err != nil {
		return nil, err
	}
	series, err := channel.Extract(stats, demos, channels)
	if err != nil {
		return nil, fmt.Errorf("extract channels: %w", err)
	}

	p.logger.Info("pipeline complete",
		zap.Int("demonstrations", len(demos)),
		zap.Int("samples", stats.Samples()),
		zap.Int("channels", len(series)),
		zap.Duration("elapsed", time.Since(start)))

	return &Result{Demonstrations: demos, Statistics: stats, Series: series}, nil
}

// Render builds the figure for a result using the configured style.
func (p *Pipeline) Render(res *Result) (*render.Figure, error) {
	style, err := p.cfg.RenderStyle()
	if err != nil {
		return nil, err
	}
	fig, err := render.NewFigure(res.Series, style)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	p.logger.Debug("figure built", zap.Int("series", len(res.Series)))
	return fig, nil
}
