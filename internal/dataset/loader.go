package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/promplot/internal/matrix"
)

const defaultWorkers = 4

// Demonstration is one recorded trial.
type Demonstration struct {
	Index int // 1-based, from the file suffix
	Path  string
	Data  matrix.Matrix
}

// Loader reads demonstration and statistics tables from a directory.
type Loader struct {
	dir     string
	workers int
	logger  *zap.Logger
}

func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dir: dir, workers: defaultWorkers, logger: logger}
}

// WithWorkers caps how many files are parsed at once.
func (l *Loader) WithWorkers(n int) *Loader {
	if n > 0 {
		l.workers = n
	}
	return l
}

func (l *Loader) path(name string) string {
	if l.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dir, name)
}

// Demonstrations loads files pattern%1..pattern%n. The result is ordered by
// index regardless of which file finishes parsing first. Any failure fails
// the whole load.
func (l *Loader) Demonstrations(ctx context.Context, pattern string, n int) ([]Demonstration, error) {
	if n < 1 {
		return nil, fmt.Errorf("dataset: demonstration count must be positive, got %d", n)
	}

	start := time.Now()
	demos := make([]Demonstration, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i := 0; i < n; i++ {
		idx := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := l.path(fmt.Sprintf(pattern, idx+1))
			m, err := ReadMatrix(path)
			if err != nil {
				return err
			}
			demos[idx] = Demonstration{Index: idx + 1, Path: path, Data: m}
			l.logger.Debug("loaded demonstration",
				zap.String("file", path),
				zap.Int("rows", m.Rows()),
				zap.Int("cols", m.Cols()))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("demonstrations loaded",
		zap.Int("count", n),
		zap.Duration("elapsed", time.Since(start)))
	return demos, nil
}

// Statistics loads and validates the mean and deviation tables.
func (l *Loader) Statistics(meanFile, deviationFile string) (*Statistics, error) {
	mean, err := ReadMatrix(l.path(meanFile))
	if err != nil {
		return nil, err
	}
	dev, err := ReadMatrix(l.path(deviationFile))
	if err != nil {
		return nil, err
	}

	stats := &Statistics{Mean: mean, Deviation: dev}
	if err := stats.Validate(); err != nil {
		return nil, err
	}

	l.logger.Info("statistics loaded",
		zap.Int("samples", mean.Rows()),
		zap.Int("cols", mean.Cols()))
	return stats, nil
}
