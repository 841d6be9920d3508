package channel

import (
	"fmt"

	"github.com/san-kum/promplot/internal/dataset"
	"github.com/san-kum/promplot/internal/matrix"
)

// Series is everything drawn for one channel.
type Series struct {
	Channel   Channel
	Mean      matrix.Vector
	Deviation matrix.Vector
	Lower     matrix.Vector // Mean - Deviation
	Upper     matrix.Vector // Mean + Deviation
	Demos     []matrix.Vector
}

func (s *Series) Samples() int {
	return len(s.Mean)
}

// Extract slices mean, deviation and every demonstration for each channel.
// Deviation values are taken verbatim from the variance table; no square root
// is applied. Demonstrations must have exactly as many samples as the mean.
func Extract(stats *dataset.Statistics, demos []dataset.Demonstration, channels []Channel) ([]Series, error) {
	if err := stats.Validate(); err != nil {
		return nil, err
	}
	samples := stats.Samples()
	for _, d := range demos {
		if d.Data.Cols() < dataset.MinChannels {
			return nil, fmt.Errorf("%w: demonstration %d (%s) has %d columns, need %d",
				matrix.ErrDimension, d.Index, d.Path, d.Data.Cols(), dataset.MinChannels)
		}
		if d.Data.Rows() != samples {
			return nil, fmt.Errorf("%w: demonstration %d (%s) has %d samples, mean has %d",
				matrix.ErrShapeMismatch, d.Index, d.Path, d.Data.Rows(), samples)
		}
	}

	out := make([]Series, 0, len(channels))
	for _, ch := range channels {
		s, err := extractOne(stats, demos, ch)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", ch, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func extractOne(stats *dataset.Statistics, demos []dataset.Demonstration, ch Channel) (Series, error) {
	mean, err := stats.Mean.Column(ch.Index())
	if err != nil {
		return Series{}, err
	}
	dev, err := stats.Deviation.Column(ch.Index())
	if err != nil {
		return Series{}, err
	}
	lower, err := mean.Sub(dev)
	if err != nil {
		return Series{}, err
	}
	upper, err := mean.Add(dev)
	if err != nil {
		return Series{}, err
	}

	raw := make([]matrix.Vector, len(demos))
	for i, d := range demos {
		raw[i], err = d.Data.Column(ch.Index())
		if err != nil {
			return Series{}, fmt.Errorf("demonstration %d: %w", d.Index, err)
		}
	}

	return Series{
		Channel:   ch,
		Mean:      mean,
		Deviation: dev,
		Lower:     lower,
		Upper:     upper,
		Demos:     raw,
	}, nil
}
