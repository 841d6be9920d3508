package dataset

import (
	"fmt"

	"github.com/san-kum/promplot/internal/matrix"
)

// MinChannels is the number of leading columns every table must carry (X, Y, Z).
const MinChannels = 3

// Statistics holds the per-sample aggregate of all demonstrations.
// Deviation is read from the variance file and used as a deviation magnitude as is.
type Statistics struct {
	Mean      matrix.Matrix
	Deviation matrix.Matrix
}

func (s *Statistics) Samples() int {
	return s.Mean.Rows()
}

// Validate checks that mean and deviation share a shape wide enough for every channel.
func (s *Statistics) Validate() error {
	mr, mc := s.Mean.Shape()
	if !s.Mean.SameShape(s.Deviation) {
		dr, dc := s.Deviation.Shape()
		return fmt.Errorf("%w: mean is %dx%d, variance is %dx%d", matrix.ErrShapeMismatch, mr, mc, dr, dc)
	}
	if mc < MinChannels {
		return fmt.Errorf("%w: statistics have %d columns, need %d", matrix.ErrDimension, mc, MinChannels)
	}
	return nil
}
