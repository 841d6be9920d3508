package matrix

import (
	"fmt"
	"math"
)

type Vector []float64

// IsValid reports whether every element is finite.
func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Add returns v + other elementwise. Lengths must match.
func (v Vector) Add(other Vector) (Vector, error) {
	if len(v) != len(other) {
		return nil, fmt.Errorf("%w: add %d and %d elements", ErrShapeMismatch, len(v), len(other))
	}
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result, nil
}

// Sub returns v - other elementwise. Lengths must match.
func (v Vector) Sub(other Vector) (Vector, error) {
	if len(v) != len(other) {
		return nil, fmt.Errorf("%w: sub %d and %d elements", ErrShapeMismatch, len(v), len(other))
	}
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result, nil
}

func (v Vector) Bounds() (lo, hi float64) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// Matrix is a row-major table of samples. Row order is file order.
type Matrix [][]float64

func (m Matrix) Rows() int {
	return len(m)
}

// Cols is the column count of the first row; loaders guarantee every row agrees.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

func (m Matrix) Shape() (rows, cols int) {
	return m.Rows(), m.Cols()
}

// Column returns column k of every row as a vector of length Rows().
func (m Matrix) Column(k int) (Vector, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: column %d", ErrDimension, k)
	}
	col := make(Vector, len(m))
	for i, row := range m {
		if k >= len(row) {
			return nil, fmt.Errorf("%w: row %d has %d columns, need %d", ErrDimension, i+1, len(row), k+1)
		}
		col[i] = row[k]
	}
	return col, nil
}

// SameShape reports whether m and other have identical row and column counts.
func (m Matrix) SameShape(other Matrix) bool {
	r1, c1 := m.Shape()
	r2, c2 := other.Shape()
	return r1 == r2 && c1 == c2
}
