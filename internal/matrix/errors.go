package matrix

import (
	"errors"
	"fmt"
)

// Domain errors for loading and slicing trajectory tables.
var (
	// ErrFileNotFound indicates a required table is absent.
	ErrFileNotFound = errors.New("matrix: file not found")

	// ErrParse indicates a non-numeric field or ragged rows.
	ErrParse = errors.New("matrix: parse error")

	// ErrDimension indicates a table with too few columns for the requested channel.
	ErrDimension = errors.New("matrix: not enough columns")

	// ErrShapeMismatch indicates tables whose row or column counts disagree.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")
)

// LoadError wraps an error with the file and cell it occurred at.
// Row and Col are 1-based; zero means unknown.
type LoadError struct {
	File    string
	Row     int
	Col     int
	Wrapped error
}

func (e *LoadError) Error() string {
	switch {
	case e.Row > 0 && e.Col > 0:
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Row, e.Col, e.Wrapped)
	case e.Row > 0:
		return fmt.Sprintf("%s:%d: %v", e.File, e.Row, e.Wrapped)
	default:
		return fmt.Sprintf("%s: %v", e.File, e.Wrapped)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}
