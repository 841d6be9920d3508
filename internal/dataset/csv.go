package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/promplot/internal/matrix"
)

// ReadMatrix parses a headerless comma-delimited numeric table.
// Every field must parse as a finite float64 and every row must have the same width.
func ReadMatrix(path string) (matrix.Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &matrix.LoadError{File: path, Wrapped: matrix.ErrFileNotFound}
		}
		return nil, &matrix.LoadError{File: path, Wrapped: err}
	}
	defer file.Close()

	m, err := DecodeMatrix(file)
	if err != nil {
		var le *matrix.LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &matrix.LoadError{File: path, Wrapped: err}
	}
	return m, nil
}

// DecodeMatrix reads a table from r. Errors carry the row and column but no file name.
func DecodeMatrix(r io.Reader) (matrix.Matrix, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var m matrix.Matrix
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &matrix.LoadError{Row: pe.Line, Col: pe.Column, Wrapped: fmt.Errorf("%w: %v", matrix.ErrParse, pe.Err)}
			}
			return nil, err
		}

		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &matrix.LoadError{Row: row, Col: j + 1, Wrapped: fmt.Errorf("%w: %q is not a number", matrix.ErrParse, field)}
			}
			values[j] = v
		}
		if !matrix.Vector(values).IsValid() {
			for j, v := range values {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, &matrix.LoadError{Row: row, Col: j + 1, Wrapped: fmt.Errorf("%w: %q is not finite", matrix.ErrParse, strings.TrimSpace(record[j]))}
				}
			}
		}
		m = append(m, values)
	}

	if len(m) == 0 {
		return nil, &matrix.LoadError{Wrapped: fmt.Errorf("%w: no rows", matrix.ErrParse)}
	}
	return m, nil
}

// WriteMatrix writes m in the format ReadMatrix accepts.
func WriteMatrix(path string, m matrix.Matrix) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	row := make([]string, 0, m.Cols())
	for i := range m {
		row = row[:0]
		for _, val := range m[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}
