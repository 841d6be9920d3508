// Package matrix provides the numeric containers shared by the loaders,
// the channel extractor and the renderer.
//
//   - [Matrix]: row-major table, one row per sample
//   - [Vector]: one column of a table, with elementwise [Vector.Add] and [Vector.Sub]
//   - [LoadError]: file, row and column context for a failed load
//
// # Errors
//
// Failures are classified by the sentinel errors [ErrFileNotFound],
// [ErrParse], [ErrDimension] and [ErrShapeMismatch]. Test with errors.Is:
//
//	if errors.Is(err, matrix.ErrShapeMismatch) {
//	    // mean and variance disagree
//	}
package matrix
