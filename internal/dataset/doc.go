// Package dataset reads demonstration and statistics tables.
//
// Tables are headerless comma-delimited files of floats. A [Loader] reads
// demo1.csv .. demoN.csv concurrently but returns them in index order, and
// fails the whole load if any single file is missing or malformed.
//
//	l := dataset.NewLoader(dir, logger)
//	demos, err := l.Demonstrations(ctx, "demo%d.csv", 10)
//	stats, err := l.Statistics("mean.csv", "variance.csv")
package dataset
