// Package render draws extracted channels with gonum/plot and previews them
// in the terminal with asciigraph.
package render
