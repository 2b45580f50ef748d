package align

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrBadPath is returned by ValidatePath for paths that are not monotonic
// corner-to-corner warping paths.
var ErrBadPath = errors.New("align: invalid warping path")

// Coord is one cell of a warping path: I indexes the input sequence,
// J indexes the template's elasticity columns.
type Coord struct {
	I, J int
}

// Result is the outcome of one alignment.
//
// Fields:
//   - Scores     — n×e accumulated score matrix (nil for degenerate input).
//   - Similarity — Scores[n-1][e-1]; 0 for degenerate input.
//   - Path       — optimal path from {0 0} to {n-1 e-1}, in forward order.
//   - Partition  — index of the template that produced the result
//     (always 0 for Elastic).
type Result struct {
	Scores     *mat.Dense
	Similarity float64
	Path       []Coord
	Partition  int
}

// Kernel aligns a sequence against the templates owned by one class.
// Implementations must be safe for concurrent use with distinct inputs.
type Kernel interface {
	// Align returns the full alignment including the backtrace path.
	Align(x []float64, parts []*mat.Dense) Result

	// Score returns only the similarity; it must equal Align(x, parts).Similarity.
	Score(x []float64, parts []*mat.Dense) float64
}

// step records which predecessor produced a DP cell.
type step uint8

const (
	stepOrigin   step = iota // (0,0), no predecessor
	stepInput                // from (i-1, j)
	stepElastic              // from (i, j-1)
	stepDiagonal             // from (i-1, j-1)
)
