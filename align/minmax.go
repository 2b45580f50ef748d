package align

import (
	"gonum.org/v1/gonum/mat"
)

// MinMax aligns x against every partition template and keeps the one with
// the smallest similarity.
//
// Steps:
//  1. For each partition h run the Elastic recurrence (stretching as needed).
//  2. Similarity = min_h S_h[n-1][e-1]; the first partition wins ties.
//  3. Only the winning partition's scores and path are returned;
//     Result.Partition records its index.
//
// Partitions with degenerate shape are skipped. If no partition can be
// aligned the zero Result is returned.
//
// Complexity: O(H·n·e) time, O(n·e) memory (two live tables).
func MinMax(x []float64, parts []*mat.Dense) Result {
	var (
		best      Result
		found     bool
		s, bs     []float64
		d, bd     []step
		bn, be    int
		h         int
		n, e      int
		w         *mat.Dense
		ok        bool
		candidate float64
	)
	for h = range parts {
		n, e, w, ok = prepare(x, parts[h])
		if !ok {
			continue
		}
		if len(s) < n*e {
			s = make([]float64, n*e)
			d = make([]step, n*e)
		}
		s, d = s[:n*e], d[:n*e]
		forward(x, w, n, e, s, d)
		candidate = s[n*e-1]
		if found && !(candidate < best.Similarity) {
			continue
		}
		found = true
		best.Similarity = candidate
		best.Partition = h
		bn, be = n, e
		// keep the winner, reuse the loser's buffers
		s, bs = bs, s
		d, bd = bd, d
	}
	if !found {
		return Result{}
	}
	best.Scores = mat.NewDense(bn, be, bs)
	best.Path = backtrace(bd, bn, be)

	return best
}

// MinMaxScore returns MinMax(x, parts).Similarity without building paths.
func MinMaxScore(x []float64, parts []*mat.Dense) float64 {
	var (
		best  float64
		found bool
	)
	for _, w := range parts {
		if _, _, _, ok := prepare(x, w); !ok {
			continue
		}
		v := ElasticScore(x, w)
		if !found || v < best {
			best, found = v, true
		}
	}

	return best
}
