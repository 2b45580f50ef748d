package dtw

import "math"

// Distance computes the DTW distance between a and b.
//
// Algorithm Outline:
//  1. D[0][0] = 0, D[i][0] = D[0][j] = +∞.
//  2. For i = 1..n, j = 1..m with |i-j| ≤ Window (when Window > 0):
//     D[i][j] = |a[i-1]-b[j-1]| + min(D[i-1][j]+p, D[i][j-1]+p, D[i-1][j-1])
//  3. distance = D[n][m]; +Inf when the window makes (n,m) unreachable.
//
// Only two rows of D are kept.
//
// Complexity: O(n·m) time, O(m) memory.
func Distance(a, b []float64, opts Options) (float64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmptySequence
	}

	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	p := opts.SlopePenalty
	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if opts.Window > 0 && abs(i-j) > opts.Window {
				curr[j] = inf
				continue
			}
			best := prev[j-1]
			if v := prev[j] + p; v < best {
				best = v
			}
			if v := curr[j-1] + p; v < best {
				best = v
			}
			curr[j] = math.Abs(a[i-1]-b[j-1]) + best
		}
		prev, curr = curr, prev
	}

	return prev[m], nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
