package align

import (
	"gonum.org/v1/gonum/mat"
)

// Elastic — max-accumulating elastic alignment of x against template w.
//
// Algorithm Outline:
//  1. Let n = len(x), e = columns of w. Stretch w to n rows if it is shorter.
//  2. Fill S (n×e) and the direction table D:
//     S[0][0] = x[0]·w[0][0]
//     S[i][0] = S[i-1][0] + x[i]·w[i][0]          D = input
//     S[0][j] = S[0][j-1] + x[0]·w[0][j]          D = elastic
//     S[i][j] = best + x[i]·w[i][j], where best is the first strict
//     maximum of S[i-1][j], S[i][j-1], S[i-1][j-1]  D = its direction
//  3. Similarity = S[n-1][e-1].
//  4. Walk D back from (n-1,e-1) to (0,0), then reverse into forward order.
//
// Only the first n rows of w take part when w is taller than the input.
//
// Complexity:
//
//	Time   = O(n·e)
//	Memory = O(n·e)
func Elastic(x []float64, w *mat.Dense) Result {
	n, e, w, ok := prepare(x, w)
	if !ok {
		return Result{}
	}

	scores := make([]float64, n*e)
	dirs := make([]step, n*e)
	forward(x, w, n, e, scores, dirs)

	return Result{
		Scores:     mat.NewDense(n, e, scores),
		Similarity: scores[n*e-1],
		Path:       backtrace(dirs, n, e),
	}
}

// ElasticScore returns Elastic(x, w).Similarity using two rolling rows.
//
// Complexity: O(n·e) time, O(e) memory.
func ElasticScore(x []float64, w *mat.Dense) float64 {
	n, e, w, ok := prepare(x, w)
	if !ok {
		return 0
	}

	prev := make([]float64, e)
	curr := make([]float64, e)
	row := w.RawRowView(0)
	prev[0] = x[0] * row[0]
	for j := 1; j < e; j++ {
		prev[j] = prev[j-1] + x[0]*row[j]
	}
	for i := 1; i < n; i++ {
		row = w.RawRowView(i)
		curr[0] = prev[0] + x[i]*row[0]
		for j := 1; j < e; j++ {
			best := prev[j]
			if curr[j-1] > best {
				best = curr[j-1]
			}
			if prev[j-1] > best {
				best = prev[j-1]
			}
			curr[j] = best + x[i]*row[j]
		}
		prev, curr = curr, prev
	}

	return prev[e-1]
}

// Stretch returns a template with at least n rows. When w already has n or
// more rows it is returned as is; otherwise a fresh n×e matrix is allocated,
// the native rows are copied and the trailing rows are left zero. w itself is
// never modified.
func Stretch(w *mat.Dense, n int) *mat.Dense {
	r, c := w.Dims()
	if n <= r || c == 0 {
		return w
	}
	out := mat.NewDense(n, c, nil)
	for i := 0; i < r; i++ {
		copy(out.RawRowView(i), w.RawRowView(i))
	}

	return out
}

// ValidatePath checks that path is a warping path of an n×e score matrix:
// it starts at {0 0}, ends at {n-1 e-1}, and every step advances the input,
// the elasticity, or both by exactly one.
//
// Complexity: O(len(path)).
func ValidatePath(path []Coord, n, e int) error {
	if len(path) == 0 || n <= 0 || e <= 0 {
		return ErrBadPath
	}
	if path[0] != (Coord{0, 0}) || path[len(path)-1] != (Coord{n - 1, e - 1}) {
		return ErrBadPath
	}
	for k := 1; k < len(path); k++ {
		di := path[k].I - path[k-1].I
		dj := path[k].J - path[k-1].J
		if di < 0 || dj < 0 || di > 1 || dj > 1 || di+dj == 0 {
			return ErrBadPath
		}
	}

	return nil
}

// PathNormL1 returns Σ|w[i][j]| over the cells of path.
func PathNormL1(w mat.Matrix, path []Coord) float64 {
	var sum float64
	for _, c := range path {
		v := w.At(c.I, c.J)
		if v < 0 {
			v = -v
		}
		sum += v
	}

	return sum
}

// PathNormL2 returns Σw[i][j]² over the cells of path.
func PathNormL2(w mat.Matrix, path []Coord) float64 {
	var sum float64
	for _, c := range path {
		v := w.At(c.I, c.J)
		sum += v * v
	}

	return sum
}

// prepare resolves the DP dimensions and stretches w when needed.
// ok is false for degenerate input.
func prepare(x []float64, w *mat.Dense) (n, e int, out *mat.Dense, ok bool) {
	n = len(x)
	if n == 0 || w == nil || w.IsEmpty() {
		return 0, 0, nil, false
	}
	_, e = w.Dims()
	if e == 0 {
		return 0, 0, nil, false
	}

	return n, e, Stretch(w, n), true
}

// forward fills the row-major score and direction tables for x against w.
func forward(x []float64, w *mat.Dense, n, e int, s []float64, d []step) {
	row := w.RawRowView(0)
	s[0] = x[0] * row[0]
	d[0] = stepOrigin
	for j := 1; j < e; j++ {
		s[j] = s[j-1] + x[0]*row[j]
		d[j] = stepElastic
	}

	for i := 1; i < n; i++ {
		row = w.RawRowView(i)
		at := i * e
		up := at - e
		s[at] = s[up] + x[i]*row[0]
		d[at] = stepInput
		for j := 1; j < e; j++ {
			best, dir := s[up+j], stepInput
			if s[at+j-1] > best {
				best, dir = s[at+j-1], stepElastic
			}
			if s[up+j-1] > best {
				best, dir = s[up+j-1], stepDiagonal
			}
			s[at+j] = best + x[i]*row[j]
			d[at+j] = dir
		}
	}
}

// backtrace follows the stored directions from the bottom-right corner and
// returns the path in forward order. Boundary cells move along the only free
// axis regardless of the stored direction.
func backtrace(d []step, n, e int) []Coord {
	path := make([]Coord, 0, n+e-1)
	i, j := n-1, e-1
	path = append(path, Coord{i, j})
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			switch d[i*e+j] {
			case stepInput:
				i--
			case stepElastic:
				j--
			default:
				i--
				j--
			}
		}
		path = append(path, Coord{i, j})
	}

	// reverse path in-place
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}
