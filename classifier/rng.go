// RNG utilities for weight initialization and epoch shuffling.
//
// math/rand.Rand is not goroutine-safe; the stream lives on the Classifier
// and is only touched by Fit.
package classifier

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// shuffleInPlace performs an unbiased Fisher–Yates shuffle of a.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleInPlace(a []int, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// identity returns 0..n-1.
func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// gaussianDense returns an r×c matrix of N(0,1)/sqrt(fanIn) draws, filled
// in row-major order.
func gaussianDense(rng *rand.Rand, r, c, fanIn int) *mat.Dense {
	scale := 1 / math.Sqrt(float64(fanIn))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.NormFloat64() * scale
	}

	return mat.NewDense(r, c, data)
}

// gaussianSlice returns n draws of N(0,1)/sqrt(fanIn).
func gaussianSlice(rng *rand.Rand, n, fanIn int) []float64 {
	scale := 1 / math.Sqrt(float64(fanIn))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * scale
	}

	return out
}
