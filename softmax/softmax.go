// Package softmax is the output layer of the elastic classifiers: it turns
// per-class alignment scores into probabilities, a cross-entropy loss, the
// gradient with respect to the scores, and a prediction.
//
// All functions subtract max(a) before exponentiating, so large scores do not
// overflow. Every function is pure and allocation-light; callers may pass the
// same score slice to several of them.
package softmax

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Apply returns the softmax of a: exp(a[i]-max) / Σ exp(a[k]-max).
// An empty input yields an empty output.
//
// Complexity: O(len(a)).
func Apply(a []float64) []float64 {
	z := make([]float64, len(a))
	if len(a) == 0 {
		return z
	}
	max := floats.Max(a)
	for i, v := range a {
		z[i] = math.Exp(v - max)
	}
	floats.Scale(1/floats.Sum(z), z)

	return z
}

// Predict returns the index of the largest score, the first one on ties,
// and -1 for an empty input.
func Predict(a []float64) int {
	if len(a) == 0 {
		return -1
	}

	return floats.MaxIdx(a)
}

// Loss returns the negative log-likelihood of class y under softmax(a),
// computed as logΣexp(a) − a[y] with the max-shift applied inside LogSumExp.
// It returns +Inf when y is out of range.
func Loss(a []float64, y int) float64 {
	if y < 0 || y >= len(a) {
		return math.Inf(1)
	}

	return floats.LogSumExp(a) - a[y]
}

// Derivative returns ∂Loss/∂a given z = Apply(a): z − onehot(y).
func Derivative(z []float64, y int) []float64 {
	d := make([]float64, len(z))
	copy(d, z)
	if y >= 0 && y < len(d) {
		d[y]--
	}

	return d
}
