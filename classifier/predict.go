package classifier

import (
	"github.com/katalvlaran/esmr/series"
	"github.com/katalvlaran/esmr/softmax"
	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Scores returns the raw class scores of x: alignment similarity plus bias.
// Inputs longer than the templates are aligned against zero-extended
// copies. It returns an empty slice before the first Fit.
func (c *Classifier) Scores(x []float64) []float64 {
	a := make([]float64, c.classes)
	for j := range a {
		a[j] = c.kernel.Score(x, c.weights[j])
		if c.bias != nil {
			a[j] += c.bias[j]
		}
	}

	return a
}

// Probabilities returns softmax(Scores(x)).
func (c *Classifier) Probabilities(x []float64) []float64 {
	return softmax.Apply(c.Scores(x))
}

// Predict returns the class with the highest score; ties resolve to the
// lowest index. It returns -1 before the first Fit.
func (c *Classifier) Predict(x []float64) int {
	return softmax.Predict(c.Scores(x))
}

// Score returns the accuracy on ds.
func (c *Classifier) Score(ds series.Dataset) float64 {
	acc, _ := c.Evaluate(ds)
	return acc
}

// Evaluate returns accuracy and mean softmax loss over ds. With Workers > 1
// examples are scored concurrently; ds.At must then be safe for concurrent
// reads. The reduction runs in index order, so results do not depend on
// the worker count. An empty ds yields (0, 0).
func (c *Classifier) Evaluate(ds series.Dataset) (acc, loss float64) {
	if ds == nil || ds.Len() == 0 {
		return 0, 0
	}
	n := ds.Len()
	hits := make([]float64, n)
	losses := make([]float64, n)

	eval := func(i int) {
		s := ds.At(i)
		a := c.Scores(s.Values)
		if softmax.Predict(a) == s.Label {
			hits[i] = 1
		}
		losses[i] = softmax.Loss(a, s.Label)
	}

	if c.opts.Workers <= 1 {
		for i := 0; i < n; i++ {
			eval(i)
		}
	} else {
		p := pool.New().WithMaxGoroutines(c.opts.Workers)
		for i := 0; i < n; i++ {
			p.Go(func() { eval(i) })
		}
		p.Wait()
	}

	return floats.Sum(hits) / float64(n), floats.Sum(losses) / float64(n)
}

// Templates returns deep copies of the learned templates, indexed
// [class][partition]. It returns nil before the first Fit.
func (c *Classifier) Templates() [][]*mat.Dense {
	if c.weights == nil {
		return nil
	}
	out := make([][]*mat.Dense, len(c.weights))
	for j, parts := range c.weights {
		out[j] = make([]*mat.Dense, len(parts))
		for p, w := range parts {
			out[j][p] = mat.DenseCopyOf(w)
		}
	}

	return out
}

// Bias returns a copy of the bias vector, nil for bias-free variants.
func (c *Classifier) Bias() []float64 {
	if c.bias == nil {
		return nil
	}

	return append([]float64(nil), c.bias...)
}
