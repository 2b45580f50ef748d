package classifier

import (
	"github.com/katalvlaran/esmr/align"
	"github.com/katalvlaran/esmr/softmax"
	"gonum.org/v1/gonum/mat"
)

// Setup allocates fresh parameters as Fit does, without training.
func (c *Classifier) Setup(classes, rows int) error { return c.setup(classes, rows) }

// TrainExample runs one stochastic update.
func (c *Classifier) TrainExample(x []float64, y int) {
	c.trainExample(x, y, make([]align.Result, c.classes), make([]float64, c.classes))
}

// AlignAll aligns x against every class.
func (c *Classifier) AlignAll(x []float64) []align.Result {
	res := make([]align.Result, c.classes)
	for j := range res {
		res[j] = c.kernel.Align(x, c.weights[j])
	}

	return res
}

// LiveWeights exposes the weights without copying.
func (c *Classifier) LiveWeights() [][]*mat.Dense { return c.weights }

// LiveBias exposes the bias without copying.
func (c *Classifier) LiveBias() []float64 { return c.bias }

// ExampleLoss is the softmax loss of (x, y) under the current parameters.
func (c *Classifier) ExampleLoss(x []float64, y int) float64 {
	return softmax.Loss(c.Scores(x), y)
}
