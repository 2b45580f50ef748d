package align

import "gonum.org/v1/gonum/mat"

// ElasticKernel aligns against the first template of a class.
type ElasticKernel struct{}

// MinMaxKernel aligns against all partitions of a class and keeps the minimum.
type MinMaxKernel struct{}

var (
	_ Kernel = ElasticKernel{}
	_ Kernel = MinMaxKernel{}
)

// Align implements Kernel.
func (ElasticKernel) Align(x []float64, parts []*mat.Dense) Result {
	if len(parts) == 0 {
		return Result{}
	}

	return Elastic(x, parts[0])
}

// Score implements Kernel.
func (ElasticKernel) Score(x []float64, parts []*mat.Dense) float64 {
	if len(parts) == 0 {
		return 0
	}

	return ElasticScore(x, parts[0])
}

// Align implements Kernel.
func (MinMaxKernel) Align(x []float64, parts []*mat.Dense) Result {
	return MinMax(x, parts)
}

// Score implements Kernel.
func (MinMaxKernel) Score(x []float64, parts []*mat.Dense) float64 {
	return MinMaxScore(x, parts)
}
