package dtw

import (
	"math"

	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/esmr/series"
)

// NearestNeighbor is a 1-NN classifier under DTW. It keeps a private copy
// of its training set and is safe for concurrent use.
type NearestNeighbor struct {
	train series.Set
	opts  Options
}

// NewNearestNeighbor validates train and opts.
func NewNearestNeighbor(train series.Dataset, opts ...Option) (*NearestNeighbor, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(train); err != nil {
		return nil, err
	}
	set := series.Collect(train)
	own := make(series.Set, len(set))
	for i, s := range set {
		own[i] = series.NewSequence(s.Values, s.Label)
	}

	return &NearestNeighbor{train: own, opts: o}, nil
}

// Predict returns the label of the closest training sequence; the first
// one wins ties. It returns -1 for an empty x.
func (nn *NearestNeighbor) Predict(x []float64) int {
	best, label := math.Inf(1), -1
	for _, s := range nn.train {
		d, err := Distance(x, s.Values, nn.opts)
		if err != nil {
			return -1
		}
		if d < best || label < 0 {
			best, label = d, s.Label
		}
	}

	return label
}

// Score returns the accuracy on ds.
func (nn *NearestNeighbor) Score(ds series.Dataset) float64 {
	if ds == nil || ds.Len() == 0 {
		return 0
	}
	n := ds.Len()
	hits := make([]float64, n)
	eval := func(i int) {
		s := ds.At(i)
		if nn.Predict(s.Values) == s.Label {
			hits[i] = 1
		}
	}

	if nn.opts.Workers <= 1 {
		for i := 0; i < n; i++ {
			eval(i)
		}
	} else {
		p := pool.New().WithMaxGoroutines(nn.opts.Workers)
		for i := 0; i < n; i++ {
			p.Go(func() { eval(i) })
		}
		p.Wait()
	}

	return floats.Sum(hits) / float64(n)
}
