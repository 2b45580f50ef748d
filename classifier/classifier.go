package classifier

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/katalvlaran/esmr/align"
	"github.com/katalvlaran/esmr/monitor"
	"github.com/katalvlaran/esmr/optimizer"
	"github.com/katalvlaran/esmr/series"
	"github.com/katalvlaran/esmr/softmax"
	"gonum.org/v1/gonum/mat"
)

// Classifier is an elastic softmax model. The zero value is not usable;
// construct with New or NewFromOptions.
type Classifier struct {
	opts    Options
	kernel  align.Kernel
	classes int
	rows    int
	weights [][]*mat.Dense // [class][partition], rows×Elasticity
	bias    []float64      // nil when the variant learns no bias
	wRule   *optimizer.Rule
	bRule   *optimizer.Rule
	rng     *rand.Rand
}

// snapshot is a deep copy of the learned parameters.
type snapshot struct {
	weights [][]*mat.Dense
	bias    []float64
}

// New applies opts over DefaultOptions and validates the result eagerly.
// Invalid values are reported as ErrOptionViolation.
func New(opts ...Option) (*Classifier, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return NewFromOptions(o)
}

// NewFromOptions validates o and returns an untrained Classifier.
func NewFromOptions(o Options) (*Classifier, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.Log == nil {
		o.Log = io.Discard
	}
	if o.OnEpoch == nil {
		o.OnEpoch = func(EpochReport) error { return nil }
	}

	return &Classifier{opts: o, kernel: o.Variant.Kernel()}, nil
}

// Options returns the configuration the classifier was built with.
func (c *Classifier) Options() Options { return c.opts }

// Classes returns the number of classes learned by the last Fit.
func (c *Classifier) Classes() int { return c.classes }

// Fit trains on ds from freshly initialized weights and returns a Summary.
// The weights with the lowest training loss seen are restored before Fit
// returns, including when ctx is cancelled or OnEpoch fails.
//
// Steps:
//  1. series.Validate(ds), wrapped in ErrInvalidDataset.
//  2. Re-seed the RNG; draw every template cell (and bias) from
//     N(0,1)/sqrt(maxLength); zero the optimizer state.
//  3. Per epoch: shuffle, train every example, evaluate, update the monitor.
//  4. Stop when the monitor leaves Decreasing or MaxEpochs is reached.
//
// Complexity: O(T·N·K·P·n·e) time for T epochs, N examples, K classes,
// P partitions. Memory O(K·P·n·e) for weights, state and one snapshot.
func (c *Classifier) Fit(ctx context.Context, ds series.Dataset) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := series.Validate(ds); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	set := series.Collect(ds)
	if err := c.setup(set.NumLabels(), set.MaxLength()); err != nil {
		return Summary{}, err
	}

	o := c.opts
	mon := monitor.New(o.MaxStable, monitor.WithCapacity(o.HistoryCapacity))
	best := c.snapshot()
	sum := Summary{Eta: o.Eta}

	order := identity(set.Len())
	res := make([]align.Result, c.classes)
	a := make([]float64, c.classes)

	for t := 1; t <= o.MaxEpochs && mon.Proceed(); t++ {
		shuffleInPlace(order, c.rng)
		for _, idx := range order {
			if err := ctx.Err(); err != nil {
				c.restore(best)
				return c.finish(sum, mon), err
			}
			c.trainExample(set[idx].Values, set[idx].Label, res, a)
		}

		acc, loss := c.Evaluate(set)
		state := mon.Update(acc, loss, t)
		sum.Epochs, sum.LastAcc, sum.LastLoss = t, acc, loss
		if mon.Improved() {
			best = c.snapshot()
		}

		rep := EpochReport{
			Epoch:    t,
			Acc:      acc,
			Loss:     loss,
			MaxAcc:   mon.MaxAcc(),
			MinLoss:  mon.MinLoss(),
			Improved: mon.Improved(),
			State:    state,
		}
		if o.Validation != nil {
			rep.ValAcc, rep.HasVal = c.Score(o.Validation), true
		}
		if o.Verbosity > 0 {
			c.logEpoch(rep)
		}
		if err := o.OnEpoch(rep); err != nil {
			c.restore(best)
			return c.finish(sum, mon), err
		}
	}

	c.restore(best)

	return c.finish(sum, mon), nil
}

// setup allocates weights, bias and optimizer state for a new run.
func (c *Classifier) setup(classes, rows int) error {
	o := c.opts
	parts := o.partitions()

	c.rng = rngFromSeed(o.Seed)
	c.classes, c.rows = classes, rows
	c.weights = make([][]*mat.Dense, classes)
	for j := range c.weights {
		c.weights[j] = make([]*mat.Dense, parts)
		for p := range c.weights[j] {
			c.weights[j][p] = gaussianDense(c.rng, rows, o.Elasticity, rows)
		}
	}

	c.bias, c.bRule = nil, nil
	if o.useBias() {
		c.bias = gaussianSlice(c.rng, classes, rows)
	}

	var err error
	shape := optimizer.Shape{Classes: classes, Partitions: parts, Rows: rows, Cols: o.Elasticity}
	if c.wRule, err = optimizer.New(o.Optimizer, o.params(), shape); err != nil {
		return fmt.Errorf("%w: %w", ErrOptionViolation, err)
	}
	if c.bias != nil {
		shape = optimizer.Shape{Classes: classes, Partitions: 1, Rows: 1, Cols: 1}
		if c.bRule, err = optimizer.New(o.Optimizer, o.params(), shape); err != nil {
			return fmt.Errorf("%w: %w", ErrOptionViolation, err)
		}
	}

	return nil
}

// trainExample performs one stochastic update for (x, y). res and a are
// caller-owned scratch of length classes.
func (c *Classifier) trainExample(x []float64, y int, res []align.Result, a []float64) {
	for j := 0; j < c.classes; j++ {
		res[j] = c.kernel.Align(x, c.weights[j])
		a[j] = res[j].Similarity
		if c.bias != nil {
			a[j] += c.bias[j]
		}
	}
	delta := softmax.Derivative(softmax.Apply(a), y)

	lambda, reg := c.opts.Lambda, c.opts.Regularizer
	for j := 0; j < c.classes; j++ {
		p := res[j].Partition
		w := c.weights[j][p]
		for _, cell := range res[j].Path {
			v := w.At(cell.I, cell.J)
			g := delta[j]*x[cell.I] + lambda*reg.Derivative(v)
			k := optimizer.Key{Class: j, Partition: p, Row: cell.I, Col: cell.J}
			w.Set(cell.I, cell.J, v-c.wRule.Step(k, g))
		}
		if c.bias != nil {
			c.bias[j] -= c.bRule.Step(optimizer.Key{Class: j}, delta[j])
		}
	}
}

func (c *Classifier) snapshot() snapshot {
	s := snapshot{weights: make([][]*mat.Dense, len(c.weights))}
	for j, parts := range c.weights {
		s.weights[j] = make([]*mat.Dense, len(parts))
		for p, w := range parts {
			s.weights[j][p] = mat.DenseCopyOf(w)
		}
	}
	if c.bias != nil {
		s.bias = append([]float64(nil), c.bias...)
	}

	return s
}

// restore takes ownership of s.
func (c *Classifier) restore(s snapshot) {
	c.weights, c.bias = s.weights, s.bias
}

func (c *Classifier) finish(sum Summary, mon *monitor.Monitor) Summary {
	sum.State = mon.State()
	sum.MaxAcc = mon.MaxAcc()
	sum.MinLoss = mon.MinLoss()
	if c.opts.Validation != nil {
		sum.ValAcc, sum.HasVal = c.Score(c.opts.Validation), true
	}

	return sum
}

func (c *Classifier) logEpoch(r EpochReport) {
	fmt.Fprintf(c.opts.Log, "[ESMR] %5d  loss = %7.5f (%7.5f)  train = %1.3f (%1.3f)",
		r.Epoch, r.Loss, r.MinLoss, r.Acc, r.MaxAcc)
	if r.HasVal {
		fmt.Fprintf(c.opts.Log, "  val = %1.3f", r.ValAcc)
	}
	if c.opts.Verbosity > 1 {
		fmt.Fprintf(c.opts.Log, "  [%s]", r.State)
	}
	fmt.Fprintln(c.opts.Log)
}
