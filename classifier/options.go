package classifier

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/esmr/monitor"
	"github.com/katalvlaran/esmr/optimizer"
	"github.com/katalvlaran/esmr/series"
)

// Training defaults.
const (
	DefaultElasticity = 3
	DefaultPartitions = 1
	DefaultLambda     = 0.0
	DefaultMaxEpochs  = 1000
	DefaultMaxStable  = 1000
)

// Option configures a Classifier via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds every hyper-parameter and callback of a training run.
type Options struct {
	// Variant picks the kernel and bias default.
	Variant Variant

	// Optimizer is the per-cell update rule for templates and bias.
	Optimizer optimizer.Kind

	// Elasticity is the template column count e (> 0).
	Elasticity int

	// Partitions is the template count per class for MinMax (> 0).
	// Other variants always use a single template.
	Partitions int

	// Eta, Mu, Rho1, Rho2 are the optimizer hyper-parameters.
	Eta, Mu, Rho1, Rho2 float64

	// Lambda scales the Regularizer derivative (≥ 0).
	Lambda float64

	// Regularizer selects the weight-decay penalty.
	Regularizer Regularizer

	// Bias overrides the variant's bias default.
	Bias BiasMode

	// MaxEpochs is the epoch budget T (> 0).
	MaxEpochs int

	// MaxStable is the count S of non-improving epochs before the monitor
	// declares convergence (≥ 0).
	MaxStable int

	// HistoryCapacity sizes the monitor ring buffer (> 0).
	HistoryCapacity int

	// Seed drives initialization and shuffling; 0 selects a fixed default.
	Seed int64

	// Workers bounds the goroutines used by evaluation passes. Values ≤ 1
	// evaluate sequentially.
	Workers int

	// Validation, if non-nil, is scored after every epoch.
	Validation series.Dataset

	// Verbosity > 0 prints one line per epoch to Log.
	Verbosity int
	Log       io.Writer

	// OnEpoch runs after every epoch. Returning an error stops training,
	// restores the best snapshot and propagates the error from Fit.
	OnEpoch func(EpochReport) error

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the classic defaults:
//   - ElasticSum, SGD, e = 3, p = 1
//   - η = 0.001, μ = 0.5, ρ1 = 0.9, ρ2 = 0.95, λ = 0, L2 penalty
//   - T = 1000, S = 1000, history of 30 samples
//   - quiet, sequential evaluation, seed 0 (fixed default stream)
func DefaultOptions() Options {
	p := optimizer.DefaultParams()

	return Options{
		Variant:         ElasticSum,
		Optimizer:       optimizer.SGD,
		Elasticity:      DefaultElasticity,
		Partitions:      DefaultPartitions,
		Eta:             p.Eta,
		Mu:              p.Mu,
		Rho1:            p.Rho1,
		Rho2:            p.Rho2,
		Lambda:          DefaultLambda,
		Regularizer:     L2,
		Bias:            BiasAuto,
		MaxEpochs:       DefaultMaxEpochs,
		MaxStable:       DefaultMaxStable,
		HistoryCapacity: monitor.DefaultCapacity,
		Log:             os.Stdout,
		OnEpoch:         func(EpochReport) error { return nil },
	}
}

// WithVariant selects the classifier variant.
func WithVariant(v Variant) Option {
	return func(o *Options) { o.Variant = v }
}

// WithOptimizer selects the update rule.
func WithOptimizer(k optimizer.Kind) Option {
	return func(o *Options) { o.Optimizer = k }
}

// WithElasticity sets the template column count (> 0).
func WithElasticity(e int) Option {
	return func(o *Options) {
		if e <= 0 {
			o.err = fmt.Errorf("%w: elasticity must be positive (%d)", ErrOptionViolation, e)
			return
		}
		o.Elasticity = e
	}
}

// WithPartitions sets the MinMax partition count (> 0).
func WithPartitions(p int) Option {
	return func(o *Options) {
		if p <= 0 {
			o.err = fmt.Errorf("%w: partitions must be positive (%d)", ErrOptionViolation, p)
			return
		}
		o.Partitions = p
	}
}

// WithLearningRate sets η (> 0).
func WithLearningRate(eta float64) Option {
	return func(o *Options) { o.Eta = eta }
}

// WithMomentum sets μ (≥ 0).
func WithMomentum(mu float64) Option {
	return func(o *Options) { o.Mu = mu }
}

// WithDecayRates sets ρ1 and ρ2, both in [0,1).
func WithDecayRates(rho1, rho2 float64) Option {
	return func(o *Options) {
		o.Rho1 = rho1
		o.Rho2 = rho2
	}
}

// WithWeightDecay sets λ (≥ 0).
func WithWeightDecay(lambda float64) Option {
	return func(o *Options) { o.Lambda = lambda }
}

// WithRegularizer selects the weight-decay penalty.
func WithRegularizer(r Regularizer) Option {
	return func(o *Options) { o.Regularizer = r }
}

// WithBias forces the bias term on or off regardless of variant.
func WithBias(on bool) Option {
	return func(o *Options) {
		if on {
			o.Bias = BiasOn
		} else {
			o.Bias = BiasOff
		}
	}
}

// WithMaxEpochs sets the epoch budget T (> 0).
func WithMaxEpochs(t int) Option {
	return func(o *Options) {
		if t <= 0 {
			o.err = fmt.Errorf("%w: max epochs must be positive (%d)", ErrOptionViolation, t)
			return
		}
		o.MaxEpochs = t
	}
}

// WithMaxStable sets the non-improvement limit S (≥ 0).
func WithMaxStable(s int) Option {
	return func(o *Options) {
		if s < 0 {
			o.err = fmt.Errorf("%w: max stable cannot be negative (%d)", ErrOptionViolation, s)
			return
		}
		o.MaxStable = s
	}
}

// WithHistoryCapacity sizes the monitor ring buffer (> 0).
func WithHistoryCapacity(n int) Option {
	return func(o *Options) { o.HistoryCapacity = n }
}

// WithSeed fixes the random stream used for initialization and shuffling.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers bounds evaluation parallelism.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithValidation scores ds after every epoch.
func WithValidation(ds series.Dataset) Option {
	return func(o *Options) { o.Validation = ds }
}

// WithVerbosity sets the progress level; > 0 prints per-epoch lines.
func WithVerbosity(level int) Option {
	return func(o *Options) { o.Verbosity = level }
}

// WithLogWriter redirects progress lines.
func WithLogWriter(w io.Writer) Option {
	return func(o *Options) {
		if w != nil {
			o.Log = w
		}
	}
}

// WithOnEpoch registers the per-epoch hook.
func WithOnEpoch(fn func(EpochReport) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEpoch = fn
		}
	}
}

// validate checks every field; the first violation wins.
func (o Options) validate() error {
	if o.err != nil {
		return o.err
	}

	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	switch {
	case o.Variant < ElasticSum || o.Variant > MinMax:
		return fmt.Errorf("%w: unknown variant %d", ErrOptionViolation, int(o.Variant))
	case o.Optimizer < optimizer.SGD || o.Optimizer > optimizer.Adam:
		return fmt.Errorf("%w: unknown optimizer %d", ErrOptionViolation, int(o.Optimizer))
	case o.Regularizer < L2 || o.Regularizer > NoRegularizer:
		return fmt.Errorf("%w: unknown regularizer %d", ErrOptionViolation, int(o.Regularizer))
	case o.Bias < BiasAuto || o.Bias > BiasOff:
		return fmt.Errorf("%w: unknown bias mode %d", ErrOptionViolation, int(o.Bias))
	case o.Elasticity <= 0:
		return fmt.Errorf("%w: elasticity must be positive (%d)", ErrOptionViolation, o.Elasticity)
	case o.Partitions <= 0:
		return fmt.Errorf("%w: partitions must be positive (%d)", ErrOptionViolation, o.Partitions)
	case !finite(o.Eta) || o.Eta <= 0:
		return fmt.Errorf("%w: learning rate must be positive (%v)", ErrOptionViolation, o.Eta)
	case !finite(o.Mu) || o.Mu < 0:
		return fmt.Errorf("%w: momentum cannot be negative (%v)", ErrOptionViolation, o.Mu)
	case !finite(o.Lambda) || o.Lambda < 0:
		return fmt.Errorf("%w: weight decay cannot be negative (%v)", ErrOptionViolation, o.Lambda)
	case !(o.Rho1 >= 0 && o.Rho1 < 1):
		return fmt.Errorf("%w: rho1 must lie in [0,1) (%v)", ErrOptionViolation, o.Rho1)
	case !(o.Rho2 >= 0 && o.Rho2 < 1):
		return fmt.Errorf("%w: rho2 must lie in [0,1) (%v)", ErrOptionViolation, o.Rho2)
	case o.MaxEpochs <= 0:
		return fmt.Errorf("%w: max epochs must be positive (%d)", ErrOptionViolation, o.MaxEpochs)
	case o.MaxStable < 0:
		return fmt.Errorf("%w: max stable cannot be negative (%d)", ErrOptionViolation, o.MaxStable)
	case o.HistoryCapacity <= 0:
		return fmt.Errorf("%w: history capacity must be positive (%d)", ErrOptionViolation, o.HistoryCapacity)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers cannot be negative (%d)", ErrOptionViolation, o.Workers)
	}

	return nil
}

// useBias resolves the bias mode against the variant.
func (o Options) useBias() bool {
	switch o.Bias {
	case BiasOn:
		return true
	case BiasOff:
		return false
	default:
		return o.Variant.defaultBias()
	}
}

// partitions returns the effective template count per class.
func (o Options) partitions() int {
	if o.Variant == MinMax {
		return o.Partitions
	}

	return 1
}

// params returns the optimizer view of the options.
func (o Options) params() optimizer.Params {
	return optimizer.Params{Eta: o.Eta, Mu: o.Mu, Rho1: o.Rho1, Rho2: o.Rho2}
}
