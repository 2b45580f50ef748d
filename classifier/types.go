package classifier

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/esmr/align"
	"github.com/katalvlaran/esmr/monitor"
)

// Sentinel errors.
var (
	// ErrOptionViolation is returned by New when an option is out of range.
	ErrOptionViolation = errors.New("classifier: invalid option supplied")

	// ErrInvalidDataset wraps series.Validate failures in Fit.
	ErrInvalidDataset = errors.New("classifier: invalid training set")

	// ErrRestartsExhausted is returned by FitWithRestarts when every attempt
	// ended Diverged or Oscillating.
	ErrRestartsExhausted = errors.New("classifier: learning-rate restarts exhausted")
)

// Variant selects the alignment kernel and whether a bias term is learned.
type Variant int

const (
	// ElasticSum aligns one template per class and adds a bias scalar.
	ElasticSum Variant = iota
	// ElasticMax aligns one template per class without bias.
	ElasticMax
	// MinMax takes the minimum alignment over several partition templates.
	MinMax
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case ElasticSum:
		return "elastic-sum"
	case ElasticMax:
		return "elastic-max"
	case MinMax:
		return "min-max"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Kernel returns the alignment strategy of the variant.
func (v Variant) Kernel() align.Kernel {
	if v == MinMax {
		return align.MinMaxKernel{}
	}

	return align.ElasticKernel{}
}

// defaultBias reports whether the variant learns a bias unless overridden.
func (v Variant) defaultBias() bool { return v == ElasticSum }

// Regularizer selects the weight-decay penalty whose derivative is added to
// every path gradient, scaled by the weight-decay factor λ.
type Regularizer int

const (
	// L2 adds λ·w.
	L2 Regularizer = iota
	// L1 adds λ·sign(w).
	L1
	// NoRegularizer adds nothing regardless of λ.
	NoRegularizer
)

// Derivative returns the penalty derivative at w.
func (r Regularizer) Derivative(w float64) float64 {
	switch r {
	case L1:
		switch {
		case w > 0:
			return 1
		case w < 0:
			return -1
		}
		return 0
	case NoRegularizer:
		return 0
	default:
		return w
	}
}

// String returns the regularizer name.
func (r Regularizer) String() string {
	switch r {
	case L2:
		return "l2"
	case L1:
		return "l1"
	case NoRegularizer:
		return "none"
	default:
		return fmt.Sprintf("regularizer(%d)", int(r))
	}
}

// BiasMode overrides the variant's bias default.
type BiasMode int

const (
	// BiasAuto learns a bias only for ElasticSum.
	BiasAuto BiasMode = iota
	// BiasOn always learns a bias.
	BiasOn
	// BiasOff never learns a bias.
	BiasOff
)

// EpochReport is passed to the OnEpoch hook after every epoch.
type EpochReport struct {
	Epoch    int
	Acc      float64 // training accuracy after the epoch
	Loss     float64 // mean training loss after the epoch
	MaxAcc   float64
	MinLoss  float64
	ValAcc   float64 // validation accuracy, valid when HasVal
	HasVal   bool
	Improved bool // this epoch produced the new best snapshot
	State    monitor.State
}

// Summary describes a finished training run.
//
// Fields:
//   - State     — final monitor state (Retry() ⇒ use a smaller learning rate)
//   - Epochs    — number of epochs run
//   - MaxAcc    — best training accuracy observed
//   - MinLoss   — best training loss observed (the restored snapshot)
//   - LastAcc, LastLoss — measurements of the final epoch
//   - ValAcc    — validation accuracy of the restored model, valid when HasVal
//   - Eta       — learning rate of this run
//   - Restarts  — learning-rate halvings performed (FitWithRestarts only)
type Summary struct {
	State    monitor.State
	Epochs   int
	MaxAcc   float64
	MinLoss  float64
	LastAcc  float64
	LastLoss float64
	ValAcc   float64
	HasVal   bool
	Eta      float64
	Restarts int
}
