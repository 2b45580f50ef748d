package monitor

import "fmt"

// DefaultCapacity is the number of samples kept in the history ring.
const DefaultCapacity = 30

// Oscillation window and threshold.
const (
	oscFirstEpoch = 20
	oscLastEpoch  = 100
	oscRatio      = 0.2
)

// State is the convergence state of a run.
type State int

const (
	// Diverged means the loss is NaN or infinite.
	Diverged State = -2
	// Oscillating means the loss stopped improving too often early in the run.
	Oscillating State = -1
	// Decreasing means training should continue.
	Decreasing State = 0
	// Converged means perfect accuracy or too many stable epochs.
	Converged State = 1
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Diverged:
		return "diverged"
	case Oscillating:
		return "oscillating"
	case Decreasing:
		return "decreasing"
	case Converged:
		return "converged"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Retry reports whether the run should be repeated with a smaller learning rate.
func (s State) Retry() bool { return s < 0 }

// Sample is one epoch's training measurement.
type Sample struct {
	Epoch int
	Acc   float64
	Loss  float64
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithCapacity sets the history ring size. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.ring = make([]Sample, n)
		}
	}
}
