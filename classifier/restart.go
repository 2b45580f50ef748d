package classifier

import (
	"context"
	"fmt"

	"github.com/katalvlaran/esmr/series"
)

// RestartFactor scales the learning rate after a Diverged or Oscillating run.
const RestartFactor = 0.5

// FitWithRestarts trains a classifier and, while the run ends in a Retry
// state, multiplies the learning rate by RestartFactor and trains again from
// fresh weights and optimizer state. At most maxRestarts extra attempts are
// made. When they are used up the last classifier and summary are returned
// together with ErrRestartsExhausted.
//
// Summary.Restarts reports the halvings performed.
func FitWithRestarts(ctx context.Context, ds series.Dataset, maxRestarts int, opts ...Option) (*Classifier, Summary, error) {
	if maxRestarts < 0 {
		return nil, Summary{}, fmt.Errorf("%w: max restarts cannot be negative (%d)", ErrOptionViolation, maxRestarts)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for attempt := 0; ; attempt++ {
		c, err := NewFromOptions(o)
		if err != nil {
			return nil, Summary{}, err
		}
		sum, err := c.Fit(ctx, ds)
		sum.Restarts = attempt
		if err != nil || !sum.State.Retry() {
			return c, sum, err
		}
		if attempt == maxRestarts {
			return c, sum, fmt.Errorf("%w: %d attempts, last state %s", ErrRestartsExhausted, attempt+1, sum.State)
		}

		o.Eta *= RestartFactor
		if o.Verbosity > 0 {
			fmt.Fprintf(c.opts.Log, "[ESMR] %s: learning rate decreased to %g\n", sum.State, o.Eta)
		}
	}
}
