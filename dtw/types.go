package dtw

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrEmptySequence indicates one or both inputs are empty.
	ErrEmptySequence = errors.New("dtw: input sequences must be non-empty")

	// ErrBadInput indicates an invalid option value.
	ErrBadInput = errors.New("dtw: invalid option")
)

// Options configures the distance.
//
// Fields:
//   - Window       — maximum deviation |i-j| (Sakoe–Chiba band); 0 disables it.
//   - SlopePenalty — added to every insertion/deletion step, ≥ 0.
//   - Workers      — NearestNeighbor scoring goroutines; ≤ 1 is sequential.
type Options struct {
	Window       int
	SlopePenalty float64
	Workers      int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns an unconstrained, penalty-free, sequential setup.
func DefaultOptions() Options {
	return Options{}
}

// WithWindow sets the Sakoe–Chiba band.
func WithWindow(w int) Option {
	return func(o *Options) { o.Window = w }
}

// WithSlopePenalty sets the non-diagonal step penalty.
func WithSlopePenalty(p float64) Option {
	return func(o *Options) { o.SlopePenalty = p }
}

// WithWorkers bounds scoring parallelism.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

func (o Options) validate() error {
	switch {
	case o.Window < 0:
		return fmt.Errorf("%w: window cannot be negative (%d)", ErrBadInput, o.Window)
	case !(o.SlopePenalty >= 0):
		return fmt.Errorf("%w: slope penalty must be ≥ 0 (%v)", ErrBadInput, o.SlopePenalty)
	case o.Workers < 0:
		return fmt.Errorf("%w: workers cannot be negative (%d)", ErrBadInput, o.Workers)
	}

	return nil
}
