package optimizer

import (
	"errors"
	"fmt"
	"strings"
)

// Epsilon keeps adaptive denominators away from zero.
const Epsilon = 1e-7

// Defaults mirror the reference hyper-parameters of the elastic classifiers.
const (
	DefaultEta  = 0.001
	DefaultMu   = 0.5
	DefaultRho1 = 0.9
	DefaultRho2 = 0.95
)

// Sentinel errors.
var (
	// ErrUnknownKind is returned for a Kind outside the five supported rules.
	ErrUnknownKind = errors.New("optimizer: unknown update rule")

	// ErrBadParams is returned for non-finite or out-of-range hyper-parameters.
	ErrBadParams = errors.New("optimizer: invalid hyper-parameters")

	// ErrBadShape is returned when any Shape dimension is not positive.
	ErrBadShape = errors.New("optimizer: invalid state shape")
)

// Kind selects an update rule.
type Kind int

const (
	// SGD is plain stochastic gradient descent.
	SGD Kind = iota
	// Momentum is SGD with a velocity buffer.
	Momentum
	// AdaGrad accumulates squared gradients.
	AdaGrad
	// AdaDelta keeps a decaying average of squared gradients.
	AdaDelta
	// Adam keeps decaying first and second moments.
	Adam
)

var kindNames = [...]string{"sgd", "momentum", "adagrad", "adadelta", "adam"}

// String returns the lower-case rule name.
func (k Kind) String() string {
	if k < SGD || k > Adam {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind resolves a rule name (case-insensitive) to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Params holds the rule hyper-parameters. Fields a rule does not use are ignored.
type Params struct {
	Eta  float64 // learning rate, > 0
	Mu   float64 // momentum, ≥ 0
	Rho1 float64 // first decay rate, ∈ [0,1)
	Rho2 float64 // second decay rate, ∈ [0,1)
}

// DefaultParams returns the default hyper-parameters.
func DefaultParams() Params {
	return Params{Eta: DefaultEta, Mu: DefaultMu, Rho1: DefaultRho1, Rho2: DefaultRho2}
}

// Shape is the addressable cell space of a Rule.
type Shape struct {
	Classes    int
	Partitions int
	Rows       int
	Cols       int
}

// Key addresses one cell inside a Shape.
type Key struct {
	Class, Partition, Row, Col int
}
