package optimizer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rule is a stateful per-cell update rule.
type Rule struct {
	kind   Kind
	params Params
	shape  Shape
	first  []*mat.Dense // v (Momentum, AdaGrad, AdaDelta) or m (Adam)
	second []*mat.Dense // v (Adam only)
	update func(k Key, g float64) float64
}

// New builds a Rule of the given kind over shape with zeroed state.
//
// Validation:
//   - kind must be one of SGD..Adam (ErrUnknownKind)
//   - Eta > 0, Mu ≥ 0, Rho1/Rho2 ∈ [0,1), all finite (ErrBadParams)
//   - every Shape dimension > 0 (ErrBadShape)
//
// Complexity: O(Classes·Partitions·Rows·Cols) for state allocation.
func New(kind Kind, p Params, shape Shape) (*Rule, error) {
	if kind < SGD || kind > Adam {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if err := validateParams(p); err != nil {
		return nil, err
	}
	if shape.Classes <= 0 || shape.Partitions <= 0 || shape.Rows <= 0 || shape.Cols <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrBadShape, shape)
	}

	r := &Rule{kind: kind, params: p, shape: shape}
	if kind != SGD {
		r.first = zeros(shape)
	}
	if kind == Adam {
		r.second = zeros(shape)
	}
	r.update = r.bind()

	return r, nil
}

// Kind returns the rule kind.
func (r *Rule) Kind() Kind { return r.kind }

// Params returns the current hyper-parameters.
func (r *Rule) Params() Params { return r.params }

// Shape returns the addressable cell space.
func (r *Rule) Shape() Shape { return r.shape }

// Step consumes gradient g for cell k and returns the amount to subtract
// from that cell. It panics if k lies outside the rule's Shape.
func (r *Rule) Step(k Key, g float64) float64 {
	return r.update(k, g)
}

// SetEta replaces the learning rate, keeping accumulated state.
func (r *Rule) SetEta(eta float64) error {
	p := r.params
	p.Eta = eta
	if err := validateParams(p); err != nil {
		return err
	}
	r.params = p
	r.update = r.bind()

	return nil
}

// Reset zeroes every state buffer.
func (r *Rule) Reset() {
	for _, m := range r.first {
		m.Zero()
	}
	for _, m := range r.second {
		m.Zero()
	}
}

// bind returns the update closure for the rule's kind.
func (r *Rule) bind() func(Key, float64) float64 {
	eta, mu, rho1, rho2 := r.params.Eta, r.params.Mu, r.params.Rho1, r.params.Rho2
	switch r.kind {
	case Momentum:
		return func(k Key, g float64) float64 {
			m := r.first[r.index(k)]
			v := mu*m.At(k.Row, k.Col) - eta*g
			m.Set(k.Row, k.Col, v)

			return -v
		}
	case AdaGrad:
		return func(k Key, g float64) float64 {
			m := r.first[r.index(k)]
			v := m.At(k.Row, k.Col) + g*g
			m.Set(k.Row, k.Col, v)

			return eta * g / (math.Sqrt(v) + Epsilon)
		}
	case AdaDelta:
		return func(k Key, g float64) float64 {
			m := r.first[r.index(k)]
			v := rho1*m.At(k.Row, k.Col) + (1-rho1)*g*g
			m.Set(k.Row, k.Col, v)

			return eta * g / (math.Sqrt(v) + Epsilon)
		}
	case Adam:
		return func(k Key, g float64) float64 {
			idx := r.index(k)
			fm, sm := r.first[idx], r.second[idx]
			m := rho1*fm.At(k.Row, k.Col) + (1-rho1)*g
			v := rho2*sm.At(k.Row, k.Col) + (1-rho2)*g*g
			fm.Set(k.Row, k.Col, m)
			sm.Set(k.Row, k.Col, v)
			mHat := m / (1 - rho1)
			vHat := v / (1 - rho2)

			return eta * mHat / (math.Sqrt(vHat) + Epsilon)
		}
	default:
		return func(_ Key, g float64) float64 { return eta * g }
	}
}

// index maps (class, partition) to the state slot, panicking when out of range.
func (r *Rule) index(k Key) int {
	if k.Class < 0 || k.Class >= r.shape.Classes || k.Partition < 0 || k.Partition >= r.shape.Partitions {
		panic(fmt.Sprintf("optimizer: key %+v outside shape %+v", k, r.shape))
	}

	return k.Class*r.shape.Partitions + k.Partition
}

// zeros allocates one Rows×Cols matrix per (class, partition).
func zeros(s Shape) []*mat.Dense {
	out := make([]*mat.Dense, s.Classes*s.Partitions)
	for i := range out {
		out[i] = mat.NewDense(s.Rows, s.Cols, nil)
	}

	return out
}

// validateParams checks hyper-parameter ranges.
func validateParams(p Params) error {
	for _, v := range []float64{p.Eta, p.Mu, p.Rho1, p.Rho2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrBadParams, p)
		}
	}
	switch {
	case p.Eta <= 0:
		return fmt.Errorf("%w: eta must be > 0, got %g", ErrBadParams, p.Eta)
	case p.Mu < 0:
		return fmt.Errorf("%w: mu must be ≥ 0, got %g", ErrBadParams, p.Mu)
	case p.Rho1 < 0 || p.Rho1 >= 1:
		return fmt.Errorf("%w: rho1 must be in [0,1), got %g", ErrBadParams, p.Rho1)
	case p.Rho2 < 0 || p.Rho2 >= 1:
		return fmt.Errorf("%w: rho2 must be in [0,1), got %g", ErrBadParams, p.Rho2)
	}

	return nil
}
