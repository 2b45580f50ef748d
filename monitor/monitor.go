package monitor

import (
	"math"
)

// Monitor is the per-run convergence state machine. It is not safe for
// concurrent use.
type Monitor struct {
	state     State
	improved  bool
	maxAcc    float64
	minLoss   float64
	numStable int
	maxStable int

	ring  []Sample
	next  int
	count int
}

// New returns a Monitor that declares convergence after maxStable epochs
// without a new minimum loss.
func New(maxStable int, opts ...Option) *Monitor {
	m := &Monitor{
		state:     Decreasing,
		minLoss:   math.Inf(1),
		maxStable: maxStable,
		ring:      make([]Sample, DefaultCapacity),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Update records one epoch and returns the new state.
//
// Complexity: O(1).
func (m *Monitor) Update(acc, loss float64, epoch int) State {
	m.improved = false
	m.push(Sample{Epoch: epoch, Acc: acc, Loss: loss})

	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		m.state = Diverged
		return m.state
	}
	if loss < m.minLoss {
		m.minLoss = loss
		m.numStable = 0
		m.improved = true
	} else {
		m.numStable++
	}
	if acc > m.maxAcc {
		m.maxAcc = acc
	}

	ratio := float64(m.numStable) / float64(epoch)
	switch {
	case oscFirstEpoch <= epoch && epoch <= oscLastEpoch && ratio > oscRatio:
		m.state = Oscillating
	case m.maxAcc >= 1.0 || m.numStable >= m.maxStable:
		m.state = Converged
	default:
		m.state = Decreasing
	}

	return m.state
}

// State returns the current state.
func (m *Monitor) State() State { return m.state }

// Proceed reports whether training should run another epoch.
func (m *Monitor) Proceed() bool { return m.state == Decreasing }

// Improved reports whether the last Update set a new minimum loss.
func (m *Monitor) Improved() bool { return m.improved }

// MaxAcc returns the best accuracy seen.
func (m *Monitor) MaxAcc() float64 { return m.maxAcc }

// MinLoss returns the best finite loss seen (+Inf before the first one).
func (m *Monitor) MinLoss() float64 { return m.minLoss }

// NumStable returns the number of epochs since the loss last improved.
func (m *Monitor) NumStable() int { return m.numStable }

// Last returns the most recent sample; ok is false before the first Update.
func (m *Monitor) Last() (s Sample, ok bool) {
	if m.count == 0 {
		return Sample{}, false
	}
	i := m.next - 1
	if i < 0 {
		i = len(m.ring) - 1
	}

	return m.ring[i], true
}

// History returns the retained samples, oldest first.
func (m *Monitor) History() []Sample {
	out := make([]Sample, 0, m.count)
	start := m.next - m.count
	if start < 0 {
		start += len(m.ring)
	}
	for k := 0; k < m.count; k++ {
		out = append(out, m.ring[(start+k)%len(m.ring)])
	}

	return out
}

// MeanOscillation returns the mean absolute accuracy change between
// consecutive retained samples (0 with fewer than two samples).
func (m *Monitor) MeanOscillation() float64 {
	h := m.History()
	if len(h) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(h); i++ {
		sum += math.Abs(h[i].Acc - h[i-1].Acc)
	}

	return sum / float64(len(h)-1)
}

// MeanDifference returns the mean gap between the best accuracy and each
// retained sample's accuracy.
func (m *Monitor) MeanDifference() float64 {
	h := m.History()
	if len(h) == 0 {
		return 0
	}
	var sum float64
	for _, s := range h {
		sum += math.Abs(m.maxAcc - s.Acc)
	}

	return sum / float64(len(h))
}

// push appends s to the ring, overwriting the oldest sample when full.
func (m *Monitor) push(s Sample) {
	m.ring[m.next] = s
	m.next = (m.next + 1) % len(m.ring)
	if m.count < len(m.ring) {
		m.count++
	}
}
