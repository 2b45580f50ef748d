package monitor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/esmr/monitor"
)

// TestUpdate_NaNDiverges: a non-finite loss at epoch 1 is Diverged.
func TestUpdate_NaNDiverges(t *testing.T) {
	for _, loss := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := monitor.New(1000)
		assert.Equal(t, monitor.Diverged, m.Update(0.5, loss, 1))
		assert.False(t, m.Proceed())
		assert.False(t, m.Improved())
		assert.True(t, m.State().Retry())
		assert.True(t, math.IsInf(m.MinLoss(), 1), "non-finite loss must not become the minimum")
	}
}

// TestUpdate_DecreasingThenConverged: a strictly decreasing loss keeps the run
// alive; reaching perfect accuracy converges it.
func TestUpdate_DecreasingThenConverged(t *testing.T) {
	m := monitor.New(1000)
	for epoch := 1; epoch <= 50; epoch++ {
		st := m.Update(0.5, 1/float64(epoch), epoch)
		require.Equal(t, monitor.Decreasing, st, "epoch %d", epoch)
		require.True(t, m.Improved(), "epoch %d", epoch)
		require.Equal(t, 0, m.NumStable())
	}
	assert.Equal(t, monitor.Converged, m.Update(1.0, 0.001, 51))
	assert.Equal(t, 1.0, m.MaxAcc())
	assert.InDelta(t, 0.001, m.MinLoss(), 0)
	assert.False(t, m.State().Retry())
}

// TestUpdate_Oscillating: loss improves for 20 epochs and then plateaus until
// epoch 90; the ratio exceeds 0.2 from epoch 26 on and the state at epoch 90
// is Oscillating. Past epoch 100 the window closes.
func TestUpdate_Oscillating(t *testing.T) {
	m := monitor.New(1000)
	var firstOsc int
	for epoch := 1; epoch <= 90; epoch++ {
		loss := 1.0
		if epoch <= 20 {
			loss = 2 - float64(epoch)/20
		}
		st := m.Update(0.6, loss, epoch)
		if st == monitor.Oscillating && firstOsc == 0 {
			firstOsc = epoch
		}
	}
	assert.Equal(t, monitor.Oscillating, m.State())
	assert.Equal(t, 70, m.NumStable())
	assert.Equal(t, 26, firstOsc)
	assert.True(t, m.State().Retry())

	for epoch := 91; epoch <= 101; epoch++ {
		m.Update(0.6, 1.0, epoch)
	}
	assert.Equal(t, monitor.Decreasing, m.State(), "oscillation is only checked up to epoch 100")
}

// TestUpdate_MaxStableConverges: too many stable epochs converge the run.
func TestUpdate_MaxStableConverges(t *testing.T) {
	m := monitor.New(3)
	assert.Equal(t, monitor.Decreasing, m.Update(0.1, 1, 1))
	assert.Equal(t, monitor.Decreasing, m.Update(0.2, 1, 2))
	assert.Equal(t, monitor.Decreasing, m.Update(0.3, 1, 3))
	assert.Equal(t, monitor.Converged, m.Update(0.2, 1, 4))
	assert.Equal(t, 0.3, m.MaxAcc())
	assert.Equal(t, 3, m.NumStable())
}

// TestUpdate_ImprovedFlagResets: Improved reflects only the latest update.
func TestUpdate_ImprovedFlagResets(t *testing.T) {
	m := monitor.New(10)
	m.Update(0.1, 2, 1)
	assert.True(t, m.Improved())
	m.Update(0.1, 3, 2)
	assert.False(t, m.Improved())
	m.Update(0.1, 1, 3)
	assert.True(t, m.Improved())
	assert.Equal(t, 0, m.NumStable())
}

// TestHistory_Ring keeps the most recent samples oldest first.
func TestHistory_Ring(t *testing.T) {
	m := monitor.New(100, monitor.WithCapacity(3))
	_, ok := m.Last()
	assert.False(t, ok)
	assert.Empty(t, m.History())

	for epoch := 1; epoch <= 5; epoch++ {
		m.Update(float64(epoch)/10, 10-float64(epoch), epoch)
	}
	h := m.History()
	require.Len(t, h, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{h[0].Epoch, h[1].Epoch, h[2].Epoch})

	last, ok := m.Last()
	require.True(t, ok)
	assert.Equal(t, monitor.Sample{Epoch: 5, Acc: 0.5, Loss: 5}, last)

	assert.InDelta(t, 0.1, m.MeanOscillation(), 1e-12)
	assert.InDelta(t, (0.2+0.1+0)/3, m.MeanDifference(), 1e-12)
}

// TestDefaultCapacity retains thirty samples.
func TestDefaultCapacity(t *testing.T) {
	m := monitor.New(1000)
	for epoch := 1; epoch <= 45; epoch++ {
		m.Update(0.5, 1/float64(epoch), epoch)
	}
	h := m.History()
	require.Len(t, h, monitor.DefaultCapacity)
	assert.Equal(t, 16, h[0].Epoch)
	assert.Equal(t, 0.0, monitor.New(1).MeanOscillation())
	assert.Equal(t, 0.0, monitor.New(1).MeanDifference())
}

// TestState_String names every state.
func TestState_String(t *testing.T) {
	assert.Equal(t, "diverged", monitor.Diverged.String())
	assert.Equal(t, "oscillating", monitor.Oscillating.String())
	assert.Equal(t, "decreasing", monitor.Decreasing.String())
	assert.Equal(t, "converged", monitor.Converged.String())
	assert.Equal(t, "state(5)", monitor.State(5).String())
}
