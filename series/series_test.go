package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/esmr/series"
)

// TestNewSequence_CopiesValues verifies the sequence is immune to later
// mutation of the caller's slice.
func TestNewSequence_CopiesValues(t *testing.T) {
	values := []float64{1, 2, 3}
	s := series.NewSequence(values, 1)
	values[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, s.Values)
	assert.Equal(t, 1, s.Label)
	assert.Equal(t, 3, s.Len())
}

// TestSet_Accessors covers Len, At, NumLabels, MaxLength and Labels.
func TestSet_Accessors(t *testing.T) {
	set := series.Set{
		series.NewSequence([]float64{1}, 0),
		series.NewSequence([]float64{1, 2, 3, 4}, 2),
		series.NewSequence([]float64{1, 2}, 1),
		series.NewSequence([]float64{5, 5}, 2),
	}

	assert.Equal(t, 4, set.Len())
	assert.Equal(t, 3, set.NumLabels())
	assert.Equal(t, 4, set.MaxLength())
	assert.Equal(t, []int{0, 2, 1, 2}, set.Labels())
	assert.Equal(t, []float64{1, 2}, set.At(2).Values)
	assert.Equal(t, 0, series.Set{}.MaxLength())
}

// TestWithBias appends one constant cell and leaves the source intact.
func TestWithBias(t *testing.T) {
	set := series.Set{series.NewSequence([]float64{1, 2}, 0)}
	out := series.WithBias(set, 1.5)

	require.Len(t, out, 1)
	assert.Equal(t, []float64{1, 2, 1.5}, out[0].Values)
	assert.Equal(t, []float64{1, 2}, set[0].Values, "source must not change")
}

// TestValidate exercises every sentinel in priority order.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		ds   series.Dataset
		want error
	}{
		{"nil", nil, series.ErrEmptyDataset},
		{"empty", series.Set{}, series.ErrEmptyDataset},
		{"empty sequence", series.Set{
			series.NewSequence([]float64{1}, 0),
			series.NewSequence(nil, 1),
		}, series.ErrEmptySequence},
		{"single class", series.Set{
			series.NewSequence([]float64{1}, 0),
			series.NewSequence([]float64{2}, 0),
		}, series.ErrSingleClass},
		{"label gap", series.Set{
			series.NewSequence([]float64{1}, 0),
			series.NewSequence([]float64{2}, 2),
		}, series.ErrBadLabel},
		{"negative label", series.Set{
			series.NewSequence([]float64{1}, -1),
			series.NewSequence([]float64{2}, 0),
		}, series.ErrBadLabel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, series.Validate(tc.ds), tc.want)
		})
	}

	ok := series.Set{
		series.NewSequence([]float64{1}, 0),
		series.NewSequence([]float64{2, 3}, 1),
	}
	assert.NoError(t, series.Validate(ok))
}

// TestCollect returns the same Set unchanged and copies foreign datasets.
func TestCollect(t *testing.T) {
	set := series.Set{series.NewSequence([]float64{1}, 0)}
	assert.Equal(t, set, series.Collect(set))

	var ds series.Dataset = wrapped{set}
	assert.Equal(t, set, series.Collect(ds))
}

// wrapped hides the concrete Set type behind the interface.
type wrapped struct{ s series.Set }

func (w wrapped) Len() int                 { return w.s.Len() }
func (w wrapped) At(i int) series.Sequence { return w.s.At(i) }
func (w wrapped) NumLabels() int           { return w.s.NumLabels() }
func (w wrapped) MaxLength() int           { return w.s.MaxLength() }
