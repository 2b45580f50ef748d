package series

import (
	"fmt"
	"slices"
)

// NewSequence returns a Sequence holding a private copy of values.
func NewSequence(values []float64, label int) Sequence {
	return Sequence{Values: slices.Clone(values), Label: label}
}

// Len returns the number of sequences in s.
func (s Set) Len() int { return len(s) }

// At returns the i-th sequence. It panics if i is out of range.
func (s Set) At(i int) Sequence { return s[i] }

// NumLabels returns the number of distinct labels in s.
//
// Complexity: O(n) time, O(k) space for k distinct labels.
func (s Set) NumLabels() int {
	seen := make(map[int]struct{})
	for i := range s {
		seen[s[i].Label] = struct{}{}
	}

	return len(seen)
}

// MaxLength returns the length of the longest sequence, 0 for an empty set.
func (s Set) MaxLength() int {
	var max int
	for i := range s {
		if n := len(s[i].Values); n > max {
			max = n
		}
	}

	return max
}

// Labels returns the label of every sequence in order.
func (s Set) Labels() []int {
	labels := make([]int, len(s))
	for i := range s {
		labels[i] = s[i].Label
	}

	return labels
}

// Collect copies any Dataset into a Set.
func Collect(ds Dataset) Set {
	if set, ok := ds.(Set); ok {
		return set
	}
	n := ds.Len()
	set := make(Set, n)
	for i := 0; i < n; i++ {
		set[i] = ds.At(i)
	}

	return set
}

// WithBias returns a new Set in which every sequence is extended by one
// trailing cell holding b. The input dataset is not modified.
func WithBias(ds Dataset, b float64) Set {
	n := ds.Len()
	out := make(Set, n)
	for i := 0; i < n; i++ {
		src := ds.At(i)
		values := make([]float64, len(src.Values)+1)
		copy(values, src.Values)
		values[len(src.Values)] = b
		out[i] = Sequence{Values: values, Label: src.Label}
	}

	return out
}

// Validate checks the preconditions of training:
//  1. at least one sequence (ErrEmptyDataset);
//  2. every sequence non-empty (ErrEmptySequence);
//  3. at least two distinct labels (ErrSingleClass);
//  4. every label in [0, NumLabels) (ErrBadLabel).
//
// Errors are wrapped with the offending index; match with errors.Is.
func Validate(ds Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyDataset
	}
	n := ds.Len()
	for i := 0; i < n; i++ {
		if ds.At(i).Len() == 0 {
			return fmt.Errorf("%w: index %d", ErrEmptySequence, i)
		}
	}
	k := ds.NumLabels()
	if k < 2 {
		return ErrSingleClass
	}
	for i := 0; i < n; i++ {
		if y := ds.At(i).Label; y < 0 || y >= k {
			return fmt.Errorf("%w: index %d has label %d, want [0,%d)", ErrBadLabel, i, y, k)
		}
	}

	return nil
}
