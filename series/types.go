package series

import "errors"

// Sentinel errors returned by Validate.
var (
	// ErrEmptyDataset indicates a dataset without sequences.
	ErrEmptyDataset = errors.New("series: dataset is empty")

	// ErrEmptySequence indicates a sequence with no values.
	ErrEmptySequence = errors.New("series: sequence is empty")

	// ErrBadLabel indicates a label outside [0, NumLabels).
	ErrBadLabel = errors.New("series: label out of range")

	// ErrSingleClass indicates fewer than two distinct labels.
	ErrSingleClass = errors.New("series: dataset needs at least two classes")
)

// Sequence is one labeled input pattern.
type Sequence struct {
	Values []float64
	Label  int
}

// Len returns the number of values in s.
func (s Sequence) Len() int { return len(s.Values) }

// Dataset is ordered, read-only access to labeled sequences.
type Dataset interface {
	Len() int
	At(i int) Sequence
	NumLabels() int
	MaxLength() int
}

// Set is a slice-backed Dataset.
type Set []Sequence

var _ Dataset = Set(nil)
