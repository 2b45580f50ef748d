// Package series defines the labeled input sequences consumed by the elastic
// classifiers and the Dataset abstraction the training loop reads from.
//
// A Sequence is an ordered list of real values plus an integer class label in
// [0, NumLabels). Its length is fixed when it is created; NewSequence copies
// the caller's slice so later mutation of that slice cannot change it.
//
// Dataset is intentionally small:
//
//	Len()       — number of sequences
//	At(i)       — i-th sequence, i ∈ [0, Len())
//	NumLabels() — count of distinct labels
//	MaxLength() — longest sequence (sizes templates before training)
//
// Set is the in-memory implementation. Loading from files, standardization,
// cropping and folding live outside this module; anything that can answer the
// four methods above can be trained on.
//
// Validate rejects datasets the trainer cannot work with (empty, empty
// sequences, labels out of range, a single class). The alignment kernels
// themselves stay total and never fail on degenerate input.
package series
