// Package dtw is the reference baseline for the elastic classifiers: a
// Dynamic Time Warping distance and a 1-nearest-neighbour classifier over
// series datasets.
//
// 🚀 What is DTW?
//
//	DTW finds the cheapest monotone alignment of two sequences by warping
//	the time axis. 1-NN under DTW is the usual yardstick for elastic
//	time-series classifiers: if a learned model cannot beat it, the
//	templates are not pulling their weight.
//
// ✨ Key features:
//   - O(min(N,M)) memory, two rolling rows
//   - optional Sakoe–Chiba window (|i−j| ≤ w)
//   - slope penalty to discourage excessive stretching
//   - NearestNeighbor scoring fans out over conc pools
//
// ⚙️ Usage:
//
//	d, err := dtw.Distance(a, b, dtw.DefaultOptions())
//
//	nn, err := dtw.NewNearestNeighbor(train, dtw.WithWindow(5))
//	acc := nn.Score(test)
//
// Performance:
//
//   - Distance: O(N·M) time, or O(N·w) with a window
//   - NearestNeighbor.Predict: O(|train|·N·M)
package dtw
