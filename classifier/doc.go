// Package classifier trains elastic softmax classifiers: linear multiclass
// models whose per-class weight is a template matrix aligned against each
// input by the DP kernels of package align.
//
// 🚀 How training works
//
//	for epoch t = 1..T while the monitor says Decreasing:
//	  shuffle the training set (Fisher–Yates, explicit seed)
//	  for each example (x, y):
//	    a[j]  = Align(x, W[j]).Similarity (+ b[j])      for every class j
//	    δ     = softmax(a) − onehot(y)
//	    for every class j, for every cell (r,s) on j's path:
//	      g        = δ[j]·x[r] + λ·R'(W[j][r][s])
//	      W[j][r][s] -= rule.Step(g)
//	    b[j] -= biasRule.Step(δ[j])                      (bias variants)
//	  evaluate loss/accuracy on the whole training set; snapshot if improved
//
// Only the cells on an alignment's backtrace path are touched, so an update
// costs O(n+e) per class instead of O(n·e).
//
// ✨ Variants (one training loop, kernel injected as a strategy):
//   - ElasticSum — one template per class plus a bias scalar
//   - ElasticMax — one template per class, no bias
//   - MinMax     — Partitions templates per class; class score is the
//     minimum partition score and only the selected partition learns
//
// ⚙️ Usage:
//
//	clf, err := classifier.New(
//	  classifier.WithElasticity(3),
//	  classifier.WithOptimizer(optimizer.Adam),
//	  classifier.WithLearningRate(0.01),
//	  classifier.WithSeed(42),
//	)
//	sum, err := clf.Fit(ctx, train)
//	if sum.State.Retry() { /* halve the learning rate and retry */ }
//	acc := clf.Score(test)
//
// FitWithRestarts wraps that retry loop: it halves the learning rate and
// retrains from fresh weights until a run ends Decreasing or Converged.
//
// Concurrency: Fit is sequential. Evaluation (Score, Evaluate and the
// per-epoch pass) can fan out over WithWorkers goroutines; each goroutine
// only reads weights and writes its own result slot. A Classifier must not
// be used concurrently with its own Fit.
package classifier
