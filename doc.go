// Package esmr is a small library of elastic softmax classifiers for
// variable-length numeric sequences, plus the pieces they are built from.
//
// 🚀 What is an elastic softmax classifier?
//
//	A linear multiclass model whose per-class weight is a template matrix
//	(inputLength × elasticity). Each input is aligned against every template
//	by a monotone max-accumulating DP; the alignment score feeds a softmax,
//	and gradients flow only through the cells on the optimal path.
//
// ✨ Packages:
//
//	series/     — Sequence and Dataset model, validation, bias augmentation
//	align/      — Elastic and MinMax DP kernels with backtrace paths
//	softmax/    — stable softmax, cross-entropy loss, derivative, argmax
//	optimizer/  — SGD, Momentum, AdaGrad, AdaDelta, Adam per-cell rules
//	monitor/    — convergence state machine driving early stop and restarts
//	classifier/ — generic training loop, inference, learning-rate restarts
//	dtw/        — DTW distance and 1-NN baseline
//	cmd/esmr    — demo driver on a synthetic shape dataset
//
// ⚙️ Usage:
//
//	clf, sum, err := classifier.FitWithRestarts(ctx, train, 5,
//	  classifier.WithVariant(classifier.MinMax),
//	  classifier.WithPartitions(2),
//	  classifier.WithOptimizer(optimizer.Adam),
//	  classifier.WithLearningRate(0.01),
//	)
//	fmt.Println(sum.State, clf.Score(test))
package esmr
