// Package optimizer implements the stochastic update rules applied, cell by
// cell, along an alignment's backtrace path.
//
// A Rule maps a raw gradient g for one addressable weight cell to the step
// that is subtracted from that cell (W[cell] -= step):
//
//	SGD       step = η·g
//	Momentum  v = μ·v − η·g;                 step = −v
//	AdaGrad   v += g²;                       step = η·g / (√v + 1e-7)
//	AdaDelta  v = ρ1·v + (1−ρ1)·g²;          step = η·g / (√v + 1e-7)
//	Adam      m = ρ1·m + (1−ρ1)·g
//	          v = ρ2·v + (1−ρ2)·g²
//	          step = η·(m/(1−ρ1)) / (√(v/(1−ρ2)) + 1e-7)
//
// State (v, m) is zero-initialized and has the same shape as the cells it
// serves: one matrix per (class, partition) of size Rows×Cols. Keys address
// a cell by class, partition, row and column; no buffer is shared between
// classes or partitions. Because Momentum and Adam are order dependent, a
// Rule must not be stepped from several goroutines at once.
package optimizer
