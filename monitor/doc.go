// Package monitor tracks the convergence of an elastic training run.
//
// A Monitor is fed one (accuracy, loss, epoch) sample per epoch and answers
// two questions: should training continue, and did this epoch produce a new
// best model (so the caller snapshots its weights)?
//
// Transition table (evaluated in this order):
//
//	loss not finite                         → Diverged
//	loss < minLoss                          → minLoss = loss, numStable = 0, Improved
//	otherwise                               → numStable++
//	maxAcc = max(maxAcc, acc)
//	20 ≤ epoch ≤ 100 && numStable/epoch > .2 → Oscillating
//	maxAcc ≥ 1 || numStable ≥ maxStable     → Converged
//	otherwise                               → Decreasing
//
// Training continues only while the state is Decreasing. Diverged and
// Oscillating are the retry states: the caller is expected to restart with a
// smaller learning rate (State.Retry).
//
// The monitor also keeps a fixed-size ring of the most recent samples for
// reporting.
package monitor
