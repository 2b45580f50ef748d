// Package align computes elastic alignments between an input sequence and a
// class template: a monotonic dynamic-programming warping that accumulates
// products x[i]·W[i][j] along the best path instead of minimizing a distance.
//
// 🚀 What is an elastic alignment?
//
//	Plain linear models score x against a weight vector w with Σ x[i]·w[i].
//	An elastic model gives every input position e "columns" of weights and
//	lets a DP choose, monotonically, which column each position uses:
//
//	  S[0][0] = x[0]·W[0][0]
//	  S[i][0] = S[i-1][0] + x[i]·W[i][0]
//	  S[0][j] = S[0][j-1] + x[0]·W[0][j]
//	  S[i][j] = max(S[i-1][j], S[i][j-1], S[i-1][j-1]) + x[i]·W[i][j]
//
//	The similarity is S[n-1][e-1]; the backtrace from that corner is the
//	only set of template cells that receive gradient during training.
//
// ✨ Key features:
//   - Elastic: full matrix + stored argmax directions + backtrace path
//   - ElasticScore: score only, two rolling rows, O(e) memory
//   - MinMax / MinMaxScore: minimum over several partition templates,
//     recording the selected partition
//   - Stretch: grow a template to a longer input into a fresh buffer
//   - Kernel: strategy interface the classifier is parameterized by
//
// ⚙️ Usage:
//
//	w := mat.NewDense(len(x), e, nil)
//	res := align.Elastic(x, w)
//	fmt.Println(res.Similarity, res.Path)
//
// Tie-breaking:
//
//	Predecessors are compared with strict '>' in a fixed order: the
//	advance-input cell (i-1,j) first, then the advance-elasticity cell
//	(i,j-1), then the diagonal (i-1,j-1). The winner is stored during the
//	forward pass, so the backtrace never re-derives it.
//
// Performance:
//
//   - Time:   O(n·e) per alignment (×partitions for MinMax)
//   - Memory: O(n·e) (Elastic, MinMax) or O(e) (score-only variants)
//   - Path:   O(n+e) cells
//
// Degenerate input (empty sequence, zero elasticity, no partitions) yields a
// zero Result instead of an error so the kernels stay total.
package align
