package main

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/esmr/series"
)

// shapes are the synthetic class prototypes over t ∈ [0,1].
var shapes = []func(t float64) float64{
	func(t float64) float64 { return 2*t - 1 },                   // rising ramp
	func(t float64) float64 { return 1 - 2*t },                   // falling ramp
	func(t float64) float64 { return math.Sin(2 * math.Pi * t) }, // one period
}

// synthesize draws perClass sequences of every shape with lengths in
// [minLen, maxLen] and Gaussian noise of the given level. Labels are
// interleaved so the set is balanced at any prefix.
func synthesize(seed int64, perClass, minLen, maxLen int, noise float64) series.Set {
	rng := rand.New(rand.NewSource(seed))
	set := make(series.Set, 0, perClass*len(shapes))
	for i := 0; i < perClass; i++ {
		for label, f := range shapes {
			n := minLen + rng.Intn(maxLen-minLen+1)
			v := make([]float64, n)
			for k := range v {
				t := 0.0
				if n > 1 {
					t = float64(k) / float64(n-1)
				}
				v[k] = f(t) + noise*rng.NormFloat64()
			}
			set = append(set, series.Sequence{Values: v, Label: label})
		}
	}

	return set
}
