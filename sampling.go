package symptree

import (
	"math/rand"
	"sort"

	"github.com/pbanos/symptree/dataset"
)

/*
bootstrap takes a pseudo-random source, a slice of examples and a fraction
and returns max(1, floor(fraction x len(examples))) examples drawn from the
slice with replacement.
*/
func bootstrap(r *rand.Rand, examples []dataset.Example, fraction float64) []dataset.Example {
	n := sampleSize(len(examples), fraction)
	sample := make([]dataset.Example, n)
	for i := range sample {
		sample[i] = examples[r.Intn(len(examples))]
	}
	return sample
}

/*
featureSubset takes a pseudo-random source, a number of features m and a
fraction and returns max(1, floor(fraction x m)) distinct feature indices in
[0, m), sorted ascending, drawn with a partial Fisher-Yates shuffle.
*/
func featureSubset(r *rand.Rand, m int, fraction float64) []int {
	k := sampleSize(m, fraction)
	indices := make([]int, m)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(m-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	subset := indices[:k]
	sort.Ints(subset)
	return subset
}

func sampleSize(n int, fraction float64) int {
	size := int(fraction * float64(n))
	if size < 1 {
		size = 1
	}
	if size > n {
		size = n
	}
	return size
}
