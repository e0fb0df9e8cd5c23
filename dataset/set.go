/*
Package dataset provides labeled symptom examples, sets of them bound to a
schema and a Synthesizer contract for the collaborators that generate them.
*/
package dataset

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/symptree/feature"
)

/*
Set represents a collection of examples conforming to a schema.

Sets are immutable: the methods returning examples return copies of the
slice, and the symptom vectors of the examples must not be modified.
*/
type Set struct {
	schema   *feature.Schema
	examples []Example
}

/*
New takes a schema and a slice of examples and returns a Set with them or an
error if the schema is nil or any of the examples fails to validate against
it. The error for an invalid example is an *InvalidExampleError with the
position of the example in the slice.
*/
func New(schema *feature.Schema, examples []Example) (*Set, error) {
	if schema == nil {
		return nil, fmt.Errorf("cannot build a set without a schema")
	}
	if err := ValidateAll(schema, examples); err != nil {
		return nil, err
	}
	return &Set{schema, append([]Example{}, examples...)}, nil
}

// Schema returns the schema the set examples conform to.
func (s *Set) Schema() *feature.Schema {
	return s.schema
}

// Count returns the number of examples in the set.
func (s *Set) Count() int {
	return len(s.examples)
}

// Example returns the example at index i.
func (s *Set) Example(i int) Example {
	return s.examples[i]
}

// Examples returns a copy of the slice of examples in the set.
func (s *Set) Examples() []Example {
	return append([]Example{}, s.examples...)
}

/*
LabelCounts returns a slice with the number of examples for each label, in
schema label order.
*/
func (s *Set) LabelCounts() []int {
	counts := make([]int, s.schema.LabelCount())
	for _, e := range s.examples {
		i, _ := s.schema.LabelIndex(e.Label)
		counts[i]++
	}
	return counts
}

// DistinctLabels returns the number of different labels among the examples.
func (s *Set) DistinctLabels() int {
	var n int
	for _, c := range s.LabelCounts() {
		if c > 0 {
			n++
		}
	}
	return n
}

/*
Split takes a testFraction and a seed and returns two sets partitioning the
examples of the set: a training set and a test set with
floor(testFraction x Count()) examples chosen with a pseudo-random sequence
seeded with the given seed. The relative order of examples is kept in both sets.
It returns an error if testFraction is not within [0, 1).
*/
func (s *Set) Split(testFraction float64, seed int64) (*Set, *Set, error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in [0, 1), got %v", testFraction)
	}
	n := len(s.examples)
	testCount := int(testFraction * float64(n))
	r := rand.New(rand.NewSource(seed))
	inTest := make([]bool, n)
	for _, i := range r.Perm(n)[:testCount] {
		inTest[i] = true
	}
	train := make([]Example, 0, n-testCount)
	test := make([]Example, 0, testCount)
	for i, e := range s.examples {
		if inTest[i] {
			test = append(test, e)
		} else {
			train = append(train, e)
		}
	}
	return &Set{s.schema, train}, &Set{s.schema, test}, nil
}

func (s *Set) String() string {
	return fmt.Sprintf("{Set examples: %d labels: %v}", len(s.examples), s.LabelCounts())
}
