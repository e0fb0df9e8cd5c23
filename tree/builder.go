package tree

import (
	"fmt"

	"github.com/pbanos/symptree/dataset"
	"github.com/pbanos/symptree/feature"
)

// BuildError represents an error building a tree
type BuildError string

/*
ErrEmptyPartition is the error returned by Build when given no examples to
build a tree from.
*/
const ErrEmptyPartition = BuildError("cannot build a tree from an empty partition")

func (be BuildError) Error() string {
	return string(be)
}

/*
InvalidFeatureError is the error returned by Build when the feature subset
references a symptom index outside the schema.
*/
type InvalidFeatureError struct {
	Feature  int
	Symptoms int
}

func (e *InvalidFeatureError) Error() string {
	return fmt.Sprintf("feature index %d out of range for a schema with %d symptoms", e.Feature, e.Symptoms)
}

/*
Params holds the stopping rules and the candidate features for a tree build.

A node becomes a leaf once it is at MaxDepth (the root being at depth 0) or
fewer than MinSamplesSplit examples reach it. Features lists the symptom
indices the splits may be chosen from; a nil Features slice allows every
symptom in the schema.
*/
type Params struct {
	MaxDepth        int
	MinSamplesSplit int
	Features        []int
}

/*
Partition represents the split of the examples reaching a node by the
presence of a symptom, with the weighted Gini impurity of the split.
*/
type Partition struct {
	Feature  int
	Present  []int
	Absent   []int
	Impurity float64
}

/*
Build takes a slice of examples, the schema they conform to and the build
params and returns a classification tree grown with CART splits over the
binary symptoms, choosing at every node the candidate feature with the
lowest weighted Gini impurity (lowest symptom index on ties) and stopping
when the examples are pure, a stopping rule is met or no split lowers the
impurity.

It returns ErrEmptyPartition if examples is empty, an *InvalidFeatureError
for out of range candidate features and a *dataset.InvalidExampleError for
examples that do not conform to the schema.
*/
func Build(examples []dataset.Example, schema *feature.Schema, params Params) (*Tree, error) {
	if len(examples) == 0 {
		return nil, ErrEmptyPartition
	}
	features := params.Features
	if features == nil {
		features = make([]int, schema.SymptomCount())
		for i := range features {
			features[i] = i
		}
	}
	for _, f := range features {
		if f < 0 || f >= schema.SymptomCount() {
			return nil, &InvalidFeatureError{f, schema.SymptomCount()}
		}
	}
	if err := dataset.ValidateAll(schema, examples); err != nil {
		return nil, err
	}
	labels := make([]int, len(examples))
	for i, e := range examples {
		labels[i], _ = schema.LabelIndex(e.Label)
	}
	b := &builder{
		examples: examples,
		labels:   labels,
		nLabels:  schema.LabelCount(),
		params:   params,
		features: features,
	}
	indices := make([]int, len(examples))
	for i := range indices {
		indices[i] = i
	}
	return New(b.grow(indices, 0), schema), nil
}

type builder struct {
	examples []dataset.Example
	labels   []int
	nLabels  int
	params   Params
	features []int
}

func (b *builder) grow(indices []int, depth int) *Node {
	counts := b.labelCounts(indices)
	impurity := gini(counts, len(indices))
	if impurity == 0 || depth >= b.params.MaxDepth || len(indices) < b.params.MinSamplesSplit {
		return newLeaf(counts, len(indices))
	}
	best := b.bestPartition(indices)
	if best == nil || !(best.Impurity < impurity) {
		return newLeaf(counts, len(indices))
	}
	return &Node{
		Feature:  best.Feature,
		Impurity: best.Impurity,
		Gain:     impurity - best.Impurity,
		Samples:  len(indices),
		Present:  b.grow(best.Present, depth+1),
		Absent:   b.grow(best.Absent, depth+1),
	}
}

/*
bestPartition returns the partition of the given examples with the lowest
weighted impurity among the candidate features, or nil if every candidate
leaves one side empty.
*/
func (b *builder) bestPartition(indices []int) *Partition {
	var best *Partition
	present := make([]int, b.nLabels)
	absent := make([]int, b.nLabels)
	for _, f := range b.features {
		for l := range present {
			present[l] = 0
			absent[l] = 0
		}
		var nPresent int
		for _, i := range indices {
			if b.examples[i].Symptoms[f] {
				present[b.labels[i]]++
				nPresent++
			} else {
				absent[b.labels[i]]++
			}
		}
		nAbsent := len(indices) - nPresent
		if nPresent == 0 || nAbsent == 0 {
			continue
		}
		total := float64(len(indices))
		impurity := float64(nPresent)/total*gini(present, nPresent) + float64(nAbsent)/total*gini(absent, nAbsent)
		if best == nil || impurity < best.Impurity || (impurity == best.Impurity && f < best.Feature) {
			best = &Partition{Feature: f, Impurity: impurity}
		}
	}
	if best == nil {
		return nil
	}
	for _, i := range indices {
		if b.examples[i].Symptoms[best.Feature] {
			best.Present = append(best.Present, i)
		} else {
			best.Absent = append(best.Absent, i)
		}
	}
	return best
}

func (b *builder) labelCounts(indices []int) []int {
	counts := make([]int, b.nLabels)
	for _, i := range indices {
		counts[b.labels[i]]++
	}
	return counts
}

/*
gini takes the label counts of a partition and its size and returns the
Gini impurity 1 - Σ p² of the label proportions. An empty partition has
impurity 0.
*/
func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	result := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		result -= p * p
	}
	return result
}
