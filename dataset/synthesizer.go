package dataset

import (
	"fmt"
	"math/rand"

	"github.com/pbanos/symptree/feature"
)

const (
	// DefaultCharacteristicProbability is the probability of a symptom
	// characteristic of a label being present on a synthesized example.
	DefaultCharacteristicProbability = 0.8
	// DefaultBackgroundProbability is the probability of any other symptom
	// being present on a synthesized example.
	DefaultBackgroundProbability = 0.15
)

/*
Synthesizer is the contract for collaborators that generate labeled
examples. Synthesize takes a number of examples and a seed and returns a
Set with that many examples, the same ones for the same seed.
*/
type Synthesizer interface {
	Synthesize(n int, seed int64) (*Set, error)
}

/*
PatternSynthesizer is a Synthesizer that draws labels uniformly and marks
each symptom as present with one probability when the symptom is
characteristic of the drawn label and with another when it is not.
*/
type PatternSynthesizer struct {
	schema         *feature.Schema
	characteristic [][]bool
	// Characteristic is the probability of a characteristic symptom being present.
	Characteristic float64
	// Background is the probability of a non characteristic symptom being present.
	Background float64
}

/*
NewPatternSynthesizer takes a schema and a map from labels to their
characteristic symptoms and returns a PatternSynthesizer with the default
probabilities or an error if the map references labels or symptoms that are
not in the schema.
*/
func NewPatternSynthesizer(schema *feature.Schema, patterns map[string][]string) (*PatternSynthesizer, error) {
	characteristic := make([][]bool, schema.LabelCount())
	for i := range characteristic {
		characteristic[i] = make([]bool, schema.SymptomCount())
	}
	for label, symptoms := range patterns {
		li, ok := schema.LabelIndex(label)
		if !ok {
			return nil, fmt.Errorf("pattern for unknown label %q", label)
		}
		for _, symptom := range symptoms {
			si, ok := schema.SymptomIndex(symptom)
			if !ok {
				return nil, fmt.Errorf("pattern for label %q references unknown symptom %q", label, symptom)
			}
			characteristic[li][si] = true
		}
	}
	return &PatternSynthesizer{
		schema:         schema,
		characteristic: characteristic,
		Characteristic: DefaultCharacteristicProbability,
		Background:     DefaultBackgroundProbability,
	}, nil
}

// Synthesize satisfies the Synthesizer interface.
func (ps *PatternSynthesizer) Synthesize(n int, seed int64) (*Set, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot synthesize %d examples", n)
	}
	if ps.Characteristic < 0 || ps.Characteristic > 1 || ps.Background < 0 || ps.Background > 1 {
		return nil, fmt.Errorf("symptom probabilities must be within [0, 1], got %v and %v", ps.Characteristic, ps.Background)
	}
	r := rand.New(rand.NewSource(seed))
	examples := make([]Example, n)
	for i := range examples {
		li := r.Intn(ps.schema.LabelCount())
		symptoms := make([]bool, ps.schema.SymptomCount())
		for si := range symptoms {
			p := ps.Background
			if ps.characteristic[li][si] {
				p = ps.Characteristic
			}
			symptoms[si] = r.Float64() < p
		}
		examples[i] = Example{Symptoms: symptoms, Label: ps.schema.Label(li)}
	}
	return &Set{ps.schema, examples}, nil
}
