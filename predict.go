package symptree

import (
	"fmt"
	"sort"
)

// DefaultTopK is the number of diagnoses TopK returns when given k <= 0.
const DefaultTopK = 3

/*
SchemaMismatchError is the error returned when a query references a symptom
that is not defined in the ensemble schema.
*/
type SchemaMismatchError struct {
	Symptom string
}

func (sme *SchemaMismatchError) Error() string {
	return fmt.Sprintf("symptom %q is not defined in the model schema", sme.Symptom)
}

// Diagnosis is a label with its probability according to an ensemble.
type Diagnosis struct {
	Label       string
	Probability float64
}

/*
Result is the outcome of a prediction: a diagnosis for every label in the
schema, sorted by descending probability with ties broken by ascending
label.
*/
type Result struct {
	Diagnoses []Diagnosis
}

// Primary returns the most probable diagnosis.
func (r *Result) Primary() Diagnosis {
	return r.Diagnoses[0]
}

// Confidence returns the probability of the primary diagnosis.
func (r *Result) Confidence() float64 {
	return r.Diagnoses[0].Probability
}

/*
TopK returns the k most probable diagnoses. A k <= 0 means DefaultTopK,
and k is clamped to the number of labels.
*/
func (r *Result) TopK(k int) []Diagnosis {
	if k <= 0 {
		k = DefaultTopK
	}
	if k > len(r.Diagnoses) {
		k = len(r.Diagnoses)
	}
	return append([]Diagnosis{}, r.Diagnoses[:k]...)
}

// ProbabilityOf returns the probability of the given label, 0 if unknown.
func (r *Result) ProbabilityOf(label string) float64 {
	for _, d := range r.Diagnoses {
		if d.Label == label {
			return d.Probability
		}
	}
	return 0
}

/*
Vector takes a query mapping symptom names to their presence and returns
the symptom vector for it in schema order. Symptoms missing from the query
are absent. It returns a *SchemaMismatchError if the query names a symptom
the schema does not define, the first in name order if there are several.
*/
func (e *Ensemble) Vector(query map[string]bool) ([]bool, error) {
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)
	vector := make([]bool, e.Schema.SymptomCount())
	for _, name := range names {
		i, ok := e.Schema.SymptomIndex(name)
		if !ok {
			return nil, &SchemaMismatchError{name}
		}
		vector[i] = query[name]
	}
	return vector, nil
}

/*
Predict takes a query mapping symptom names to their presence and returns
the ranked diagnoses of the ensemble for it. Symptoms missing from the
query are treated as absent, so an empty query is valid. It returns a
*SchemaMismatchError if the query names a symptom the schema does not
define.
*/
func (e *Ensemble) Predict(query map[string]bool) (*Result, error) {
	vector, err := e.Vector(query)
	if err != nil {
		return nil, err
	}
	return e.PredictVector(vector)
}

/*
PredictVector takes a symptom vector in schema order and returns the ranked
diagnoses of the ensemble for it: the average over trees of the label
distribution of the leaf the vector reaches in each tree.
*/
func (e *Ensemble) PredictVector(vector []bool) (*Result, error) {
	if len(vector) != e.Schema.SymptomCount() {
		return nil, fmt.Errorf("vector has %d entries, schema defines %d symptoms", len(vector), e.Schema.SymptomCount())
	}
	sums := make([]float64, e.Schema.LabelCount())
	for i, t := range e.Trees {
		p, err := t.Predict(vector)
		if err != nil {
			return nil, fmt.Errorf("predicting with tree %d: %w", i, err)
		}
		for l := range sums {
			sums[l] += p.ProbabilityOf(l)
		}
	}
	diagnoses := make([]Diagnosis, len(sums))
	for l, s := range sums {
		diagnoses[l] = Diagnosis{e.Schema.Label(l), s / float64(len(e.Trees))}
	}
	sort.Slice(diagnoses, func(i, j int) bool {
		if diagnoses[i].Probability != diagnoses[j].Probability {
			return diagnoses[i].Probability > diagnoses[j].Probability
		}
		return diagnoses[i].Label < diagnoses[j].Label
	})
	return &Result{diagnoses}, nil
}
