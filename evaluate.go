package symptree

import (
	"fmt"

	"github.com/pbanos/symptree/dataset"
)

// LabelReport holds the classification metrics for a label.
type LabelReport struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

/*
Report holds the outcome of evaluating an ensemble against a labeled set:
the fraction of examples whose label was the primary diagnosis and the
per label metrics, in schema label order.
*/
type Report struct {
	Count    int
	Accuracy float64
	Labels   []LabelReport
}

/*
Evaluate takes an ensemble and a set of examples conforming to its schema
and returns a Report comparing the primary diagnosis for every example with
its label. Metrics with a zero denominator are 0.
*/
func Evaluate(e *Ensemble, set *dataset.Set) (*Report, error) {
	if !e.Schema.Equal(set.Schema()) {
		return nil, fmt.Errorf("evaluation set schema does not match the model schema")
	}
	if set.Count() == 0 {
		return nil, fmt.Errorf("cannot evaluate against an empty set")
	}
	nLabels := e.Schema.LabelCount()
	truePositives := make([]int, nLabels)
	predicted := make([]int, nLabels)
	support := make([]int, nLabels)
	var correct int
	for i, ex := range set.Examples() {
		r, err := e.PredictVector(ex.Symptoms)
		if err != nil {
			return nil, fmt.Errorf("predicting example %d: %w", i, err)
		}
		actual, _ := e.Schema.LabelIndex(ex.Label)
		guess, _ := e.Schema.LabelIndex(r.Primary().Label)
		support[actual]++
		predicted[guess]++
		if actual == guess {
			truePositives[actual]++
			correct++
		}
	}
	report := &Report{
		Count:    set.Count(),
		Accuracy: float64(correct) / float64(set.Count()),
		Labels:   make([]LabelReport, nLabels),
	}
	for l := range report.Labels {
		lr := LabelReport{Label: e.Schema.Label(l), Support: support[l]}
		lr.Precision = ratio(truePositives[l], predicted[l])
		lr.Recall = ratio(truePositives[l], support[l])
		if lr.Precision+lr.Recall > 0 {
			lr.F1 = 2 * lr.Precision * lr.Recall / (lr.Precision + lr.Recall)
		}
		report.Labels[l] = lr
	}
	return report, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}
