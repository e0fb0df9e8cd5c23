package tree

import (
	"fmt"
	"strings"
)

/*
Prediction represents the prediction made by a decision tree leaf: the label
counts of the training examples that reached it. Probabilities are computed
from the counts on demand, so predictions restored from integer counts
produce the same values.
*/
type Prediction struct {
	counts []int
	weight int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromEmptySet is the error returned when trying to build a prediction
from counts that add up to zero.
*/
const ErrCannotPredictFromEmptySet = PredictionError("cannot make prediction for empty dataset")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes a slice with the number of examples for each label and
returns a prediction representing them or an error if any count is negative
or all of them are zero.
*/
func NewPrediction(counts []int) (*Prediction, error) {
	var weight int
	for _, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("negative label count %d", c)
		}
		weight += c
	}
	if weight == 0 {
		return nil, ErrCannotPredictFromEmptySet
	}
	return &Prediction{counts: counts, weight: weight}, nil
}

/*
ProbabilityOf takes the index of a label and returns the float64 probability
of that label according to the prediction.
*/
func (p *Prediction) ProbabilityOf(label int) float64 {
	return float64(p.counts[label]) / float64(p.weight)
}

/*
Probabilities returns a slice of float64 containing the probability of each
label in schema label order.
*/
func (p *Prediction) Probabilities() []float64 {
	probs := make([]float64, len(p.counts))
	for i := range p.counts {
		probs[i] = p.ProbabilityOf(i)
	}
	return probs
}

/*
Weight returns the weight of the prediction: an
int equal to the number of samples from which
the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

/*
PredictedLabel returns the index of the most probable label and its
probability. Ties go to the lowest label index.
*/
func (p *Prediction) PredictedLabel() (label int, prob float64) {
	best := -1
	for i, c := range p.counts {
		if c > best {
			best = c
			label = i
		}
	}
	return label, p.ProbabilityOf(label)
}

func (p *Prediction) String() string {
	parts := make([]string, len(p.counts))
	for i := range p.counts {
		parts[i] = fmt.Sprintf("%.3f", p.ProbabilityOf(i))
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
