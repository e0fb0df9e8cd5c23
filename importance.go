package symptree

import (
	"context"
	"sort"

	"github.com/pbanos/symptree/tree"
)

// Importance is the relevance of a symptom in an ensemble's decisions.
type Importance struct {
	Symptom    string
	Importance float64
}

/*
FeatureImportance returns the importance of every symptom in the schema,
sorted by descending importance with ties in schema order. The importance
of a symptom in a tree is the decrease in Gini impurity of the splits on
it, weighted by the number of examples reaching them and normalized to add
up to 1 over the tree. The ensemble importance is its average over trees.
*/
func (e *Ensemble) FeatureImportance() []Importance {
	totals := make([]float64, e.Schema.SymptomCount())
	perTree := make([]float64, len(totals))
	for _, t := range e.Trees {
		for i := range perTree {
			perTree[i] = 0
		}
		var sum float64
		t.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node) error {
			if !n.IsLeaf() {
				decrease := float64(n.Samples) * n.Gain
				perTree[n.Feature] += decrease
				sum += decrease
			}
			return nil
		})
		if sum == 0 {
			continue
		}
		for i, v := range perTree {
			totals[i] += v / sum
		}
	}
	importances := make([]Importance, len(totals))
	for i, v := range totals {
		importances[i] = Importance{e.Schema.Symptom(i), v / float64(len(e.Trees))}
	}
	sort.SliceStable(importances, func(i, j int) bool {
		return importances[i].Importance > importances[j].Importance
	})
	return importances
}
