package tree

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/symptree/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLevelTree(t *testing.T) *Tree {
	t.Helper()
	examples := []dataset.Example{
		ex("Flu", true, true, false),
		ex("Flu", true, true, false),
		ex("Allergies", true, false, true),
		ex("Allergies", false, false, true),
		ex("Allergies", false, true, true),
		ex("Flu", false, false, false),
	}
	tr, err := Build(examples, testSchema(t), Params{MaxDepth: 1, MinSamplesSplit: 2})
	require.NoError(t, err)
	return tr
}

func TestTreePredict(t *testing.T) {
	tr := twoLevelTree(t)
	require.Equal(t, 2, tr.Root.Feature)

	p, err := tr.Predict([]bool{false, false, true})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, p.Probabilities())
	assert.Equal(t, 3, p.Weight())

	p, err = tr.Predict([]bool{true, true, false})
	require.NoError(t, err)
	label, prob := p.PredictedLabel()
	assert.Equal(t, 0, label)
	assert.Equal(t, 1.0, prob)

	_, err = tr.Predict([]bool{true})
	assert.Error(t, err)
}

func TestTreeLeafOnMalformedTree(t *testing.T) {
	tr := New(&Node{Feature: 0, Present: &Node{Counts: []int{1, 0}}}, testSchema(t))
	_, err := tr.Leaf([]bool{false, false, false})
	assert.Error(t, err)
	n, err := tr.Leaf([]bool{true, false, false})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, n.Counts)
}

func TestTreeTraverse(t *testing.T) {
	tr := twoLevelTree(t)
	var topdown, bottomup []bool
	require.NoError(t, tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		topdown = append(topdown, n.IsLeaf())
		return nil
	}))
	require.NoError(t, tr.Traverse(context.Background(), true, func(_ context.Context, n *Node) error {
		bottomup = append(bottomup, n.IsLeaf())
		return nil
	}))
	assert.Equal(t, []bool{false, true, true}, topdown)
	assert.Equal(t, []bool{true, true, false}, bottomup)

	stop := errors.New("stop")
	var visited int
	err := tr.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		visited++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, visited)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, tr.Traverse(ctx, false, func(context.Context, *Node) error { return nil }))
}

func TestTreeString(t *testing.T) {
	s := twoLevelTree(t).String()
	assert.Contains(t, s, "[rash?]")
	assert.Contains(t, s, "|__yes: { Allergies: 1.000 (n=3) }")
	assert.Contains(t, s, "|__no: { Flu: 1.000 (n=3) }")
}

func TestPrediction(t *testing.T) {
	_, err := NewPrediction([]int{0, 0})
	assert.Equal(t, ErrCannotPredictFromEmptySet, err)
	_, err = NewPrediction([]int{2, -1})
	assert.Error(t, err)

	p, err := NewPrediction([]int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.75, p.ProbabilityOf(1))
	assert.Equal(t, "[0.250 0.750]", p.String())
	label, prob := p.PredictedLabel()
	assert.Equal(t, 1, label)
	assert.Equal(t, 0.75, prob)
}
