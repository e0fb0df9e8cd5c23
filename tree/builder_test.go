package tree

import (
	"errors"
	"testing"

	"github.com/pbanos/symptree/dataset"
	"github.com/pbanos/symptree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *feature.Schema {
	t.Helper()
	s, err := feature.NewSchema([]string{"fever", "cough", "rash"}, []string{"Flu", "Allergies"})
	require.NoError(t, err)
	return s
}

func ex(label string, symptoms ...bool) dataset.Example {
	return dataset.Example{Symptoms: symptoms, Label: label}
}

func TestGini(t *testing.T) {
	assert.Equal(t, 0.0, gini([]int{4, 0}, 4))
	assert.Equal(t, 0.5, gini([]int{2, 2}, 4))
	assert.InDelta(t, 0.375, gini([]int{3, 1}, 4), 1e-12)
	assert.Equal(t, 0.0, gini([]int{0, 0}, 0))
}

func TestBuildEmptyPartition(t *testing.T) {
	_, err := Build(nil, testSchema(t), Params{MaxDepth: 3, MinSamplesSplit: 2})
	assert.True(t, errors.Is(err, ErrEmptyPartition))
}

func TestBuildPureLeaf(t *testing.T) {
	tr, err := Build([]dataset.Example{
		ex("Flu", true, true, false),
		ex("Flu", true, false, false),
	}, testSchema(t), Params{MaxDepth: 3, MinSamplesSplit: 2})
	require.NoError(t, err)
	require.True(t, tr.Root.IsLeaf())
	assert.Equal(t, []int{2, 0}, tr.Root.Counts)
	assert.Equal(t, 2, tr.Root.Samples)
}

func TestBuildSplitsOnInformativeSymptom(t *testing.T) {
	examples := []dataset.Example{
		ex("Flu", true, true, false),
		ex("Flu", true, false, true),
		ex("Flu", true, true, true),
		ex("Allergies", false, true, false),
		ex("Allergies", false, false, true),
		ex("Allergies", false, true, true),
	}
	tr, err := Build(examples, testSchema(t), Params{MaxDepth: 5, MinSamplesSplit: 2})
	require.NoError(t, err)
	root := tr.Root
	require.False(t, root.IsLeaf())
	assert.Equal(t, 0, root.Feature)
	assert.Equal(t, 0.0, root.Impurity)
	assert.Equal(t, 0.5, root.Gain)
	assert.Equal(t, 6, root.Samples)
	assert.Equal(t, []int{3, 0}, root.Present.Counts)
	assert.Equal(t, []int{0, 3}, root.Absent.Counts)
	assert.Equal(t, 1, tr.Depth())
	assert.Equal(t, 2, tr.Leaves())
}

func TestBuildTieBreaksOnLowestSymptomIndex(t *testing.T) {
	examples := []dataset.Example{
		ex("Flu", false, true, true),
		ex("Flu", false, true, true),
		ex("Allergies", false, false, false),
		ex("Allergies", true, false, false),
	}
	for _, features := range [][]int{{1, 2}, {2, 1}} {
		tr, err := Build(examples, testSchema(t), Params{MaxDepth: 5, MinSamplesSplit: 2, Features: features})
		require.NoError(t, err)
		assert.Equal(t, 1, tr.Root.Feature, "features %v", features)
	}
}

func TestBuildStoppingRules(t *testing.T) {
	examples := []dataset.Example{
		ex("Flu", true, false, false),
		ex("Flu", true, false, false),
		ex("Allergies", false, false, true),
	}
	schema := testSchema(t)

	tr, err := Build(examples, schema, Params{MaxDepth: 0, MinSamplesSplit: 2})
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf(), "depth limit")
	assert.Equal(t, []int{2, 1}, tr.Root.Counts)

	tr, err = Build(examples, schema, Params{MaxDepth: 5, MinSamplesSplit: 4})
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf(), "min samples split")

	tr, err = Build(examples, schema, Params{MaxDepth: 5, MinSamplesSplit: 2, Features: []int{1}})
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf(), "constant candidate feature")
}

func TestBuildRejectsUselessSplits(t *testing.T) {
	examples := []dataset.Example{
		ex("Flu", true, false, false),
		ex("Allergies", true, false, false),
		ex("Flu", false, false, false),
		ex("Allergies", false, false, false),
	}
	tr, err := Build(examples, testSchema(t), Params{MaxDepth: 5, MinSamplesSplit: 2})
	require.NoError(t, err)
	assert.True(t, tr.Root.IsLeaf())
	assert.Equal(t, []int{2, 2}, tr.Root.Counts)
}

func TestBuildValidation(t *testing.T) {
	schema := testSchema(t)
	_, err := Build([]dataset.Example{ex("Flu", true, false, false)}, schema, Params{MaxDepth: 2, Features: []int{3}})
	var ife *InvalidFeatureError
	require.True(t, errors.As(err, &ife))
	assert.Equal(t, 3, ife.Feature)

	_, err = Build([]dataset.Example{ex("Flu", true, false, false), ex("Cold", true, false, false)}, schema, Params{MaxDepth: 2})
	var iee *dataset.InvalidExampleError
	require.True(t, errors.As(err, &iee))
	assert.Equal(t, 1, iee.Index)
}
