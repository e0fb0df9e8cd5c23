package dataset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/symptree/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *feature.Schema {
	t.Helper()
	s, err := feature.NewSchema([]string{"fever", "cough", "rash"}, []string{"Flu", "Allergies", "Measles"})
	require.NoError(t, err)
	return s
}

func TestNewSetValidatesExamples(t *testing.T) {
	schema := testSchema(t)
	_, err := New(schema, []Example{
		{Symptoms: []bool{true, true, false}, Label: "Flu"},
		{Symptoms: []bool{true, false}, Label: "Flu"},
	})
	var iee *InvalidExampleError
	require.True(t, errors.As(err, &iee))
	assert.Equal(t, 1, iee.Index)

	_, err = New(schema, []Example{{Symptoms: []bool{true, true, false}, Label: "Cold"}})
	require.True(t, errors.As(err, &iee))
	assert.Equal(t, 0, iee.Index)
	assert.Contains(t, err.Error(), `"Cold"`)

	_, err = New(nil, nil)
	assert.Error(t, err)
}

func TestValidateAll(t *testing.T) {
	schema := testSchema(t)
	valid := Example{Symptoms: []bool{true, false, false}, Label: "Flu"}
	assert.NoError(t, ValidateAll(schema, nil))
	assert.NoError(t, ValidateAll(schema, []Example{valid, valid}))

	invalid := Example{Symptoms: []bool{true}, Label: "Flu"}
	err := ValidateAll(schema, []Example{valid, valid, invalid, invalid})
	var iee *InvalidExampleError
	require.True(t, errors.As(err, &iee))
	assert.Equal(t, 2, iee.Index)

	// the error returned by Validate is left untouched
	err = invalid.Validate(schema)
	require.True(t, errors.As(err, &iee))
	assert.Equal(t, -1, iee.Index)
}

func TestSetLabelCounts(t *testing.T) {
	s, err := New(testSchema(t), []Example{
		{Symptoms: []bool{true, true, false}, Label: "Flu"},
		{Symptoms: []bool{false, true, true}, Label: "Allergies"},
		{Symptoms: []bool{true, false, false}, Label: "Flu"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []int{2, 1, 0}, s.LabelCounts())
	assert.Equal(t, 2, s.DistinctLabels())
	assert.Equal(t, "[011 Allergies]", s.Example(1).String())
}

func TestSetSplit(t *testing.T) {
	schema := testSchema(t)
	var examples []Example
	for i := 0; i < 50; i++ {
		examples = append(examples, Example{Symptoms: []bool{i%2 == 0, i%3 == 0, i%5 == 0}, Label: schema.Label(i % 3)})
	}
	s, err := New(schema, examples)
	require.NoError(t, err)

	train, test, err := s.Split(0.2, 7)
	require.NoError(t, err)
	assert.Equal(t, 40, train.Count())
	assert.Equal(t, 10, test.Count())

	train2, test2, err := s.Split(0.2, 7)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(train.Examples(), train2.Examples()))
	assert.Empty(t, cmp.Diff(test.Examples(), test2.Examples()))

	_, _, err = s.Split(1, 7)
	assert.Error(t, err)
	_, _, err = s.Split(-0.1, 7)
	assert.Error(t, err)
}

func TestPatternSynthesizer(t *testing.T) {
	schema := testSchema(t)
	ps, err := NewPatternSynthesizer(schema, map[string][]string{
		"Flu":       {"fever", "cough"},
		"Allergies": {"rash"},
	})
	require.NoError(t, err)
	ps.Characteristic = 1
	ps.Background = 0

	s, err := ps.Synthesize(30, 42)
	require.NoError(t, err)
	assert.Equal(t, 30, s.Count())
	for _, e := range s.Examples() {
		require.NoError(t, e.Validate(schema))
		switch e.Label {
		case "Flu":
			assert.Equal(t, []bool{true, true, false}, e.Symptoms)
		case "Allergies":
			assert.Equal(t, []bool{false, false, true}, e.Symptoms)
		case "Measles":
			assert.Equal(t, []bool{false, false, false}, e.Symptoms)
		}
	}

	again, err := ps.Synthesize(30, 42)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(s.Examples(), again.Examples()))
}

func TestPatternSynthesizerErrors(t *testing.T) {
	schema := testSchema(t)
	_, err := NewPatternSynthesizer(schema, map[string][]string{"Cold": {"fever"}})
	assert.Error(t, err)
	_, err = NewPatternSynthesizer(schema, map[string][]string{"Flu": {"chills"}})
	assert.Error(t, err)

	ps, err := NewPatternSynthesizer(schema, nil)
	require.NoError(t, err)
	_, err = ps.Synthesize(-1, 0)
	assert.Error(t, err)
	ps.Background = 2
	_, err = ps.Synthesize(10, 0)
	assert.Error(t, err)
}
