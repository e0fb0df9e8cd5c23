package model

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/snappy"
	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/dataset"
	"github.com/pbanos/symptree/feature"
	"github.com/pbanos/symptree/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaComparer = cmp.Comparer(func(a, b *feature.Schema) bool { return a.Equal(b) })

func trainedEnsemble(t *testing.T) *symptree.Ensemble {
	t.Helper()
	schema, err := feature.NewSchema(
		[]string{"fever", "cough", "fatigue", "headache", "rash", "nausea"},
		[]string{"Influenza", "Migraine", "Allergies", "Gastroenteritis"},
	)
	require.NoError(t, err)
	ps, err := dataset.NewPatternSynthesizer(schema, map[string][]string{
		"Influenza":       {"fever", "cough", "fatigue"},
		"Migraine":        {"headache", "nausea"},
		"Allergies":       {"cough", "rash"},
		"Gastroenteritis": {"nausea", "fever"},
	})
	require.NoError(t, err)
	set, err := ps.Synthesize(200, 3)
	require.NoError(t, err)
	cfg := symptree.DefaultConfig()
	cfg.TreeCount = 10
	cfg.MaxDepth = 6
	e, err := symptree.Train(context.Background(), set, cfg)
	require.NoError(t, err)
	return e
}

func blobFor(t *testing.T, env *envelope) []byte {
	t.Helper()
	payload, err := json.Marshal(env)
	require.NoError(t, err)
	return append(append(append([]byte{}, magic...), FormatVersion), snappy.Encode(nil, payload)...)
}

func decodedEnvelope(t *testing.T, blob []byte) *envelope {
	t.Helper()
	payload, err := snappy.Decode(nil, blob[len(magic)+1:])
	require.NoError(t, err)
	env := &envelope{}
	require.NoError(t, json.Unmarshal(payload, env))
	return env
}

func TestRoundTrip(t *testing.T) {
	e := trainedEnsemble(t)
	blob, err := Save(e)
	require.NoError(t, err)
	assert.Equal(t, "SYMT", string(blob[:4]))
	assert.Equal(t, FormatVersion, blob[4])

	loaded, err := Load(blob)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(e, loaded, schemaComparer))

	r := rand.New(rand.NewSource(9))
	for i := 0; i < 100; i++ {
		vector := make([]bool, e.Schema.SymptomCount())
		for j := range vector {
			vector[j] = r.Intn(3) == 0
		}
		want, err := e.PredictVector(vector)
		require.NoError(t, err)
		got, err := loaded.PredictVector(vector)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	again, err := Save(loaded)
	require.NoError(t, err)
	assert.Equal(t, blob, again)
}

func TestLoadFor(t *testing.T) {
	e := trainedEnsemble(t)
	blob, err := Save(e)
	require.NoError(t, err)

	_, err = LoadFor(blob, e.Schema)
	require.NoError(t, err)

	reordered, err := feature.NewSchema(
		[]string{"cough", "fever", "fatigue", "headache", "rash", "nausea"},
		e.Schema.Labels(),
	)
	require.NoError(t, err)
	_, err = LoadFor(blob, reordered)
	var sve *SchemaVersionError
	require.True(t, errors.As(err, &sve))
	assert.Equal(t, reordered.Fingerprint(), sve.Expected)
}

func TestLoadSchemaVersionErrors(t *testing.T) {
	blob, err := Save(trainedEnsemble(t))
	require.NoError(t, err)
	var sve *SchemaVersionError

	future := append([]byte{}, blob...)
	future[4] = FormatVersion + 1
	_, err = Load(future)
	require.True(t, errors.As(err, &sve))

	env := decodedEnvelope(t, blob)
	env.Labels[0], env.Labels[1] = env.Labels[1], env.Labels[0]
	_, err = Load(blobFor(t, env))
	require.True(t, errors.As(err, &sve))
}

func TestLoadCorruptModels(t *testing.T) {
	blob, err := Save(trainedEnsemble(t))
	require.NoError(t, err)

	mutations := map[string]func(env *envelope){
		"missing child": func(env *envelope) {
			for i, n := range env.Trees[0] {
				if n.Counts == nil {
					env.Trees[0][i].Absent = 0
					return
				}
			}
		},
		"backward child": func(env *envelope) {
			env.Trees[0][0].Present = 0
		},
		"shared child": func(env *envelope) {
			env.Trees[0][0].Absent = env.Trees[0][0].Present
		},
		"feature out of range": func(env *envelope) {
			env.Trees[0][0].Feature = len(env.Symptoms)
		},
		"counts length": func(env *envelope) {
			last := len(env.Trees[0]) - 1
			env.Trees[0][last].Counts = append(env.Trees[0][last].Counts, 1)
		},
		"negative counts": func(env *envelope) {
			last := len(env.Trees[0]) - 1
			env.Trees[0][last].Counts[0] = -1
		},
		"tree count": func(env *envelope) {
			env.Trees = env.Trees[1:]
		},
		"empty tree": func(env *envelope) {
			env.Trees[2] = nil
		},
		"invalid config": func(env *envelope) {
			env.Config.FeatureFraction = 0
		},
	}
	for name, mutate := range mutations {
		env := decodedEnvelope(t, blob)
		require.False(t, env.Trees[0][0].Counts != nil, "root of the first tree must be internal")
		mutate(env)
		_, err := Load(blobFor(t, env))
		var cme *CorruptModelError
		assert.True(t, errors.As(err, &cme), "%s: %v", name, err)
	}

	for name, b := range map[string][]byte{
		"empty":     nil,
		"bad magic": append([]byte("BOTA"), blob[4:]...),
		"truncated": blob[:len(blob)/2],
	} {
		_, err := Load(b)
		var cme *CorruptModelError
		assert.True(t, errors.As(err, &cme), "%s: %v", name, err)
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	e := trainedEnsemble(t)
	s := store.NewMemoryStore()
	defer s.Close(ctx)

	require.NoError(t, Put(ctx, s, "flu", e))
	loaded, err := Get(ctx, s, "flu", e.Schema)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(e, loaded, schemaComparer))

	loaded, err = Get(ctx, s, "flu", nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(e, loaded, schemaComparer))

	_, err = Get(ctx, s, "cold", nil)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
