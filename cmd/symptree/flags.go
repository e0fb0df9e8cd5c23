package main

import (
	"context"
	"fmt"

	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/dataset"
	"github.com/pbanos/symptree/feature"
	"github.com/pbanos/symptree/feature/yaml"
	"github.com/pbanos/symptree/model"
	"github.com/pbanos/symptree/store"
	"github.com/pbanos/symptree/store/backend"
	"github.com/spf13/cobra"
)

const defaultStoreLocation = "models"

type storeConfig struct {
	location  string
	key       string
	cacheSize int
}

// addFlags adds the store flags to cmd, and the key flag unless keyUsage is empty.
func (sc *storeConfig) addFlags(cmd *cobra.Command, keyUsage string) {
	cmd.Flags().StringVarP(&(sc.location), "store", "s", defaultStoreLocation, "where models are stored: a directory path, a SQLite3 (.db) file, a redis://, postgresql:// or mongodb:// URL, or mem://")
	if keyUsage != "" {
		cmd.Flags().StringVarP(&(sc.key), "key", "k", "", keyUsage)
	}
	cmd.Flags().IntVar(&(sc.cacheSize), "cache-size", 0, "number of models to keep in an in-memory cache in front of the store (0 disables it)")
}

func (sc *storeConfig) Validate() error {
	if sc.location == "" {
		return fmt.Errorf("store flag cannot be empty")
	}
	if sc.cacheSize < 0 {
		return fmt.Errorf("cache-size flag cannot be negative")
	}
	return nil
}

func (sc *storeConfig) options() backend.Options {
	return backend.Options{CacheSize: sc.cacheSize}
}

/*
loadEnsemble opens the configured store and retrieves the model under the
configured key, checking it was trained for the given schema unless it is nil.
*/
func (sc *storeConfig) loadEnsemble(ctx context.Context, schema *feature.Schema) (*symptree.Ensemble, error) {
	var e *symptree.Ensemble
	err := backend.With(ctx, sc.location, sc.options(), func(s store.Store) error {
		var err error
		e, err = model.Get(ctx, s, sc.key, schema)
		return err
	})
	return e, err
}

type synthesisConfig struct {
	samples        int
	seed           int64
	testFraction   float64
	characteristic float64
	background     float64
}

func (sc *synthesisConfig) addFlags(cmd *cobra.Command, withTestFraction bool) {
	cmd.Flags().IntVar(&(sc.samples), "samples", 1000, "number of examples to synthesize from the metadata patterns")
	cmd.Flags().Int64Var(&(sc.seed), "data-seed", 42, "seed for the synthesized examples")
	cmd.Flags().Float64Var(&(sc.characteristic), "characteristic", dataset.DefaultCharacteristicProbability, "probability of a symptom characteristic of a label being present")
	cmd.Flags().Float64Var(&(sc.background), "background", dataset.DefaultBackgroundProbability, "probability of any other symptom being present")
	if withTestFraction {
		cmd.Flags().Float64Var(&(sc.testFraction), "test-fraction", 0.2, "fraction of the synthesized examples held out to test the model")
	}
}

/*
resolve sets the parameters the metadata declares unless they were given
as flags.
*/
func (sc *synthesisConfig) resolve(cmd *cobra.Command, md yaml.Synthesis) {
	changed := cmd.Flags().Changed
	if !changed("samples") && md.Samples > 0 {
		sc.samples = md.Samples
	}
	if !changed("data-seed") && md.Seed != nil {
		sc.seed = *md.Seed
	}
	if !changed("characteristic") && md.Characteristic > 0 {
		sc.characteristic = md.Characteristic
	}
	if !changed("background") && md.Background > 0 {
		sc.background = md.Background
	}
	if !changed("test-fraction") && md.TestFraction > 0 {
		sc.testFraction = md.TestFraction
	}
}

func (sc *synthesisConfig) synthesize(md *yaml.Metadata) (*dataset.Set, error) {
	patterns := make(map[string][]string, len(md.Patterns))
	for _, p := range md.Patterns {
		patterns[p.Label] = p.Symptoms
	}
	ps, err := dataset.NewPatternSynthesizer(md.Schema, patterns)
	if err != nil {
		return nil, err
	}
	ps.Characteristic = sc.characteristic
	ps.Background = sc.background
	return ps.Synthesize(sc.samples, sc.seed)
}

type trainingConfig struct {
	symptree.Config
}

func (tc *trainingConfig) addFlags(cmd *cobra.Command) {
	d := symptree.DefaultConfig()
	cmd.Flags().IntVar(&(tc.TreeCount), "trees", d.TreeCount, "number of trees in the forest")
	cmd.Flags().IntVar(&(tc.MaxDepth), "max-depth", d.MaxDepth, "maximum depth of the trees")
	cmd.Flags().IntVar(&(tc.MinSamplesSplit), "min-samples-split", d.MinSamplesSplit, "minimum number of examples for a node to be split")
	cmd.Flags().Float64Var(&(tc.SampleFraction), "sample-fraction", d.SampleFraction, "size of each bootstrap sample as a fraction of the training set")
	cmd.Flags().Float64Var(&(tc.FeatureFraction), "feature-fraction", d.FeatureFraction, "fraction of the symptoms each tree may split on")
	cmd.Flags().Int64Var(&(tc.Seed), "seed", d.Seed, "seed for bootstrap samples and symptom subsets")
	cmd.Flags().IntVarP(&(tc.Workers), "workers", "w", 0, "number of trees to build concurrently (defaults to 0: one per CPU)")
}

/*
resolve sets the parameters the metadata declares unless they were given
as flags.
*/
func (tc *trainingConfig) resolve(cmd *cobra.Command, md yaml.Training) {
	changed := cmd.Flags().Changed
	if !changed("trees") && md.Trees > 0 {
		tc.TreeCount = md.Trees
	}
	if !changed("max-depth") && md.MaxDepth > 0 {
		tc.MaxDepth = md.MaxDepth
	}
	if !changed("min-samples-split") && md.MinSamplesSplit > 0 {
		tc.MinSamplesSplit = md.MinSamplesSplit
	}
	if !changed("sample-fraction") && md.SampleFraction > 0 {
		tc.SampleFraction = md.SampleFraction
	}
	if !changed("feature-fraction") && md.FeatureFraction > 0 {
		tc.FeatureFraction = md.FeatureFraction
	}
	if !changed("seed") && md.Seed != nil {
		tc.Seed = *md.Seed
	}
	if !changed("workers") && md.Workers > 0 {
		tc.Workers = md.Workers
	}
}
