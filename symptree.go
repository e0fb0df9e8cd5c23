/*
Package symptree trains random forests of classification trees over binary
symptom vectors and uses them to rank diagnoses for partial symptom
observations.
*/
package symptree

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/pbanos/symptree/dataset"
	"github.com/pbanos/symptree/feature"
	"github.com/pbanos/symptree/tree"
	"golang.org/x/sync/errgroup"
)

// TrainingError represents an error training an ensemble
type TrainingError string

/*
ErrInsufficientData is the error returned by Train when the training set
has fewer than two distinct labels, as an ensemble trained on it could not
discriminate between diagnoses.
*/
const ErrInsufficientData = TrainingError("training set must have at least 2 distinct labels")

func (te TrainingError) Error() string {
	return string(te)
}

/*
Config holds the parameters to train an ensemble.

  - TreeCount is the number of trees in the ensemble.
  - MaxDepth is the maximum depth of each tree, the root being at depth 0.
  - MinSamplesSplit is the minimum number of examples for a node to be split.
  - SampleFraction is the size of each bootstrap sample as a fraction of the
    training set size.
  - FeatureFraction is the size of the symptom subset each tree may split
    on as a fraction of the number of symptoms.
  - Seed is the seed from which the pseudo-random sequence of every tree
    is derived.
  - Workers is the maximum number of trees built concurrently. 0 means
    runtime.GOMAXPROCS(0). It does not affect the trained ensemble.
*/
type Config struct {
	TreeCount       int
	MaxDepth        int
	MinSamplesSplit int
	SampleFraction  float64
	FeatureFraction float64
	Seed            int64
	Workers         int
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		TreeCount:       100,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		SampleFraction:  1.0,
		FeatureFraction: 1.0,
		Seed:            42,
	}
}

/*
ConfigError is the error returned when a Config has a value out of its
allowed range.
*/
type ConfigError struct {
	Field  string
	Reason string
}

func (ce *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", ce.Field, ce.Reason)
}

// Validate returns a *ConfigError for the first invalid field of the config
// or nil if all of them are valid.
func (c Config) Validate() error {
	if c.TreeCount < 1 {
		return &ConfigError{"TreeCount", fmt.Sprintf("must be at least 1, got %d", c.TreeCount)}
	}
	if c.MaxDepth < 0 {
		return &ConfigError{"MaxDepth", fmt.Sprintf("must not be negative, got %d", c.MaxDepth)}
	}
	if c.MinSamplesSplit < 2 {
		return &ConfigError{"MinSamplesSplit", fmt.Sprintf("must be at least 2, got %d", c.MinSamplesSplit)}
	}
	if c.SampleFraction <= 0 || c.SampleFraction > 1 {
		return &ConfigError{"SampleFraction", fmt.Sprintf("must be within (0, 1], got %v", c.SampleFraction)}
	}
	if c.FeatureFraction <= 0 || c.FeatureFraction > 1 {
		return &ConfigError{"FeatureFraction", fmt.Sprintf("must be within (0, 1], got %v", c.FeatureFraction)}
	}
	if c.Workers < 0 {
		return &ConfigError{"Workers", fmt.Sprintf("must not be negative, got %d", c.Workers)}
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

/*
Ensemble is a random forest: an ordered sequence of trees built against the
same schema and the configuration they were trained with.

Ensembles are read-only once trained or loaded and can be shared by
concurrent callers.
*/
type Ensemble struct {
	Trees  []*tree.Tree
	Schema *feature.Schema
	Config Config
}

/*
NewEnsemble takes a schema, a config and a slice of trees and returns an
ensemble with them or an error if the number of trees differs from the
config TreeCount or any tree was built against a different schema.
*/
func NewEnsemble(schema *feature.Schema, cfg Config, trees []*tree.Tree) (*Ensemble, error) {
	if len(trees) != cfg.TreeCount {
		return nil, fmt.Errorf("ensemble has %d trees, config declares %d", len(trees), cfg.TreeCount)
	}
	for i, t := range trees {
		if t == nil || t.Root == nil {
			return nil, fmt.Errorf("tree %d is empty", i)
		}
		if !schema.Equal(t.Schema) {
			return nil, fmt.Errorf("tree %d was built against a different schema", i)
		}
	}
	return &Ensemble{Trees: trees, Schema: schema, Config: cfg}, nil
}

/*
Train takes a context, a training set and a config and returns an ensemble
of cfg.TreeCount trees. Tree i is built from a bootstrap sample of the set
and a random subset of its symptoms, both drawn from a pseudo-random
sequence seeded with cfg.Seed + i, so training twice with the same set and
config produces identical ensembles regardless of cfg.Workers.

Trees are built concurrently by up to cfg.Workers goroutines. The first
failure aborts the whole training and is returned, as is the context error
if it is cancelled before all trees are built.

It returns a *ConfigError for invalid configs and ErrInsufficientData if
the set has fewer than 2 distinct labels.
*/
func Train(ctx context.Context, set *dataset.Set, cfg Config) (*Ensemble, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if set.DistinctLabels() < 2 {
		return nil, ErrInsufficientData
	}
	examples := set.Examples()
	schema := set.Schema()
	trees := make([]*tree.Tree, cfg.TreeCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for i := range trees {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := rand.New(rand.NewSource(cfg.Seed + int64(i)))
			sample := bootstrap(r, examples, cfg.SampleFraction)
			features := featureSubset(r, schema.SymptomCount(), cfg.FeatureFraction)
			t, err := tree.Build(sample, schema, tree.Params{
				MaxDepth:        cfg.MaxDepth,
				MinSamplesSplit: cfg.MinSamplesSplit,
				Features:        features,
			})
			if err != nil {
				return fmt.Errorf("building tree %d: %w", i, err)
			}
			trees[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Ensemble{Trees: trees, Schema: schema, Config: cfg}, nil
}
