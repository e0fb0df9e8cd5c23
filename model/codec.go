/*
Package model serializes ensembles into versioned, schema fingerprinted
blobs and restores them, refusing blobs that are corrupt or were produced
for a different schema.

A blob is the 4 byte magic "SYMT", a format version byte and a
Snappy-compressed JSON envelope with the following fields:
  - "fingerprint": the fingerprint of the schema the ensemble was trained for
  - "symptoms" and "labels": the ordered schema lists
  - "config": the training configuration
  - "trees": an array with a node array per tree, each one listing the tree
    nodes in pre-order, so the root is at index 0 and children always come
    after their parent.
*/
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
	"github.com/pbanos/symptree"
	"github.com/pbanos/symptree/feature"
	"github.com/pbanos/symptree/tree"
)

// FormatVersion is the version of the blob format written by Save.
const FormatVersion byte = 1

var magic = []byte("SYMT")

/*
SchemaVersionError is the error returned when a blob was written with an
unsupported format version or for a schema other than the expected one.
*/
type SchemaVersionError struct {
	Reason   string
	Expected string
	Actual   string
}

func (sve *SchemaVersionError) Error() string {
	return fmt.Sprintf("incompatible model: %s: expected %s, got %s", sve.Reason, sve.Expected, sve.Actual)
}

/*
CorruptModelError is the error returned when a blob cannot be decoded or
holds structurally invalid trees.
*/
type CorruptModelError struct {
	Reason string
	Err    error
}

func (cme *CorruptModelError) Error() string {
	if cme.Err != nil {
		return fmt.Sprintf("corrupt model: %s: %v", cme.Reason, cme.Err)
	}
	return fmt.Sprintf("corrupt model: %s", cme.Reason)
}

func (cme *CorruptModelError) Unwrap() error {
	return cme.Err
}

type envelope struct {
	Fingerprint string   `json:"fingerprint"`
	Symptoms    []string `json:"symptoms"`
	Labels      []string `json:"labels"`
	Config      config   `json:"config"`
	Trees       [][]node `json:"trees"`
}

type config struct {
	TreeCount       int     `json:"tree_count"`
	MaxDepth        int     `json:"max_depth"`
	MinSamplesSplit int     `json:"min_samples_split"`
	SampleFraction  float64 `json:"sample_fraction"`
	FeatureFraction float64 `json:"feature_fraction"`
	Seed            int64   `json:"seed"`
	Workers         int     `json:"workers,omitempty"`
}

// Child indices are always positive as the root is at index 0,
// so 0 means no child.
type node struct {
	Feature  int     `json:"f,omitempty"`
	Impurity float64 `json:"i,omitempty"`
	Gain     float64 `json:"g,omitempty"`
	Samples  int     `json:"n"`
	Present  int     `json:"p,omitempty"`
	Absent   int     `json:"a,omitempty"`
	Counts   []int   `json:"c,omitempty"`
}

/*
Save takes an ensemble and returns the blob representing it or an error if
the ensemble has trees that cannot be encoded.
*/
func Save(e *symptree.Ensemble) ([]byte, error) {
	env := &envelope{
		Fingerprint: e.Schema.Fingerprint(),
		Symptoms:    e.Schema.Symptoms(),
		Labels:      e.Schema.Labels(),
		Config:      config(e.Config),
		Trees:       make([][]node, len(e.Trees)),
	}
	for i, t := range e.Trees {
		if t == nil || t.Root == nil {
			return nil, fmt.Errorf("encoding tree %d: empty tree", i)
		}
		nodes, err := flatten(t.Root, nil)
		if err != nil {
			return nil, fmt.Errorf("encoding tree %d: %w", i, err)
		}
		env.Trees[i] = nodes
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding model: %w", err)
	}
	blob := make([]byte, 0, len(magic)+1+snappy.MaxEncodedLen(len(payload)))
	blob = append(blob, magic...)
	blob = append(blob, FormatVersion)
	return append(blob, snappy.Encode(nil, payload)...), nil
}

func flatten(n *tree.Node, nodes []node) ([]node, error) {
	i := len(nodes)
	nodes = append(nodes, node{
		Feature:  n.Feature,
		Impurity: n.Impurity,
		Gain:     n.Gain,
		Samples:  n.Samples,
		Counts:   n.Counts,
	})
	if n.IsLeaf() {
		return nodes, nil
	}
	if n.Present == nil || n.Absent == nil {
		return nil, fmt.Errorf("internal node missing a child")
	}
	var err error
	nodes[i].Present = len(nodes)
	nodes, err = flatten(n.Present, nodes)
	if err != nil {
		return nil, err
	}
	nodes[i].Absent = len(nodes)
	return flatten(n.Absent, nodes)
}

/*
Load takes a blob and returns the ensemble it represents. It returns a
*SchemaVersionError if the blob format version is not supported or its
fingerprint does not match its schema lists, and a *CorruptModelError if it
cannot be decoded or its trees are structurally invalid.
*/
func Load(blob []byte) (*symptree.Ensemble, error) {
	return load(blob, nil)
}

/*
LoadFor works like Load but also returns a *SchemaVersionError if the blob
was written for a schema other than the given one.
*/
func LoadFor(blob []byte, schema *feature.Schema) (*symptree.Ensemble, error) {
	return load(blob, schema)
}

func load(blob []byte, expected *feature.Schema) (*symptree.Ensemble, error) {
	if len(blob) < len(magic)+1 || !bytes.Equal(blob[:len(magic)], magic) {
		return nil, &CorruptModelError{Reason: "not a model blob"}
	}
	if v := blob[len(magic)]; v != FormatVersion {
		return nil, &SchemaVersionError{"unsupported format version", fmt.Sprint(FormatVersion), fmt.Sprint(v)}
	}
	payload, err := snappy.Decode(nil, blob[len(magic)+1:])
	if err != nil {
		return nil, &CorruptModelError{"decompressing payload", err}
	}
	env := &envelope{}
	if err = json.Unmarshal(payload, env); err != nil {
		return nil, &CorruptModelError{"decoding payload", err}
	}
	if fp := feature.Fingerprint(env.Symptoms, env.Labels); fp != env.Fingerprint {
		return nil, &SchemaVersionError{"fingerprint does not match the embedded schema", env.Fingerprint, fp}
	}
	if expected != nil && expected.Fingerprint() != env.Fingerprint {
		return nil, &SchemaVersionError{"model was trained for a different schema", expected.Fingerprint(), env.Fingerprint}
	}
	schema, err := feature.NewSchema(env.Symptoms, env.Labels)
	if err != nil {
		return nil, &CorruptModelError{"invalid schema", err}
	}
	cfg := symptree.Config(env.Config)
	if err = cfg.Validate(); err != nil {
		return nil, &CorruptModelError{"invalid config", err}
	}
	if len(env.Trees) != cfg.TreeCount {
		return nil, &CorruptModelError{Reason: fmt.Sprintf("model has %d trees, config declares %d", len(env.Trees), cfg.TreeCount)}
	}
	trees := make([]*tree.Tree, len(env.Trees))
	for i, nodes := range env.Trees {
		root, err := unflatten(nodes, schema)
		if err != nil {
			return nil, &CorruptModelError{fmt.Sprintf("tree %d", i), err}
		}
		trees[i] = tree.New(root, schema)
	}
	e, err := symptree.NewEnsemble(schema, cfg, trees)
	if err != nil {
		return nil, &CorruptModelError{"assembling ensemble", err}
	}
	return e, nil
}

/*
unflatten takes the pre-order node array of a tree and returns its root
after checking every internal node has two children placed after it, every
node but the root is the child of exactly one node, features are within
the schema and leaf counts are valid predictions for its labels.
*/
func unflatten(nodes []node, schema *feature.Schema) (*tree.Node, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no nodes")
	}
	tns := make([]*tree.Node, len(nodes))
	for i := range tns {
		tns[i] = &tree.Node{}
	}
	referenced := make([]bool, len(nodes))
	for i, n := range nodes {
		tn := tns[i]
		tn.Samples = n.Samples
		if n.Counts != nil {
			if n.Present != 0 || n.Absent != 0 {
				return nil, fmt.Errorf("node %d has both counts and children", i)
			}
			if len(n.Counts) != schema.LabelCount() {
				return nil, fmt.Errorf("node %d has %d counts, schema defines %d labels", i, len(n.Counts), schema.LabelCount())
			}
			p, err := tree.NewPrediction(n.Counts)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			if p.Weight() != n.Samples {
				return nil, fmt.Errorf("node %d counts add up to %d, samples are %d", i, p.Weight(), n.Samples)
			}
			tn.Counts = n.Counts
			continue
		}
		if n.Feature < 0 || n.Feature >= schema.SymptomCount() {
			return nil, fmt.Errorf("node %d splits on feature %d out of range", i, n.Feature)
		}
		for _, c := range []int{n.Present, n.Absent} {
			if c <= i || c >= len(nodes) {
				return nil, fmt.Errorf("node %d has invalid child index %d", i, c)
			}
			if referenced[c] {
				return nil, fmt.Errorf("node %d is referenced more than once", c)
			}
			referenced[c] = true
		}
		tn.Feature = n.Feature
		tn.Impurity = n.Impurity
		tn.Gain = n.Gain
		tn.Present = tns[n.Present]
		tn.Absent = tns[n.Absent]
	}
	for i := 1; i < len(referenced); i++ {
		if !referenced[i] {
			return nil, fmt.Errorf("node %d is not reachable from the root", i)
		}
	}
	return tns[0], nil
}
