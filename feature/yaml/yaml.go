/*
Package yaml provides methods to parse schema specifications, also known
as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/symptree/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata is the content of a metadata document: the schema, the symptom
patterns used to synthesize training data and the default training and
synthesis parameters. Zero values on the parameters mean the document did
not set them.
*/
type Metadata struct {
	Schema    *feature.Schema
	Patterns  []Pattern
	Training  Training
	Synthesis Synthesis
}

/*
Pattern associates a diagnosis label with the symptoms characteristic of it.
*/
type Pattern struct {
	Label    string
	Symptoms []string
}

// Training holds the ensemble parameters declared on a metadata document.
type Training struct {
	Trees           int     `yaml:"trees"`
	MaxDepth        int     `yaml:"max_depth"`
	MinSamplesSplit int     `yaml:"min_samples_split"`
	SampleFraction  float64 `yaml:"sample_fraction"`
	FeatureFraction float64 `yaml:"feature_fraction"`
	Seed            *int64  `yaml:"seed"`
	Workers         int     `yaml:"workers"`
}

// Synthesis holds the dataset synthesis parameters declared on a metadata document.
type Synthesis struct {
	Samples        int     `yaml:"samples"`
	Characteristic float64 `yaml:"characteristic"`
	Background     float64 `yaml:"background"`
	Seed           *int64  `yaml:"seed"`
	TestFraction   float64 `yaml:"test_fraction"`
}

type document struct {
	Symptoms  []string      `yaml:"symptoms"`
	Labels    []string      `yaml:"labels"`
	Patterns  yaml.MapSlice `yaml:"patterns"`
	Training  Training      `yaml:"training"`
	Synthesis Synthesis     `yaml:"synthesis"`
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the Metadata parsed from it or an error.
The YML is expected to be an object with the following properties:
  * symptoms: a list with the names of the symptoms, in vector order (required)
  * labels: a list with the diagnosis labels. When missing, the labels are
    taken from the patterns property in document order.
  * patterns: an object with a property for each label whose value is the
    list of symptoms characteristic of it
  * training: an object with trees, max_depth, min_samples_split,
    sample_fraction, feature_fraction, seed and workers properties
  * synthesis: an object with samples, characteristic, background, seed and
    test_fraction properties
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	doc := &document{}
	err := yaml.Unmarshal(md, doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(doc.Symptoms) == 0 {
		return nil, fmt.Errorf("metadata has no symptom information")
	}
	patterns, err := parsePatterns(doc.Patterns)
	if err != nil {
		return nil, err
	}
	labels := doc.Labels
	if len(labels) == 0 {
		for _, p := range patterns {
			labels = append(labels, p.Label)
		}
	}
	schema, err := feature.NewSchema(doc.Symptoms, labels)
	if err != nil {
		return nil, fmt.Errorf("building schema from metadata: %v", err)
	}
	for _, p := range patterns {
		if _, ok := schema.LabelIndex(p.Label); !ok {
			return nil, fmt.Errorf("pattern for unknown label %q", p.Label)
		}
		for _, s := range p.Symptoms {
			if _, ok := schema.SymptomIndex(s); !ok {
				return nil, fmt.Errorf("pattern for label %q references unknown symptom %q", p.Label, s)
			}
		}
	}
	return &Metadata{
		Schema:    schema,
		Patterns:  patterns,
		Training:  doc.Training,
		Synthesis: doc.Synthesis,
	}, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed Metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}

func parsePatterns(ms yaml.MapSlice) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(ms))
	for _, item := range ms {
		label := fmt.Sprintf("%v", item.Key)
		p := Pattern{Label: label}
		switch values := item.Value.(type) {
		case nil:
		case []interface{}:
			for _, v := range values {
				p.Symptoms = append(p.Symptoms, fmt.Sprintf("%v", v))
			}
		default:
			return nil, fmt.Errorf("invalid pattern declaration of type %T for label %q", item.Value, label)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
