/*
Package feature defines the vector space in which diagnoses are learned
and predicted: an ordered list of symptoms, whose positions index the
symptom vectors, and an ordered list of diagnosis labels.
*/
package feature

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

/*
Schema represents the ordered symptoms and diagnosis labels a model is
trained and queried against. A Schema is immutable once created: its
accessors return copies of the underlying slices.
*/
type Schema struct {
	symptoms     []string
	labels       []string
	symptomIndex map[string]int
	labelIndex   map[string]int
	fingerprint  string
}

/*
NewSchema takes a slice of symptom names and a slice of diagnosis labels and
returns a Schema for them or an error if any of the slices is empty, contains
an empty name or a name more than once.
The order of the symptoms defines the index of each symptom in symptom vectors.
*/
func NewSchema(symptoms, labels []string) (*Schema, error) {
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("schema needs at least one symptom")
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("schema needs at least one label")
	}
	symptomIndex, err := indexNames("symptom", symptoms)
	if err != nil {
		return nil, err
	}
	labelIndex, err := indexNames("label", labels)
	if err != nil {
		return nil, err
	}
	s := &Schema{
		symptoms:     append([]string{}, symptoms...),
		labels:       append([]string{}, labels...),
		symptomIndex: symptomIndex,
		labelIndex:   labelIndex,
	}
	s.fingerprint = Fingerprint(s.symptoms, s.labels)
	return s, nil
}

// Symptoms returns a copy of the ordered symptom names.
func (s *Schema) Symptoms() []string {
	return append([]string{}, s.symptoms...)
}

// Labels returns a copy of the ordered diagnosis labels.
func (s *Schema) Labels() []string {
	return append([]string{}, s.labels...)
}

// SymptomCount returns the length of symptom vectors in the schema.
func (s *Schema) SymptomCount() int {
	return len(s.symptoms)
}

// LabelCount returns the number of diagnosis labels in the schema.
func (s *Schema) LabelCount() int {
	return len(s.labels)
}

// Symptom returns the name of the symptom at index i.
func (s *Schema) Symptom(i int) string {
	return s.symptoms[i]
}

// Label returns the diagnosis label at index i.
func (s *Schema) Label(i int) string {
	return s.labels[i]
}

/*
SymptomIndex takes a symptom name and returns its index in symptom vectors
and true, or -1 and false if the schema has no such symptom.
*/
func (s *Schema) SymptomIndex(name string) (int, bool) {
	i, ok := s.symptomIndex[name]
	if !ok {
		return -1, false
	}
	return i, true
}

/*
LabelIndex takes a diagnosis label and returns its position in the schema
labels and true, or -1 and false if the label is unknown.
*/
func (s *Schema) LabelIndex(label string) (int, bool) {
	i, ok := s.labelIndex[label]
	if !ok {
		return -1, false
	}
	return i, true
}

// Fingerprint returns the hex-encoded fingerprint of the schema.
func (s *Schema) Fingerprint() string {
	return s.fingerprint
}

// Equal reports whether both schemas have the same ordered symptoms and labels.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.fingerprint == o.fingerprint
}

func (s *Schema) String() string {
	return fmt.Sprintf("{symptoms: %v, labels: %v}", s.symptoms, s.labels)
}

/*
Fingerprint takes ordered symptom and label lists and returns the hex encoded
SHA-256 digest of their length-prefixed serialization, so that two lists only
share a fingerprint when they hold the same names in the same order.
*/
func Fingerprint(symptoms, labels []string) string {
	h := sha256.New()
	var buf [binary.MaxVarintLen64]byte
	for _, names := range [][]string{symptoms, labels} {
		n := binary.PutUvarint(buf[:], uint64(len(names)))
		h.Write(buf[:n])
		for _, name := range names {
			n = binary.PutUvarint(buf[:], uint64(len(name)))
			h.Write(buf[:n])
			h.Write([]byte(name))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func indexNames(kind string, names []string) (map[string]int, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%s at position %d has an empty name", kind, i)
		}
		if j, ok := index[name]; ok {
			return nil, fmt.Errorf("%s %q declared twice, at positions %d and %d", kind, name, j, i)
		}
		index[name] = i
	}
	return index, nil
}
