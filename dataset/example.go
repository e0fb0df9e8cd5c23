package dataset

import (
	"errors"
	"fmt"

	"github.com/pbanos/symptree/feature"
)

/*
Example represents an observation from which to learn: the presence (true)
or absence (false) of every symptom in a schema, in schema order, and the
diagnosis label assigned to it.
*/
type Example struct {
	Symptoms []bool
	Label    string
}

/*
InvalidExampleError is the error returned when an example does not conform
to the schema it is checked against.
*/
type InvalidExampleError struct {
	Index  int
	Reason string
}

func (e *InvalidExampleError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid example: %s", e.Reason)
	}
	return fmt.Sprintf("invalid example %d: %s", e.Index, e.Reason)
}

/*
Validate takes a schema and returns an *InvalidExampleError if the example
symptom vector does not have exactly one entry per schema symptom or its
label is not a schema label, nil otherwise.
*/
func (e Example) Validate(schema *feature.Schema) error {
	if len(e.Symptoms) != schema.SymptomCount() {
		return &InvalidExampleError{-1, fmt.Sprintf("has %d symptom entries, schema defines %d", len(e.Symptoms), schema.SymptomCount())}
	}
	if _, ok := schema.LabelIndex(e.Label); !ok {
		return &InvalidExampleError{-1, fmt.Sprintf("label %q is not defined in the schema", e.Label)}
	}
	return nil
}

/*
ValidateAll takes a schema and a slice of examples and validates each of
them against the schema in order. The *InvalidExampleError for the first
invalid example carries its position in the slice. Other errors are
returned unchanged.
*/
func ValidateAll(schema *feature.Schema, examples []Example) error {
	for i, e := range examples {
		err := e.Validate(schema)
		if err == nil {
			continue
		}
		var iee *InvalidExampleError
		if errors.As(err, &iee) {
			return &InvalidExampleError{i, iee.Reason}
		}
		return err
	}
	return nil
}

// Has reports whether the symptom at index i is present in the example.
func (e Example) Has(i int) bool {
	return e.Symptoms[i]
}

func (e Example) String() string {
	bits := make([]byte, len(e.Symptoms))
	for i, present := range e.Symptoms {
		if present {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
	}
	return fmt.Sprintf("[%s %s]", bits, e.Label)
}
