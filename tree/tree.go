/*
Package tree provides binary classification trees over symptom vectors, a
CART builder for them and the leaf predictions they produce.
*/
package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/symptree/feature"
)

// Tree represents a classification tree. It is composed of its
// root node and the schema it was built against, which gives
// meaning to the symptom and label indices in its nodes.
// Trees are immutable once built.
type Tree struct {
	Root   *Node
	Schema *feature.Schema
}

// New takes a root Node and a schema and returns a tree
// with them.
func New(root *Node, schema *feature.Schema) *Tree {
	return &Tree{root, schema}
}

/*
Leaf takes a symptom vector and returns the leaf it reaches when routed from
the root, following the Present child of every internal node whose symptom
is present in the vector and the Absent child otherwise. It returns an error
if the vector length does not match the schema or the tree is malformed.
*/
func (t *Tree) Leaf(vector []bool) (*Node, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("nil tree cannot route vectors")
	}
	if len(vector) != t.Schema.SymptomCount() {
		return nil, fmt.Errorf("vector has %d entries, schema defines %d symptoms", len(vector), t.Schema.SymptomCount())
	}
	n := t.Root
	for !n.IsLeaf() {
		if n.Feature < 0 || n.Feature >= len(vector) {
			return nil, fmt.Errorf("node splits on feature %d out of range", n.Feature)
		}
		if vector[n.Feature] {
			n = n.Present
		} else {
			n = n.Absent
		}
		if n == nil {
			return nil, fmt.Errorf("internal node is missing a child")
		}
	}
	return n, nil
}

// Predict takes a symptom vector and returns the prediction of the leaf
// it reaches or an error if the prediction could not be made.
func (t *Tree) Predict(vector []bool) (*Prediction, error) {
	n, err := t.Leaf(vector)
	if err != nil {
		return nil, err
	}
	return n.Prediction()
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true. Children
// are visited Present first.
// If the given context times out or is cancelled, the context
// error is returned. If the call to the function returns an
// error, the traversing is aborted and the error is returned.
// Otherwise, when the traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	return traverse(ctx, t.Root, bottomup, f)
}

func traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
		if err != nil {
			return err
		}
	}
	for _, sn := range []*Node{n.Present, n.Absent} {
		if sn == nil {
			continue
		}
		err = traverse(ctx, sn, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

// Depth returns the length of the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	return depth(t.Root)
}

func depth(n *Node) int {
	if n == nil || n.IsLeaf() {
		return 0
	}
	d := depth(n.Present)
	if ad := depth(n.Absent); ad > d {
		d = ad
	}
	return d + 1
}

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() int {
	var leaves int
	t.Traverse(context.Background(), false, func(_ context.Context, n *Node) error {
		if n.IsLeaf() {
			leaves++
		}
		return nil
	})
	return leaves
}

func (t *Tree) String() string {
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n *Node) string {
	var result string
	if n.IsLeaf() {
		result = fmt.Sprintf("{ %s }\n", t.leafString(n))
	} else {
		result = fmt.Sprintf("[%s?] gini=%.4f samples=%d\n|\n", t.Schema.Symptom(n.Feature), n.Impurity, n.Samples)
	}
	children := []struct {
		tag string
		n   *Node
	}{{"yes", n.Present}, {"no", n.Absent}}
	for i, c := range children {
		if c.n == nil {
			continue
		}
		for j, line := range strings.Split(t.subtreeString(c.n), "\n") {
			if len(line) == 0 {
				continue
			}
			switch {
			case j == 0:
				result = fmt.Sprintf("%s|__%s: %s\n", result, c.tag, line)
			case i == len(children)-1:
				result = fmt.Sprintf("%s   %s\n", result, line)
			default:
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}

func (t *Tree) leafString(n *Node) string {
	p, err := n.Prediction()
	if err != nil {
		return fmt.Sprintf("ERROR: %s", err.Error())
	}
	parts := make([]string, 0, len(n.Counts))
	for i, c := range n.Counts {
		if c > 0 {
			parts = append(parts, fmt.Sprintf("%s: %.3f", t.Schema.Label(i), p.ProbabilityOf(i)))
		}
	}
	return fmt.Sprintf("%s (n=%d)", strings.Join(parts, ", "), p.Weight())
}
