package tree

/*
Node is a node of the tree. A node is either a leaf, with the label counts of
the training examples that reached it, or an internal node splitting on the
presence of a symptom, with both the Present and Absent children set.
*/
type Node struct {
	// Counts holds, for a leaf, the number of training examples reaching it for
	// each label in schema label order. It is nil for internal nodes.
	Counts []int
	// Feature is the index of the symptom an internal node splits on.
	Feature int
	// Impurity is the weighted Gini impurity of the split chosen for an
	// internal node.
	Impurity float64
	// Gain is the decrease in Gini impurity from the examples reaching the
	// internal node to its split.
	Gain float64
	// Samples is the number of training examples that reached the node.
	Samples int
	// Present is the subtree for examples showing the Feature symptom.
	Present *Node
	// Absent is the subtree for examples lacking the Feature symptom.
	Absent *Node
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Present == nil && n.Absent == nil
}

/*
Prediction returns the prediction for examples reaching the leaf or
ErrCannotPredictFromEmptySet if the node holds no counts.
*/
func (n *Node) Prediction() (*Prediction, error) {
	return NewPrediction(n.Counts)
}

func newLeaf(counts []int, samples int) *Node {
	return &Node{Counts: counts, Samples: samples}
}
