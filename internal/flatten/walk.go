package flatten

const (
	stubRefPrefix   = "#/components/schemas/"
	stubDescription = "Circular reference; see the component mentioned in $ref"
)

// StubCycles copies a resolved document graph into a tree. A mapping or
// sequence that is already an ancestor on the current path is replaced by a
// stub pointing at #/components/schemas/<name>, where name is the key under
// which that ancestor was reached. Shared nodes that do not form a cycle are
// copied at every place they appear.
func StubCycles(doc *Node) *Node {
	w := &walker{ancestors: make(map[*Node]string)}
	return w.walk(doc, "")
}

type walker struct {
	// nodes on the path from the root, with the key they were reached by
	ancestors map[*Node]string
}

func (w *walker) walk(n *Node, key string) *Node {
	if n.cycleRef != "" {
		return stub(lastSegment(n.cycleRef))
	}

	if n.Kind == ScalarNode {
		return Scalar(n.Value)
	}

	if name, ok := w.ancestors[n]; ok {
		return stub(name)
	}

	w.ancestors[n] = key
	defer delete(w.ancestors, n)

	if n.Kind == SequenceNode {
		out := &Node{Kind: SequenceNode, Items: make([]*Node, len(n.Items))}
		for i, item := range n.Items {
			// items carry the key of the sequence itself
			out.Items[i] = w.walk(item, key)
		}
		return out
	}

	out := &Node{
		Kind:   MappingNode,
		Keys:   make([]string, len(n.Keys)),
		Values: make([]*Node, len(n.Values)),
	}

	for i, k := range n.Keys {
		out.Keys[i] = k
		out.Values[i] = w.walk(n.Values[i], k)
	}

	return out
}

func stub(name string) *Node {
	n := NewMapping()
	n.Set(refKey, Scalar(stubRefPrefix+name))
	n.Set("description", Scalar(stubDescription))

	return n
}

// Flatten resolves every reference in doc and stubs the ones that would
// expand forever.
func Flatten(doc *Node) (*Node, error) {
	resolved, err := Resolve(doc)
	if err != nil {
		return nil, err
	}

	return StubCycles(resolved), nil
}
