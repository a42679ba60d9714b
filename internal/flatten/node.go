package flatten

import "encoding/json"

type Kind int

const (
	ScalarNode Kind = iota
	MappingNode
	SequenceNode
)

func (k Kind) String() string {
	switch k {
	case MappingNode:
		return "mapping"
	case SequenceNode:
		return "sequence"
	default:
		return "scalar"
	}
}

// Node is one element of a document tree. Mapping keys keep the order in
// which they were decoded. Scalar values are string, json.Number, bool, nil
// or a non-finite float64.
type Node struct {
	Kind   Kind
	Keys   []string
	Values []*Node
	Items  []*Node
	Value  any

	// set on pointers that only lead back to themselves
	cycleRef string
}

// creates a scalar node
func Scalar(v any) *Node {
	return &Node{Kind: ScalarNode, Value: v}
}

// creates an empty mapping node
func NewMapping() *Node {
	return &Node{Kind: MappingNode}
}

// creates a sequence node holding items
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceNode, Items: items}
}

// sets key to v, keeping the original position when the key already exists
func (n *Node) Set(key string, v *Node) {
	for i, k := range n.Keys {
		if k == key {
			n.Values[i] = v
			return
		}
	}

	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

// returns the value stored under key
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != MappingNode {
		return nil, false
	}

	for i, k := range n.Keys {
		if k == key {
			return n.Values[i], true
		}
	}

	return nil, false
}

// Len returns the number of mapping entries or sequence items.
func (n *Node) Len() int {
	switch n.Kind {
	case MappingNode:
		return len(n.Keys)
	case SequenceNode:
		return len(n.Items)
	default:
		return 0
	}
}

// reports whether n is a reference pointer and returns its target
func refOf(n *Node) (string, bool) {
	if n == nil || n.Kind != MappingNode {
		return "", false
	}

	v, ok := n.Get(refKey)
	if !ok || v.Kind != ScalarNode {
		return "", false
	}

	s, ok := v.Value.(string)
	return s, ok
}

// converts a node into plain Go values (map[string]any, []any, scalars).
// key order is lost; intended for comparisons and debugging output.
func ToValue(n *Node) any {
	switch n.Kind {
	case MappingNode:
		m := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			m[k] = ToValue(n.Values[i])
		}
		return m
	case SequenceNode:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = ToValue(item)
		}
		return items
	default:
		if num, ok := n.Value.(json.Number); ok {
			return num.String()
		}
		return n.Value
	}
}
