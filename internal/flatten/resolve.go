package flatten

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	refKey = "$ref"

	// bounds pointer lookups that pass through other references
	maxLookupDepth = 64
)

// Resolve replaces every reference pointer in doc with the node it points
// to. Each pointer location resolves to exactly one node, so repeated
// references share identity and reference cycles become cycles in the
// returned graph. Use StubCycles to turn the result back into a tree.
//
// Only local pointers ("#/a/b") are supported. Keys next to $ref are
// dropped. doc is not modified.
func Resolve(doc *Node) (*Node, error) {
	r := &resolver{
		root:     doc,
		memo:     make(map[string]*Node),
		building: make(map[*Node]*Node),
	}

	return r.resolveAt("", doc)
}

type resolver struct {
	root *Node
	// canonical pointer location -> resolved node
	memo map[string]*Node
	// source node -> copy, for nodes whose children are being built. a
	// source that contains itself (a recursive yaml alias) maps back to its
	// copy, so the loop is kept as a graph cycle.
	building map[*Node]*Node
	depth    int
}

func (r *resolver) resolveAt(loc string, src *Node) (*Node, error) {
	if n, ok := r.memo[loc]; ok {
		return n, nil
	}

	if _, ok := refOf(src); ok {
		return r.resolveChain(loc, src)
	}

	return r.build(loc, src, nil)
}

// follows a run of pointers until it reaches a node with content. when the
// run loops back on itself every pointer in it becomes a cycle marker.
func (r *resolver) resolveChain(loc string, src *Node) (*Node, error) {
	chain := []string{loc}
	inChain := map[string]bool{loc: true}
	var refs []string

	cur := src
	for {
		ref, _ := refOf(cur)
		refs = append(refs, ref)

		targetLoc, target, err := r.locate(ref)
		if err != nil {
			return nil, err
		}

		n, seen := r.memo[targetLoc]
		if seen && n.cycleRef == "" {
			for _, l := range chain {
				r.memo[l] = n
			}
			return n, nil
		}

		// looping back, or running into a loop found earlier
		if seen || inChain[targetLoc] {
			for i, l := range chain {
				r.memo[l] = cycleMarker(refs[i])
			}
			return r.memo[loc], nil
		}

		if _, ok := refOf(target); !ok {
			return r.build(targetLoc, target, chain)
		}

		chain = append(chain, targetLoc)
		inChain[targetLoc] = true
		cur = target
	}
}

// copies a non-pointer node, registering the copy under loc and under every
// pointer location in aliases before descending
func (r *resolver) build(loc string, src *Node, aliases []string) (*Node, error) {
	if out, ok := r.building[src]; ok {
		r.memo[loc] = out
		for _, l := range aliases {
			r.memo[l] = out
		}
		return out, nil
	}

	out := &Node{Kind: src.Kind, Value: src.Value}

	r.memo[loc] = out
	for _, l := range aliases {
		r.memo[l] = out
	}

	if src.Kind == MappingNode || src.Kind == SequenceNode {
		r.building[src] = out
		defer delete(r.building, src)
	}

	switch src.Kind {
	case MappingNode:
		out.Keys = make([]string, 0, len(src.Keys))
		out.Values = make([]*Node, 0, len(src.Values))

		for i, k := range src.Keys {
			child, err := r.resolveAt(loc+"/"+escapeToken(k), src.Values[i])
			if err != nil {
				return nil, err
			}
			out.Keys = append(out.Keys, k)
			out.Values = append(out.Values, child)
		}

	case SequenceNode:
		out.Items = make([]*Node, 0, len(src.Items))

		for i, item := range src.Items {
			child, err := r.resolveAt(loc+"/"+strconv.Itoa(i), item)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}
	}

	return out, nil
}

// finds the node a local pointer refers to and returns its canonical
// location. pointers met part way along the path are followed.
func (r *resolver) locate(ref string) (string, *Node, error) {
	r.depth++
	defer func() { r.depth-- }()

	if r.depth > maxLookupDepth {
		return "", nil, &UnresolvableReferenceError{Ref: ref, Reason: "too many nested references along the path"}
	}

	tokens, err := parsePointer(ref)
	if err != nil {
		return "", nil, err
	}

	loc := ""
	cur := r.root

	for _, tok := range tokens {
		loc, cur, err = r.deref(ref, loc, cur)
		if err != nil {
			return "", nil, err
		}

		switch cur.Kind {
		case MappingNode:
			child, ok := cur.Get(tok)
			if !ok {
				return "", nil, &UnresolvableReferenceError{Ref: ref, Reason: "key " + strconv.Quote(tok) + " not found"}
			}
			cur = child

		case SequenceNode:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(cur.Items) {
				return "", nil, &UnresolvableReferenceError{Ref: ref, Reason: "index " + strconv.Quote(tok) + " out of range"}
			}
			cur = cur.Items[idx]

		default:
			return "", nil, &UnresolvableReferenceError{Ref: ref, Reason: "cannot descend into scalar at " + strconv.Quote(tok)}
		}

		loc += "/" + escapeToken(tok)
	}

	return loc, cur, nil
}

// replaces a pointer node by its target, repeatedly
func (r *resolver) deref(ref, loc string, n *Node) (string, *Node, error) {
	seen := make(map[string]bool)

	for {
		target, ok := refOf(n)
		if !ok {
			return loc, n, nil
		}

		if seen[loc] {
			return "", nil, &UnresolvableReferenceError{Ref: ref, Reason: "path runs through a reference loop"}
		}
		seen[loc] = true

		var err error
		loc, n, err = r.locate(target)
		if err != nil {
			return "", nil, err
		}
	}
}

func cycleMarker(ref string) *Node {
	n := NewMapping()
	n.Set(refKey, Scalar(ref))
	n.cycleRef = ref

	return n
}

// splits a local JSON pointer ("#/a/b~1c") into unescaped tokens
func parsePointer(ref string) ([]string, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, &UnresolvableReferenceError{Ref: ref, Reason: "only local references are supported"}
	}

	frag := ref[1:]
	if frag == "" {
		return nil, nil
	}

	if !strings.HasPrefix(frag, "/") {
		return nil, &UnresolvableReferenceError{Ref: ref, Reason: "pointer must start with #/"}
	}

	parts := strings.Split(frag[1:], "/")
	tokens := make([]string, len(parts))

	for i, p := range parts {
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		tokens[i] = p
	}

	return tokens, nil
}

func escapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// returns the last token of a pointer, used to name stubs
func lastSegment(ref string) string {
	tokens, err := parsePointer(ref)
	if err != nil || len(tokens) == 0 {
		return strings.TrimPrefix(ref, "#")
	}

	return tokens[len(tokens)-1]
}
