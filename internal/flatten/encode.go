package flatten

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const indent = 2

// Encode writes doc as JSON (two-space indent) or block-style YAML. Mapping
// keys are written in document order and non-ASCII text is kept as is.
func Encode(w io.Writer, doc *Node, format Format) error {
	switch format {
	case JSON:
		return encodeJSON(w, doc)
	case YAML:
		return encodeYAML(w, doc)
	default:
		return fmt.Errorf("cannot encode format %s", format)
	}
}

func encodeJSON(w io.Writer, doc *Node) error {
	var compact bytes.Buffer
	if err := writeJSON(&compact, doc, "#"); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return fmt.Errorf("failed to indent json: %w", err)
	}
	out.WriteByte('\n')

	_, err := w.Write(out.Bytes())
	return err
}

// path is the JSON pointer of n, used in errors
func writeJSON(buf *bytes.Buffer, n *Node, path string) error {
	switch n.Kind {
	case MappingNode:
		buf.WriteByte('{')
		for i, k := range n.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := marshalScalar(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')

			if err := writeJSON(buf, n.Values[i], path+"/"+escapeToken(k)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	default:
		if f, ok := n.Value.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			return &UnencodableValueError{Path: path, Value: yamlScalarNode(f).Value, Format: JSON}
		}

		b, err := marshalScalar(n.Value)
		if err != nil {
			return fmt.Errorf("value at %s: %w", path, err)
		}
		buf.Write(b)
	}

	return nil
}

// json.Marshal escapes <, > and &, which would mangle descriptions
func marshalScalar(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeYAML(w io.Writer, doc *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)

	if err := enc.Encode(toYAML(doc)); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}

	return enc.Close()
}

func toYAML(n *Node) *yaml.Node {
	switch n.Kind {
	case MappingNode:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, k := range n.Keys {
			y.Content = append(y.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toYAML(n.Values[i]),
			)
		}
		return y

	case SequenceNode:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.Items {
			y.Content = append(y.Content, toYAML(item))
		}
		return y

	default:
		return yamlScalarNode(n.Value)
	}
}

func yamlScalarNode(v any) *yaml.Node {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		s := "false"
		if val {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(string(val), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(val)}
	case float64:
		s := ".nan"
		switch {
		case math.IsInf(val, 1):
			s = ".inf"
		case math.IsInf(val, -1):
			s = "-.inf"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(val)}
	}
}
