package flatten

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format int

const (
	YAML Format = iota + 1
	JSON
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// picks the document format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return 0, &UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// Decode parses a YAML or JSON document into a Node tree, keeping mapping
// key order. An empty YAML stream decodes to a null scalar.
func Decode(r io.Reader, format Format) (*Node, error) {
	switch format {
	case YAML:
		return decodeYAML(r)
	case JSON:
		return decodeJSON(r)
	default:
		return nil, fmt.Errorf("cannot decode format %s", format)
	}
}

func decodeYAML(r io.Reader) (*Node, error) {
	var doc yaml.Node

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Scalar(nil), nil
		}
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	c := &yamlConverter{seen: make(map[*yaml.Node]*Node)}
	return c.convert(&doc)
}

// converts yaml.v3 nodes; aliases share the node built for their anchor
type yamlConverter struct {
	seen map[*yaml.Node]*Node
}

func (c *yamlConverter) convert(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return Scalar(nil), nil
		}
		return c.convert(y.Content[0])

	case yaml.AliasNode:
		return c.convert(y.Alias)

	case yaml.MappingNode:
		if n, ok := c.seen[y]; ok {
			return n, nil
		}

		n := NewMapping()
		c.seen[y] = n

		var merges []*yaml.Node
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]

			if k.Kind == yaml.ScalarNode && k.Tag == "!!merge" {
				merges = append(merges, v)
				continue
			}

			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}

			child, err := c.convert(v)
			if err != nil {
				return nil, err
			}
			n.Set(k.Value, child)
		}

		// explicit keys win over merged ones
		for _, m := range merges {
			if err := c.merge(n, m); err != nil {
				return nil, err
			}
		}

		return n, nil

	case yaml.SequenceNode:
		if n, ok := c.seen[y]; ok {
			return n, nil
		}

		n := NewSequence()
		c.seen[y] = n

		for _, item := range y.Content {
			child, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			n.Items = append(n.Items, child)
		}

		return n, nil

	case yaml.ScalarNode:
		v, err := yamlScalar(y)
		if err != nil {
			return nil, err
		}
		return Scalar(v), nil

	default:
		return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", y.Line, y.Kind)
	}
}

func (c *yamlConverter) merge(dst *Node, src *yaml.Node) error {
	if src.Kind == yaml.SequenceNode {
		for _, item := range src.Content {
			if err := c.merge(dst, item); err != nil {
				return err
			}
		}
		return nil
	}

	m, err := c.convert(src)
	if err != nil {
		return err
	}

	if m.Kind != MappingNode {
		return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
	}

	for i, k := range m.Keys {
		if _, exists := dst.Get(k); !exists {
			dst.Set(k, m.Values[i])
		}
	}

	return nil
}

func yamlScalar(y *yaml.Node) (any, error) {
	switch y.ShortTag() {
	case "!!null":
		return nil, nil

	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return b, nil

	case "!!int":
		if json.Valid([]byte(y.Value)) {
			return json.Number(y.Value), nil
		}

		var i int64
		if err := y.Decode(&i); err == nil {
			return json.Number(strconv.FormatInt(i, 10)), nil
		}

		var u uint64
		if err := y.Decode(&u); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return json.Number(strconv.FormatUint(u, 10)), nil

	case "!!float":
		if json.Valid([]byte(y.Value)) {
			return json.Number(y.Value), nil
		}

		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}

		if math.IsInf(f, 0) || math.IsNaN(f) {
			return f, nil
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil

	default:
		// strings, timestamps and binary stay as written
		return y.Value, nil
	}
}

func decodeJSON(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse json: unexpected data after top-level value")
	}

	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := NewMapping()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}

				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key at offset %d is not a string", dec.InputOffset())
				}

				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				n.Set(key, v)
			}

			// closing brace
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil

		case '[':
			n := NewSequence()
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				n.Items = append(n.Items, v)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil

		default:
			return nil, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
		}

	case string, json.Number, bool, nil:
		return Scalar(t), nil

	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
