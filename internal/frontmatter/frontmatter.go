// Package frontmatter edits the YAML frontmatter of content files. It is
// used to mark a product's release directory as the latest version through
// the cascade block that Hugo hands down to every page below it.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/lbliii/milodocs/internal/atomicfile"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoFrontmatter  = errors.New("frontmatter not found")
	ErrNoCascade      = errors.New("frontmatter does not contain a 'cascade' section")
	ErrInvalidVersion = errors.New("version must be in the format #.#.#")
)

const delimiter = "---"

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// parses a #.#.# release version
func ParseVersion(s string) (Version, error) {
	if !versionPattern.MatchString(s) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var v Version
	if _, err := fmt.Sscanf(s, "%d.%d.%d", &v.Major, &v.Minor, &v.Patch); err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	return v, nil
}

// returns the section index page for a product release directory
func IndexPath(root, product, versionDir string) string {
	return filepath.Join(root, "content", "products", product, versionDir, "_index.md")
}

// Split cuts content at the first two "---" delimiters and returns the
// frontmatter between them and everything after the second one. Text
// before the first delimiter is discarded.
func Split(content []byte) (fm, body []byte, err error) {
	parts := bytes.SplitN(content, []byte(delimiter), 3)
	if len(parts) < 3 {
		return nil, nil, ErrNoFrontmatter
	}

	return parts[1], parts[2], nil
}

// SetCascadeVersion sets major, minor, patch and latest in the cascade
// mapping of fm. Other keys, their order and comments are kept.
func SetCascadeVersion(fm []byte, v Version) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(fm, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrNoCascade
	}

	cascade := mappingValue(doc.Content[0], "cascade")
	if cascade == nil {
		return nil, ErrNoCascade
	}

	if cascade.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("cascade must be a mapping, found %s at line %d", kindName(cascade.Kind), cascade.Line)
	}

	setScalar(cascade, "major", "!!int", strconv.Itoa(v.Major))
	setScalar(cascade, "minor", "!!int", strconv.Itoa(v.Minor))
	setScalar(cascade, "patch", "!!int", strconv.Itoa(v.Patch))
	setScalar(cascade, "latest", "!!bool", "true")

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UpdateFile rewrites the cascade version of the content file at path.
func UpdateFile(path string, v Version) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fm, body, err := Split(content)
	if err != nil {
		return err
	}

	updated, err := SetCascadeVersion(fm, v)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	out.WriteString(delimiter + "\n")
	out.Write(updated)
	out.WriteString(delimiter)
	out.Write(body)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	return atomicfile.WriteFile(path, out.Bytes(), info.Mode().Perm())
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}

	return nil
}

func setScalar(m *yaml.Node, key, tag, value string) {
	if v := mappingValue(m, key); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = tag
		v.Value = value
		v.Style = 0
		v.Content = nil
		return
	}

	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
	)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "a mapping"
	}
}
