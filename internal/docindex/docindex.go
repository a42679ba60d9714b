// Package docindex reads the JSON search index that the site build writes
// to public/index.json: an array with one object per page.
package docindex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

type Document struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	RelURI      string `json:"relURI"`
	Description string `json:"description"`
	ProductPath string `json:"productPath"`
}

// loads the index file at path
func Load(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer f.Close() //nolint:errcheck

	docs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return docs, nil
}

// decodes an index array, dropping pages without body text
func Decode(r io.Reader) ([]Document, error) {
	var raw []Document
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}

	docs := raw[:0]
	for _, d := range raw {
		if strings.TrimSpace(d.Body) == "" {
			continue
		}
		docs = append(docs, d)
	}

	return docs, nil
}
