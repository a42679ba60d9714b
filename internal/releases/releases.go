// Package releases maintains the supported-release CSV tables published
// under static/csv. Each table has a header row followed by one row per
// release line: version (#.#.X), release type and whether it is supported.
package releases

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lbliii/milodocs/internal/atomicfile"
)

var (
	ErrInvalidVersion = errors.New("version must be in the format #.#.X after normalization")
	ErrAlreadyListed  = errors.New("version is already on the support table")
)

var (
	fullVersion       = regexp.MustCompile(`^(\d+\.\d+)\.\d+$`)
	normalizedVersion = regexp.MustCompile(`^\d+\.\d+\.X$`)
)

const (
	releaseTypeGA = "GA"
	supportedYes  = "YES"
	supportedNo   = "NO"

	// column holding the YES/NO support flag
	supportColumn = 2
)

// Normalize uppercases version and replaces a numeric patch component with
// X, so "1.4.2" and "1.4.x" both become "1.4.X".
func Normalize(version string) (string, error) {
	v := strings.ToUpper(strings.TrimSpace(version))

	if m := fullVersion.FindStringSubmatch(v); m != nil {
		v = m[1] + ".X"
	}

	if !normalizedVersion.MatchString(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	return v, nil
}

// returns the table location for product below the site root
func TablePath(root, product string) string {
	return filepath.Join(root, "static", "csv", "supported-releases-"+product+".csv")
}

type Table struct {
	Header []string
	Rows   [][]string
}

// parses a release table. the first record is the header.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse release table: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("release table has no header row")
	}

	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// reports whether a normalized version already has a row
func (t *Table) Has(version string) bool {
	for _, row := range t.Rows {
		if len(row) > 0 && strings.ToUpper(strings.TrimSpace(row[0])) == version {
			return true
		}
	}

	return false
}

// Add marks the most recently supported release as unsupported and
// inserts version as a supported GA release directly below the header.
// "Most recent" is the lowest YES row, matching how the tables have been
// maintained by hand.
func (t *Table) Add(version string) error {
	if t.Has(version) {
		return ErrAlreadyListed
	}

	for i := len(t.Rows) - 1; i >= 0; i-- {
		row := t.Rows[i]
		if len(row) > supportColumn && strings.ToUpper(strings.TrimSpace(row[supportColumn])) == supportedYes {
			row[supportColumn] = supportedNo
			break
		}
	}

	t.Rows = append([][]string{{version, releaseTypeGA, supportedYes}}, t.Rows...)
	return nil
}

// writes the header and rows as CSV
func (t *Table) Write(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Header); err != nil {
		return err
	}

	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write release table: %w", err)
	}

	return nil
}

// AddRelease adds version to the table at path. version must already be
// normalized. Returns ErrAlreadyListed without touching the file when the
// version has a row.
func AddRelease(path, version string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	table, err := ReadTable(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := table.Add(version); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := table.Write(&buf); err != nil {
		return err
	}

	return atomicfile.WriteFile(path, buf.Bytes(), 0o644)
}
