package products

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownProduct = errors.New("unknown product")

// product identifiers used in content paths and release tables
var all = []string{"genai", "mldm", "mlde", "mldes", "mlis"}

// returns the known product identifiers in display order
func All() []string {
	return slices.Clone(all)
}

// reports whether name is a known product
func Valid(name string) bool {
	return slices.Contains(all, name)
}

// returns ErrUnknownProduct when name is not a known product
func Validate(name string) error {
	if !Valid(name) {
		return fmt.Errorf("%w %q: must be one of %s", ErrUnknownProduct, name, List())
	}

	return nil
}

// returns the products as a comma separated list
func List() string {
	return strings.Join(all, ", ")
}
