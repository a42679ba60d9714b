// Package flatten inlines $ref pointers of OpenAPI and JSON Schema
// documents. References that would expand forever are replaced with stubs
// naming the component they point to.
package flatten

import (
	"bytes"
	"fmt"
	"os"

	"github.com/lbliii/milodocs/internal/atomicfile"
)

// FlattenFile reads inputPath, inlines its references and writes the result
// to outputPath in the format picked by the output extension. Both
// extensions are checked before any file is read. On error outputPath is
// left as it was.
func FlattenFile(inputPath, outputPath string) error {
	inFormat, err := FormatFromPath(inputPath)
	if err != nil {
		return err
	}

	outFormat, err := FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	doc, err := Decode(bytes.NewReader(data), inFormat)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", inputPath, err)
	}

	flat, err := Flatten(doc)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, flat, outFormat); err != nil {
		return err
	}

	if err := atomicfile.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
