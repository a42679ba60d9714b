package flatten

import "fmt"

// UnsupportedFormatError is returned when a file extension is neither YAML
// (.yaml, .yml) nor JSON (.json).
type UnsupportedFormatError struct {
	// Path is the offending file path
	Path string
	// Ext is the extension that was rejected, including the dot
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}

	return fmt.Sprintf("unsupported file format %s for %s: expected .yaml, .yml or .json", ext, e.Path)
}

// UnresolvableReferenceError is returned when a $ref does not point at a
// node of the same document.
type UnresolvableReferenceError struct {
	// Ref is the reference string as written in the document
	Ref string
	// Reason describes where resolution stopped
	Reason string
}

func (e *UnresolvableReferenceError) Error() string {
	msg := "unresolvable reference " + e.Ref
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

// UnencodableValueError is returned when a value has no representation in
// the output format, such as .nan or .inf written as JSON.
type UnencodableValueError struct {
	// Path is the JSON pointer of the value
	Path string
	// Value is the value as written in YAML
	Value string
	Format Format
}

func (e *UnencodableValueError) Error() string {
	return fmt.Sprintf("value %s at %s cannot be written as %s", e.Value, e.Path, e.Format)
}
