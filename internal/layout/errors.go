package layout

import "fmt"

// TruncatedInputError reports a buffer too short to satisfy a schema field.
// Field names the first field that could not be fully read.
type TruncatedInputError struct {
	// Field is the schema name of the field that could not be read
	Field string

	// Need is the number of bytes the field requires
	Need int

	// Have is the number of bytes that were actually available
	Have int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated input: field %q needs %d bytes, only %d available", e.Field, e.Need, e.Have)
}

// SchemaViolationError reports a decoded value that fails a content check
// the schema asserts (expected constants, declared lengths, checksums).
type SchemaViolationError struct {
	// Field is the schema name of the offending field
	Field string

	// Reason describes the failed check
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation at field %q: %s", e.Field, e.Reason)
}
