package layout

// Kind identifies how a field's bytes are interpreted.
type Kind int

const (
	// KindUint is an unsigned little-endian integer of Width bytes
	KindUint Kind = iota

	// KindInt is a signed (two's complement) little-endian integer of Width bytes
	KindInt

	// KindBytes is a fixed-length raw byte array of Width bytes
	KindBytes

	// KindBits is a little-endian word of Width bytes split into bit-range sub-values
	KindBits

	// KindStruct is a nested sub-schema, decoded once or repeated CountBy times
	KindStruct
)

// Bit describes one sub-value packed inside a KindBits word. Sub-values are
// addressed by bit position and need not be byte-aligned.
type Bit struct {
	// Name is the sub-value's key in the decoded object
	Name string

	// Shift is the bit offset of the least significant bit within the word
	Shift uint

	// Width is the sub-value's size in bits
	Width uint
}

// Field is one schema entry: a named value's width, encoding and any content
// checks at its position in the buffer. A schema is an ordered []Field walked
// exactly once, front to back, by a Decoder.
type Field struct {
	// Name is the field's key in the decoded object and in error locations
	Name string

	// Kind selects the interpretation of the field's bytes
	Kind Kind

	// Width is the field's size in bytes. Integer kinds support 1, 2 and 4.
	// Ignored for KindStruct.
	Width int

	// Bits lists the packed sub-values of a KindBits field, in output order
	Bits []Bit

	// Fields is the sub-schema of a KindStruct field
	Fields []Field

	// CountBy names a previously decoded integer field in the same scope that
	// gates how many times a KindStruct repeats. Empty means decode exactly
	// once. A decoded count of zero yields an empty array.
	CountBy string

	// Expect, when non-nil, asserts the decoded integer value. A mismatch
	// fails the decode with a SchemaViolationError.
	Expect *uint64
}

// ExpectValue returns a pointer suitable for Field.Expect literals.
func ExpectValue(v uint64) *uint64 { return &v }

// MinSize returns the schema's statically computable minimum buffer length:
// the sum of all fixed-size fields with repeated blocks counted at zero
// repetitions. A buffer of exactly MinSize bytes decodes successfully when
// every repetition count in it is zero.
func MinSize(schema []Field) int {
	n := 0
	for _, f := range schema {
		if f.Kind == KindStruct {
			if f.CountBy == "" {
				n += MinSize(f.Fields)
			}
			continue
		}
		n += f.Width
	}
	return n
}
