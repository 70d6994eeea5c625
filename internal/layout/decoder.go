// Package layout decodes fixed binary record layouts described by declarative
// field schemas. All multi-byte integers are assembled explicitly from
// individual bytes in little-endian order, the byte order of the device
// formats this package targets, independent of the host's native order.
package layout

import (
	"encoding/binary"
	"fmt"
)

// Decoder walks a schema over a byte buffer with a single forward cursor.
// The buffer is never mutated; every byte between fields is consumed exactly
// once, in schema order.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder returns a decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Decode walks schema over data from offset zero and returns the decoded
// object tree. On error no partial tree is returned.
func Decode(data []byte, schema []Field) (*Object, error) {
	return NewDecoder(data).Decode(schema)
}

// Pos returns the cursor position in bytes from the start of the buffer.
func (d *Decoder) Pos() int {
	return d.pos
}

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Decode consumes schema fields in order from the current cursor. It returns
// a TruncatedInputError when the buffer ends before a field does, and a
// SchemaViolationError when a decoded value fails a check the schema asserts.
func (d *Decoder) Decode(schema []Field) (*Object, error) {
	obj := NewObject()
	for i := range schema {
		if err := d.decodeField(&schema[i], obj); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (d *Decoder) decodeField(f *Field, obj *Object) error {
	switch f.Kind {
	case KindUint, KindInt, KindBits:
		word, err := d.word(f)
		if err != nil {
			return err
		}
		if f.Expect != nil && word != *f.Expect {
			return &SchemaViolationError{
				Field:  f.Name,
				Reason: fmt.Sprintf("expected value %d, decoded %d", *f.Expect, word),
			}
		}
		switch f.Kind {
		case KindInt:
			obj.Set(f.Name, signExtend(word, f.Width))
		case KindBits:
			sub := NewObject()
			for _, b := range f.Bits {
				mask := uint64(1)<<b.Width - 1
				sub.Set(b.Name, word>>b.Shift&mask)
			}
			obj.Set(f.Name, sub)
		default:
			obj.Set(f.Name, word)
		}
		return nil

	case KindBytes:
		raw, err := d.take(f.Name, f.Width)
		if err != nil {
			return err
		}
		b := make(Bytes, f.Width)
		copy(b, raw)
		obj.Set(f.Name, b)
		return nil

	case KindStruct:
		if f.CountBy == "" {
			sub, err := d.Decode(f.Fields)
			if err != nil {
				return err
			}
			obj.Set(f.Name, sub)
			return nil
		}
		if _, ok := obj.Get(f.CountBy); !ok {
			return &SchemaViolationError{
				Field:  f.Name,
				Reason: fmt.Sprintf("count field %q not decoded before this block", f.CountBy),
			}
		}
		n := obj.Uint(f.CountBy)
		if need := int(n) * MinSize(f.Fields); d.Remaining() < need {
			return &TruncatedInputError{Field: f.Name, Need: need, Have: d.Remaining()}
		}
		items := make([]*Object, 0, n)
		for i := uint64(0); i < n; i++ {
			sub, err := d.Decode(f.Fields)
			if err != nil {
				return err
			}
			items = append(items, sub)
		}
		obj.Set(f.Name, items)
		return nil

	default:
		return &SchemaViolationError{
			Field:  f.Name,
			Reason: fmt.Sprintf("unknown field kind %d", f.Kind),
		}
	}
}

// word reads f.Width bytes at the cursor and assembles them little-endian.
func (d *Decoder) word(f *Field) (uint64, error) {
	raw, err := d.take(f.Name, f.Width)
	if err != nil {
		return 0, err
	}
	switch f.Width {
	case 1:
		return uint64(raw[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(raw)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(raw)), nil
	default:
		return 0, &SchemaViolationError{
			Field:  f.Name,
			Reason: fmt.Sprintf("unsupported integer width %d", f.Width),
		}
	}
}

// take consumes n bytes at the cursor.
func (d *Decoder) take(name string, n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, &TruncatedInputError{Field: name, Need: n, Have: d.Remaining()}
	}
	raw := d.data[d.pos : d.pos+n]
	d.pos += n
	return raw, nil
}

// signExtend interprets the low width*8 bits of word as two's complement.
func signExtend(word uint64, width int) int64 {
	shift := 64 - uint(width)*8
	return int64(word<<shift) >> shift
}
