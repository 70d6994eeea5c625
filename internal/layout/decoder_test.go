package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLittleEndian(t *testing.T) {
	tests := []struct {
		name  string
		width int
		data  []byte
		want  uint64
	}{
		{name: "u8", width: 1, data: []byte{0xA5}, want: 0xA5},
		{name: "u16", width: 2, data: []byte{0x01, 0x02}, want: 0x0201},
		{name: "u32", width: 4, data: []byte{0x01, 0x02, 0x03, 0x04}, want: 0x04030201},
		{name: "u32 max", width: 4, data: []byte{0xFF, 0xFF, 0xFF, 0xFF}, want: 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := []Field{{Name: "v", Kind: KindUint, Width: tt.width}}
			obj, err := Decode(tt.data, schema)
			require.NoError(t, err)
			assert.Equal(t, tt.want, obj.Uint("v"))
		})
	}
}

func TestDecodeSigned(t *testing.T) {
	tests := []struct {
		name  string
		width int
		data  []byte
		want  int64
	}{
		{name: "i8 minus one", width: 1, data: []byte{0xFF}, want: -1},
		{name: "i8 min", width: 1, data: []byte{0x80}, want: -128},
		{name: "i16 minus two", width: 2, data: []byte{0xFE, 0xFF}, want: -2},
		{name: "i16 positive", width: 2, data: []byte{0x34, 0x12}, want: 0x1234},
		{name: "i32 minus one", width: 4, data: []byte{0xFF, 0xFF, 0xFF, 0xFF}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := []Field{{Name: "v", Kind: KindInt, Width: tt.width}}
			obj, err := Decode(tt.data, schema)
			require.NoError(t, err)
			assert.Equal(t, tt.want, obj.Int("v"))
		})
	}
}

func TestDecodeBytes(t *testing.T) {
	schema := []Field{
		{Name: "tag", Kind: KindBytes, Width: 3},
		{Name: "rest", Kind: KindUint, Width: 1},
	}

	data := []byte{0x41, 0x42, 0x43, 0x07}
	obj, err := Decode(data, schema)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x42, 0x43}, obj.Bytes("tag"))
	assert.Equal(t, uint64(7), obj.Uint("rest"))

	// Decoded bytes must not alias the input buffer
	data[0] = 0x00
	assert.Equal(t, []byte{0x41, 0x42, 0x43}, obj.Bytes("tag"))
}

func TestDecodeBitfield(t *testing.T) {
	schema := []Field{{
		Name:  "packed",
		Kind:  KindBits,
		Width: 1,
		Bits: []Bit{
			{Name: "low", Shift: 0, Width: 4},
			{Name: "high", Shift: 4, Width: 4},
		},
	}}

	obj, err := Decode([]byte{0xA5}, schema)
	require.NoError(t, err)

	packed := obj.Object("packed")
	require.NotNil(t, packed)
	assert.Equal(t, uint64(0x5), packed.Uint("low"))
	assert.Equal(t, uint64(0xA), packed.Uint("high"))
}

func TestDecodeBitfieldNotByteAligned(t *testing.T) {
	// 16-bit word 0xABCD: a 12-bit value straddling the byte boundary plus
	// the remaining nibbles.
	schema := []Field{{
		Name:  "packed",
		Kind:  KindBits,
		Width: 2,
		Bits: []Bit{
			{Name: "mid", Shift: 4, Width: 12},
			{Name: "low_nibble", Shift: 0, Width: 4},
		},
	}}

	obj, err := Decode([]byte{0xCD, 0xAB}, schema)
	require.NoError(t, err)

	packed := obj.Object("packed")
	require.NotNil(t, packed)
	assert.Equal(t, uint64(0xABC), packed.Uint("mid"))
	assert.Equal(t, uint64(0xD), packed.Uint("low_nibble"))
}

func TestDecodeExpect(t *testing.T) {
	schema := []Field{{Name: "reserved", Kind: KindUint, Width: 1, Expect: ExpectValue(0)}}

	_, err := Decode([]byte{0x00}, schema)
	require.NoError(t, err)

	_, err = Decode([]byte{0x01}, schema)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "reserved", violation.Field)
}

func TestDecodeNestedStruct(t *testing.T) {
	schema := []Field{{
		Name: "reg",
		Kind: KindStruct,
		Fields: []Field{
			{Name: "addr", Kind: KindUint, Width: 2},
			{Name: "flags", Kind: KindUint, Width: 1},
		},
	}}

	obj, err := Decode([]byte{0x34, 0x12, 0x03}, schema)
	require.NoError(t, err)

	reg := obj.Object("reg")
	require.NotNil(t, reg)
	assert.Equal(t, uint64(0x1234), reg.Uint("addr"))
	assert.Equal(t, uint64(0x03), reg.Uint("flags"))
}

func TestDecodeCountGated(t *testing.T) {
	schema := []Field{
		{Name: "count", Kind: KindUint, Width: 1},
		{Name: "items", Kind: KindStruct, CountBy: "count", Fields: []Field{
			{Name: "v", Kind: KindUint, Width: 2},
		}},
	}

	t.Run("zero count yields empty array", func(t *testing.T) {
		obj, err := Decode([]byte{0x00}, schema)
		require.NoError(t, err)
		items := obj.Objects("items")
		require.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("count gates repetitions", func(t *testing.T) {
		obj, err := Decode([]byte{0x02, 0x01, 0x00, 0x02, 0x00}, schema)
		require.NoError(t, err)
		items := obj.Objects("items")
		require.Len(t, items, 2)
		assert.Equal(t, uint64(1), items[0].Uint("v"))
		assert.Equal(t, uint64(2), items[1].Uint("v"))
	})

	t.Run("insufficient bytes names the array field", func(t *testing.T) {
		_, err := Decode([]byte{0x03, 0x01, 0x00, 0x02, 0x00}, schema)
		var truncated *TruncatedInputError
		require.ErrorAs(t, err, &truncated)
		assert.Equal(t, "items", truncated.Field)
		assert.Equal(t, 6, truncated.Need)
		assert.Equal(t, 4, truncated.Have)
	})
}

func TestDecodeCountFieldMissing(t *testing.T) {
	schema := []Field{
		{Name: "items", Kind: KindStruct, CountBy: "count", Fields: []Field{
			{Name: "v", Kind: KindUint, Width: 1},
		}},
	}

	_, err := Decode([]byte{0x01, 0x02}, schema)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "items", violation.Field)
}

func TestDecodeTruncationBoundary(t *testing.T) {
	schema := []Field{
		{Name: "a", Kind: KindUint, Width: 4},
		{Name: "b", Kind: KindBytes, Width: 3},
		{Name: "c", Kind: KindUint, Width: 2},
	}
	min := MinSize(schema)
	require.Equal(t, 9, min)

	t.Run("exact minimum succeeds", func(t *testing.T) {
		obj, err := Decode(make([]byte, min), schema)
		require.NoError(t, err)
		assert.Equal(t, 3, obj.Len())
	})

	t.Run("one byte short names the final field", func(t *testing.T) {
		_, err := Decode(make([]byte, min-1), schema)
		var truncated *TruncatedInputError
		require.ErrorAs(t, err, &truncated)
		assert.Equal(t, "c", truncated.Field)
		assert.Equal(t, 2, truncated.Need)
		assert.Equal(t, 1, truncated.Have)
	})

	t.Run("empty buffer names the first field", func(t *testing.T) {
		_, err := Decode(nil, schema)
		var truncated *TruncatedInputError
		require.ErrorAs(t, err, &truncated)
		assert.Equal(t, "a", truncated.Field)
	})
}

func TestDecodeConsumesEveryByte(t *testing.T) {
	schema := []Field{
		{Name: "a", Kind: KindUint, Width: 2},
		{Name: "pad", Kind: KindBytes, Width: 3},
		{Name: "b", Kind: KindUint, Width: 1},
	}

	dec := NewDecoder([]byte{1, 0, 0, 0, 0, 9})
	_, err := dec.Decode(schema)
	require.NoError(t, err)
	assert.Equal(t, 0, dec.Remaining())
	assert.Equal(t, 6, dec.Pos())
}

func TestDecodeDeterminism(t *testing.T) {
	schema := []Field{
		{Name: "count", Kind: KindUint, Width: 1},
		{Name: "items", Kind: KindStruct, CountBy: "count", Fields: []Field{
			{Name: "v", Kind: KindInt, Width: 2},
		}},
		{Name: "tail", Kind: KindBytes, Width: 2},
	}
	data := []byte{0x02, 0xFF, 0xFF, 0x10, 0x00, 0xAA, 0xBB}

	first, err := Decode(data, schema)
	require.NoError(t, err)
	second, err := Decode(data, schema)
	require.NoError(t, err)

	firstJSON, err := first.MarshalJSON()
	require.NoError(t, err)
	secondJSON, err := second.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestDecodeUnsupportedWidth(t *testing.T) {
	schema := []Field{{Name: "v", Kind: KindUint, Width: 3}}

	_, err := Decode([]byte{1, 2, 3}, schema)
	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
}

func TestMinSize(t *testing.T) {
	schema := []Field{
		{Name: "a", Kind: KindUint, Width: 4},
		{Name: "nested", Kind: KindStruct, Fields: []Field{
			{Name: "b", Kind: KindUint, Width: 2},
			{Name: "c", Kind: KindBytes, Width: 5},
		}},
		{Name: "count", Kind: KindUint, Width: 1},
		// Counted at zero repetitions
		{Name: "items", Kind: KindStruct, CountBy: "count", Fields: []Field{
			{Name: "d", Kind: KindUint, Width: 4},
		}},
	}

	assert.Equal(t, 12, MinSize(schema))
}

func TestDecodeNoPartialResultOnError(t *testing.T) {
	schema := []Field{
		{Name: "a", Kind: KindUint, Width: 1},
		{Name: "b", Kind: KindUint, Width: 4},
	}

	obj, err := Decode([]byte{0x01, 0x02}, schema)
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*TruncatedInputError)))
	assert.Nil(t, obj)
}
