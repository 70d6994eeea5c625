package layout

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Object is one node of a decoded value tree. Keys keep the order the schema
// declared them in, and that order is preserved through JSON marshaling.
// Values are one of: uint64, int64, Bytes, *Object or []*Object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value under key. A new key is appended to the key order; an
// existing key keeps its original position.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in declaration order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Uint returns the named field as an unsigned integer, or zero when the key
// is absent or not an integer.
func (o *Object) Uint(key string) uint64 {
	switch v := o.values[key].(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	}
	return 0
}

// Int returns the named field as a signed integer, or zero when the key is
// absent or not an integer.
func (o *Object) Int(key string) int64 {
	switch v := o.values[key].(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	}
	return 0
}

// Bytes returns the named byte-array field, or nil.
func (o *Object) Bytes(key string) []byte {
	if v, ok := o.values[key].(Bytes); ok {
		return v
	}
	return nil
}

// Object returns the named nested object, or nil.
func (o *Object) Object(key string) *Object {
	if v, ok := o.values[key].(*Object); ok {
		return v
	}
	return nil
}

// Objects returns the named repeated block, or nil.
func (o *Object) Objects(key string) []*Object {
	if v, ok := o.values[key].([]*Object); ok {
		return v
	}
	return nil
}

// MarshalJSON renders the object with keys in declaration order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Bytes is a raw byte array that marshals as a JSON array of decimal values
// instead of the base64 string encoding/json uses for plain []byte.
type Bytes []byte

// MarshalJSON renders each byte as a decimal number.
func (b Bytes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(v)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
