package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4096, "-4,096"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in))
	}
}

func TestHexBytes(t *testing.T) {
	assert.Equal(t, "", HexBytes(nil))
	assert.Equal(t, "0A", HexBytes([]byte{0x0A}))
	assert.Equal(t, "DE AD BE EF", HexBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
}
