package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"Float", float64(42), 42, true},
		{"Int", 7, 7, true},
		{"String", "1001", 1001, true},
		{"PaddedString", " 13 ", 13, true},
		{"BadString", "abc", 0, false},
		{"Nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFloat(t *testing.T) {
	f, ok := ToFloat("199.90")
	assert.True(t, ok)
	assert.Equal(t, 199.90, f)

	_, ok = ToFloat(nil)
	assert.False(t, ok)

	_, ok = ToFloat("not-a-number")
	assert.False(t, ok)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "RES-1", ToString("RES-1"))
	assert.Equal(t, "12", ToString(12))
	assert.Equal(t, "", ToString(nil))
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
}
