package parameter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	p := NewRangeGranularity(3, 0, 10, 0.5)

	assert.Equal(t, 3.0, p.Float())
	assert.Equal(t, 0.0, p.LowerBound())
	assert.Equal(t, 10.0, p.UpperBound())
	assert.Equal(t, 0.5, p.Granularity())
	assert.Equal(t, "3.0 0.0 10.0 0.5", p.String())
}

func TestRangeDefaultGranularity(t *testing.T) {
	p := NewRange(1, 0, 4)
	assert.Equal(t, 1.0, p.Granularity())
}

func TestSelect(t *testing.T) {
	p := NewSelect("slow", []interface{}{"slow", "fast"})
	assert.Equal(t, "slow", p.Value())
	assert.Empty(t, p.Reference())
	assert.Equal(t, "slow (slow,fast)", p.String())
}

func TestSelectWithReference(t *testing.T) {
	p := NewSelectRef(1, []interface{}{1, 2, 3}, "speed")
	assert.Equal(t, "speed", p.Reference())
	assert.Equal(t, "1 (1,2,3) speed", p.String())
}

func TestUniqueID(t *testing.T) {
	p := NewUniqueID(4, "core")
	assert.Equal(t, 4, p.Int())
	assert.Equal(t, "core", p.Identifier())
	assert.Equal(t, "4 [UID:core]", p.String())
}

func TestFormatDouble(t *testing.T) {
	for _, tt := range []struct {
		in   float64
		want string
	}{
		{in: 3, want: "3.0"},
		{in: 0.5, want: "0.5"},
		{in: -2, want: "-2.0"},
		{in: 1.25, want: "1.25"},
	} {
		assert.Equal(t, tt.want, FormatDouble(tt.in))
	}
}
