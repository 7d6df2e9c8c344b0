package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		page, size  int
		offset, lim int
	}{
		{name: "first page", page: 1, size: 10, offset: 0, lim: 10},
		{name: "third page", page: 3, size: 5, offset: 10, lim: 5},
		{name: "page below one", page: 0, size: 5, offset: 0, lim: 5},
		{name: "zero size", page: 2, size: 0, offset: DefaultPageSize, lim: DefaultPageSize},
		{name: "size over max", page: 1, size: 1000, offset: 0, lim: DefaultPageSize},
		{name: "huge page", page: math.MaxInt, size: 10, offset: math.MaxInt32 / 10 * 10, lim: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.lim, limit)
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestCalculate_OffsetNeverNegative(t *testing.T) {
	for _, size := range []int{1, 7, DefaultPageSize, MaxPageSize} {
		offset, _ := Calculate(math.MaxInt, size)
		assert.GreaterOrEqual(t, offset, 0)
		assert.LessOrEqual(t, offset, math.MaxInt32)
	}
}
