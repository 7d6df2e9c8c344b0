package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	// keep offset within an int32 so huge pages never wrap negative
	if maxPage := math.MaxInt32/size + 1; page > maxPage {
		page = maxPage
	}
	offset = (page - 1) * size
	return offset, size
}
