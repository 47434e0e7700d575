package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 3, GutterWidth(1))
	assert.Equal(t, 3, GutterWidth(9))
	assert.Equal(t, 4, GutterWidth(10))
	assert.Equal(t, 4, GutterWidth(99))
	assert.Equal(t, 5, GutterWidth(100))
	assert.Equal(t, 6, GutterWidth(1234))
}

func TestGutterWidthGrowsByOneDigit(t *testing.T) {
	// Crossing a power of ten widens the gutter by exactly one cell.
	for _, lines := range []int{9, 99, 999, 9999} {
		assert.Equal(t, 1, GutterWidth(lines+1)-GutterWidth(lines), "%d -> %d lines", lines, lines+1)
	}
	// Anywhere else it is stable.
	assert.Equal(t, GutterWidth(10), GutterWidth(42))
	assert.Equal(t, GutterWidth(100), GutterWidth(999))
}
