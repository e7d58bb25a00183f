package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	t.Run("applies discount to gross", func(t *testing.T) {
		assert.InDelta(t, 270, CalculateTotal(100, 3, 10), 0.001)
	})

	t.Run("zero discount keeps gross", func(t *testing.T) {
		assert.InDelta(t, 300, CalculateTotal(100, 3, 0), 0.001)
	})

	t.Run("full discount is free", func(t *testing.T) {
		assert.InDelta(t, 0, CalculateTotal(100, 3, 100), 0.001)
	})

	t.Run("zero travelers costs nothing", func(t *testing.T) {
		assert.InDelta(t, 0, CalculateTotal(100, 0, 10), 0.001)
	})
}
