package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/internal/domains/review/model"
)

func TestSummarize(t *testing.T) {
	t.Run("no reviews yields zero average", func(t *testing.T) {
		res := Summarize("hotel", "h-1", nil)

		assert.Equal(t, 0.0, res.Average)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, 0, res.Breakdown[5])
	})

	t.Run("average rounds to one decimal", func(t *testing.T) {
		reviews := []model.Review{
			{Rating: 5},
			{Rating: 4},
			{Rating: 4},
		}

		res := Summarize("hotel", "h-1", reviews)

		assert.Equal(t, 4.3, res.Average)
		assert.Equal(t, 3, res.Total)
		assert.Equal(t, 1, res.Breakdown[5])
		assert.Equal(t, 2, res.Breakdown[4])
	})
}
