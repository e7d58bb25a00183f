package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func completeHotel() Hotel {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	return Hotel{
		Name:          "Al Safa Grand",
		Description:   "City centre hotel",
		Address:       "12 Corniche Rd",
		City:          "Jeddah",
		State:         "Makkah",
		Zip:           "23411",
		Country:       "SA",
		StarRating:    4,
		AveragePrice:  120,
		CheckInTime:   "14:00",
		CheckOutTime:  "12:00",
		AvailableFrom: &from,
		AvailableTo:   &to,
		Amenities:     []string{"wifi", "parking"},
		Tags:          []string{"family"},
	}
}

func TestHotel_RegistrationPercent(t *testing.T) {
	t.Run("complete hotel is 100 percent", func(t *testing.T) {
		assert.Equal(t, 100, completeHotel().RegistrationPercent())
	})

	t.Run("empty hotel is 0 percent", func(t *testing.T) {
		assert.Equal(t, 0, Hotel{}.RegistrationPercent())
	})

	t.Run("half filled hotel rounds to 50 percent", func(t *testing.T) {
		h := completeHotel()
		h.AveragePrice = 0
		h.CheckInTime = ""
		h.CheckOutTime = ""
		h.AvailableFrom = nil
		h.Amenities = nil
		h.Tags = nil
		h.StarRating = 0
		assert.Equal(t, 50, h.RegistrationPercent())
	})

	t.Run("blank tags do not count", func(t *testing.T) {
		h := completeHotel()
		h.Tags = []string{" ", ""}
		assert.Equal(t, 93, h.RegistrationPercent())
	})
}

func TestHotel_FirstUnmetRequirement(t *testing.T) {
	t.Run("complete hotel has none", func(t *testing.T) {
		_, unmet := completeHotel().FirstUnmetRequirement()
		assert.False(t, unmet)
	})

	t.Run("reports the first gap only", func(t *testing.T) {
		h := completeHotel()
		h.CheckInTime = ""
		h.Tags = nil

		label, unmet := h.FirstUnmetRequirement()
		assert.True(t, unmet)
		assert.Equal(t, "Hotel Check-in Time", label)
	})

	t.Run("availability window must be ordered", func(t *testing.T) {
		h := completeHotel()
		h.AvailableFrom, h.AvailableTo = h.AvailableTo, h.AvailableFrom

		label, unmet := h.FirstUnmetRequirement()
		assert.True(t, unmet)
		assert.Equal(t, "Hotel Availability Window", label)
	})

	t.Run("empty hotel fails on name", func(t *testing.T) {
		label, _ := Hotel{}.FirstUnmetRequirement()
		assert.Equal(t, "Hotel Name", label)
	})
}

func TestHotel_IsComplete(t *testing.T) {
	assert.True(t, completeHotel().IsComplete())

	h := completeHotel()
	h.Zip = ""
	assert.False(t, h.IsComplete())
}
