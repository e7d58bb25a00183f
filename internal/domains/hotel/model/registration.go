package model

import (
	"math"

	"musafir/shared"
)

type requirement struct {
	label string
	met   func(Hotel) bool
}

// requirements lists every field a hotel must carry before it can leave
// draft status. Order matters: completeness validation reports the first
// unmet requirement only.
var requirements = []requirement{
	{"Hotel Name", func(h Hotel) bool { return h.Name != "" }},
	{"Hotel Description", func(h Hotel) bool { return h.Description != "" }},
	{"Hotel Address", func(h Hotel) bool { return h.Address != "" }},
	{"Hotel City", func(h Hotel) bool { return h.City != "" }},
	{"Hotel State", func(h Hotel) bool { return h.State != "" }},
	{"Hotel Zip Code", func(h Hotel) bool { return h.Zip != "" }},
	{"Hotel Country", func(h Hotel) bool { return h.Country != "" }},
	{"Hotel Star Rating", func(h Hotel) bool { return h.StarRating > 0 }},
	{"Hotel Average Price", func(h Hotel) bool { return h.AveragePrice > 0 }},
	{"Hotel Check-in Time", func(h Hotel) bool { return h.CheckInTime != "" }},
	{"Hotel Check-out Time", func(h Hotel) bool { return h.CheckOutTime != "" }},
	{"Hotel Availability Window", func(h Hotel) bool {
		return h.AvailableFrom != nil && h.AvailableTo != nil && h.AvailableFrom.Before(*h.AvailableTo)
	}},
	{"Hotel Amenities", func(h Hotel) bool { return len(h.Amenities) > 0 }},
	{"Hotel Tags", func(h Hotel) bool { return len(shared.CleanTagList(h.Tags)) > 0 }},
}

// FirstUnmetRequirement walks the requirement list in order and returns the
// label of the first one the hotel fails, or false when all are met.
func (h Hotel) FirstUnmetRequirement() (string, bool) {
	for _, r := range requirements {
		if !r.met(h) {
			return r.label, true
		}
	}
	return "", false
}

// IsComplete reports whether every registration requirement is met.
func (h Hotel) IsComplete() bool {
	_, unmet := h.FirstUnmetRequirement()
	return !unmet
}

// RegistrationPercent returns how much of the registration form is filled,
// as a rounded percentage of met requirements.
func (h Hotel) RegistrationPercent() int {
	met := 0
	for _, r := range requirements {
		if r.met(h) {
			met++
		}
	}
	return int(math.Round(float64(met) / float64(len(requirements)) * 100))
}
