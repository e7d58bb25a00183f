package model

// CalculateTotal prices a booking: unit price times travelers, with the
// discount applied as a percentage of the gross.
func CalculateTotal(unitPrice float64, travelers int, discountPercent float64) float64 {
	gross := unitPrice * float64(travelers)

	return gross * (1 - discountPercent/100)
}
