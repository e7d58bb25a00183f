package model

import (
	"crypto/rand"
	"fmt"
)

// pnrAlphabet omits ambiguous characters so locators stay readable on
// printed itineraries.
const pnrAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const pnrLength = 6

// NewPNR generates a 6 character record locator.
func NewPNR() (string, error) {
	buf := make([]byte, pnrLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate record locator: %w", err)
	}

	for i, b := range buf {
		buf[i] = pnrAlphabet[int(b)%len(pnrAlphabet)]
	}

	return string(buf), nil
}
