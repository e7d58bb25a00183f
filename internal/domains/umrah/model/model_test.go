package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackage_TierPrice(t *testing.T) {
	pkg := Package{PriceSingle: 400, PriceDouble: 300, PriceTriple: 250, PriceQuad: 200}

	cases := []struct {
		tier  string
		price float64
	}{
		{TierSingle, 400},
		{TierDouble, 300},
		{TierTriple, 250},
		{TierQuad, 200},
	}

	for _, c := range cases {
		price, ok := pkg.TierPrice(c.tier)
		assert.True(t, ok, c.tier)
		assert.Equal(t, c.price, price, c.tier)
	}

	_, ok := pkg.TierPrice("penthouse")
	assert.False(t, ok)
}
