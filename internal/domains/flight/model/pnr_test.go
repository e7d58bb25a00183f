package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPNR(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		pnr, err := NewPNR()
		require.NoError(t, err)

		assert.Len(t, pnr, 6)
		for _, r := range pnr {
			assert.True(t, strings.ContainsRune(pnrAlphabet, r), "unexpected character %q", r)
		}

		seen[pnr] = true
	}

	assert.Greater(t, len(seen), 1)
}
