package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatID(t *testing.T) {
	assert.Equal(t, "USR-1001", FormatID("USR", 1001))
	assert.Equal(t, "TXN-1000007", FormatID("TXN", 1000007))
}

func TestIDSpecs(t *testing.T) {
	// Every public ID type has a spec; seeds keep suffixes at a fixed width.
	for _, idType := range []string{IDTypeUser, IDTypeInvestment, IDTypeTransaction, IDTypeWithdrawal} {
		spec, ok := idSpecs[idType]
		assert.True(t, ok, "missing spec for %s", idType)
		assert.NotEmpty(t, spec.prefix)
		assert.Greater(t, spec.seed, int64(0))
	}
}
