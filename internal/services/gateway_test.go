package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockGateway(t *testing.T) {
	t.Run("Always Succeeds At Rate One", func(t *testing.T) {
		g := NewMockGateway(1.0, 42)
		for i := 0; i < 100; i++ {
			assert.NoError(t, g.Transfer(10.00, "TXN-1000001"))
		}
	})

	t.Run("Always Fails At Rate Zero", func(t *testing.T) {
		g := NewMockGateway(0.0, 42)
		for i := 0; i < 100; i++ {
			err := g.Transfer(10.00, "TXN-1000001")
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "TXN-1000001")
		}
	})

	t.Run("Same Seed Same Outcomes", func(t *testing.T) {
		a := NewMockGateway(0.8, 7)
		b := NewMockGateway(0.8, 7)
		for i := 0; i < 50; i++ {
			assert.Equal(t, a.Transfer(1, "ref") == nil, b.Transfer(1, "ref") == nil)
		}
	})
}
