package services

import (
	"fmt"
	"math/rand"
	"sync"
)

// PaymentGateway moves a distribution payout to the investor's bank.
// The production rail integration lives outside this repository; the
// service only depends on this interface.
type PaymentGateway interface {
	Transfer(amount float64, reference string) error
}

// MockGateway simulates a bank transfer with a configurable success rate.
// Used in test mode for the admin retry flow.
type MockGateway struct {
	SuccessRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockGateway returns a gateway that succeeds with the given probability.
func NewMockGateway(successRate float64, seed int64) *MockGateway {
	return &MockGateway{
		SuccessRate: successRate,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (g *MockGateway) Transfer(amount float64, reference string) error {
	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	if roll < g.SuccessRate {
		return nil
	}
	return fmt.Errorf("mock bank transfer failed for %s", reference)
}
