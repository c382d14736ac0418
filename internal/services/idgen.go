package services

import (
	"fmt"

	"gorm.io/gorm"
)

// ID type names
const (
	IDTypeUser        = "user"
	IDTypeInvestment  = "investment"
	IDTypeTransaction = "transaction"
	IDTypeWithdrawal  = "withdrawal"
)

type idSpec struct {
	prefix string
	seed   int64
}

// Seeds pick the starting suffix so IDs come out at a fixed width
// (USR-1001, INV-10001, TXN-1000001, WTH-1001).
var idSpecs = map[string]idSpec{
	IDTypeUser:        {prefix: "USR", seed: 1000},
	IDTypeInvestment:  {prefix: "INV", seed: 10000},
	IDTypeTransaction: {prefix: "TXN", seed: 1000000},
	IDTypeWithdrawal:  {prefix: "WTH", seed: 1000},
}

// IDAllocator hands out sequential human-readable IDs backed by the
// id_counters table. The increment is a single atomic statement so
// concurrent allocations never produce the same suffix.
type IDAllocator struct {
	db *gorm.DB
}

func NewIDAllocator(db *gorm.DB) *IDAllocator {
	return &IDAllocator{db: db}
}

// Next allocates the next ID for the given type, e.g. Next("transaction")
// returns "TXN-1000007".
func (a *IDAllocator) Next(idType string) (string, error) {
	spec, ok := idSpecs[idType]
	if !ok {
		return "", fmt.Errorf("unknown id type: %s", idType)
	}

	var value int64
	err := a.db.Raw(`
		INSERT INTO id_counters (id_type, current_value)
		VALUES (?, ?)
		ON CONFLICT (id_type)
		DO UPDATE SET current_value = id_counters.current_value + 1
		RETURNING current_value`,
		idType, spec.seed+1,
	).Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s id: %w", idType, err)
	}

	return FormatID(spec.prefix, value), nil
}

// FormatID joins a prefix and counter value into the external ID form.
func FormatID(prefix string, value int64) string {
	return fmt.Sprintf("%s-%d", prefix, value)
}
