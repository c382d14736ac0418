package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvestmentNotFound  = errors.New("investment not found")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateWithdrawal = errors.New("a non-rejected withdrawal already exists for this investment")
)

// ValidationError reports a malformed or unsupported request input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InvalidStatusError is returned when an operation is attempted against an
// entity whose status does not permit it.
type InvalidStatusError struct {
	Entity   string
	Current  string
	Expected []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("%s status must be one of [%s] (current: %s)",
		e.Entity, strings.Join(e.Expected, ", "), e.Current)
}

// LockupViolationError is returned when a withdrawal or termination is
// attempted before the lockup period has elapsed and no override was given.
// Recoverable: the same call succeeds with overrideLockup=true.
type LockupViolationError struct {
	LockupEndDate time.Time
	DaysRemaining int
}

func (e *LockupViolationError) Error() string {
	return fmt.Sprintf("investment is still in lockup period: %d days remaining (ends %s)",
		e.DaysRemaining, e.LockupEndDate.UTC().Format(time.RFC3339))
}

// TaxLockedError reports which fields of a proposed mutation touch a closed
// tax year. The mutation is refused as a whole.
type TaxLockedError struct {
	TaxYear      int
	LockedFields []string
}

func (e *TaxLockedError) Error() string {
	return fmt.Sprintf("tax year %d is locked; cannot modify fields: %s",
		e.TaxYear, strings.Join(e.LockedFields, ", "))
}
