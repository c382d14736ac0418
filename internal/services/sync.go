package services

import (
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fundcontrol/internal/models"
)

// Synchronizer reconciles the persisted transaction ledger against the
// accrual calculator's output. It is triggered by clock changes, the
// auto-approve toggle, admin termination and the periodic sweep, and always
// runs decoupled from the request that triggered it.
//
// Reconciliation is append-only: when the clock moves backward past
// already-materialized periods, existing rows are left intact and no new
// rows are generated beyond the new application time.
type Synchronizer struct {
	db    *gorm.DB
	clock *Clock
	ids   *IDAllocator
}

func NewSynchronizer(db *gorm.DB) *Synchronizer {
	return &Synchronizer{
		db:    db,
		clock: NewClock(db),
		ids:   NewIDAllocator(db),
	}
}

type periodKey struct {
	PeriodIndex int
	Type        string
}

// missingEvents returns the accrual events that have no transaction of the
// given type yet. The (periodIndex, type) key is the idempotency anchor:
// running the diff twice against the same ledger yields the same answer.
func missingEvents(events []AccrualEvent, existing map[periodKey]string, txType string) []AccrualEvent {
	var missing []AccrualEvent
	for _, ev := range events {
		if _, ok := existing[periodKey{ev.PeriodIndex, txType}]; !ok {
			missing = append(missing, ev)
		}
	}
	return missing
}

// SyncAll reconciles every interest-bearing investment. Per-investment
// failures are logged and skipped; the next trigger repairs them.
func (s *Synchronizer) SyncAll(reason string) error {
	now := s.clock.Now()
	settings, err := s.clock.Settings()
	if err != nil {
		return fmt.Errorf("sync: failed to load clock settings: %w", err)
	}

	var investments []models.Investment
	err = s.db.Where("status IN ?", []string{
		models.InvestmentStatusActive,
		models.InvestmentStatusWithdrawalNotice,
	}).Find(&investments).Error
	if err != nil {
		return fmt.Errorf("sync: failed to list investments: %w", err)
	}

	logger.Infof("sync: reconciling %d investments (reason: %s, app time: %s)",
		len(investments), reason, now.Format(time.RFC3339))

	for i := range investments {
		if err := s.syncOne(&investments[i], now, settings.AutoApproveDistributions); err != nil {
			logger.Errorf("sync: investment %s failed: %v", investments[i].ID, err)
		}
	}
	return nil
}

// SyncInvestment reconciles a single investment at current application time.
func (s *Synchronizer) SyncInvestment(investmentID string) error {
	var inv models.Investment
	if err := s.db.First(&inv, "id = ?", investmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrInvestmentNotFound
		}
		return err
	}
	settings, err := s.clock.Settings()
	if err != nil {
		return fmt.Errorf("sync: failed to load clock settings: %w", err)
	}
	return s.syncOne(&inv, s.clock.Now(), settings.AutoApproveDistributions)
}

// syncOne applies one investment's reconciliation atomically: read the
// existing period-indexed rows, diff against the schedule, insert what is
// missing. Duplicate inserts from concurrent passes hit the unique index
// and become no-ops.
func (s *Synchronizer) syncOne(inv *models.Investment, now time.Time, autoApprove bool) error {
	// Finalized investments keep their booked totals.
	if inv.Status != models.InvestmentStatusActive && inv.Status != models.InvestmentStatusWithdrawalNotice {
		return nil
	}

	events := Schedule(inv, now)
	if len(events) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existingRows []models.Transaction
		err := tx.Where("investment_id = ? AND period_index IS NOT NULL", inv.ID).
			Find(&existingRows).Error
		if err != nil {
			return err
		}

		existing := make(map[periodKey]string, len(existingRows))
		for _, row := range existingRows {
			existing[periodKey{*row.PeriodIndex, row.Type}] = row.ID
		}

		compounding := inv.PaymentFrequency == models.PaymentFrequencyCompounding

		for _, ev := range missingEvents(events, existing, models.TransactionTypeDistribution) {
			dist, err := s.createDistribution(tx, inv, ev, autoApprove)
			if err != nil {
				return err
			}
			existing[periodKey{ev.PeriodIndex, models.TransactionTypeDistribution}] = dist.ID
		}

		if compounding {
			for _, ev := range missingEvents(events, existing, models.TransactionTypeContribution) {
				distID := existing[periodKey{ev.PeriodIndex, models.TransactionTypeDistribution}]
				if err := s.createContribution(tx, inv, ev, distID); err != nil {
					return err
				}
			}
		}

		// Earnings through the last completed period.
		earnings := 0.0
		for _, ev := range events {
			earnings += ev.GrossAmount
		}
		return tx.Model(inv).Update("total_earnings", earnings).Error
	})
}

func (s *Synchronizer) createDistribution(tx *gorm.DB, inv *models.Investment, ev AccrualEvent, autoApprove bool) (*models.Transaction, error) {
	id, err := s.ids.Next(IDTypeTransaction)
	if err != nil {
		return nil, err
	}

	compounding := inv.PaymentFrequency == models.PaymentFrequencyCompounding

	status := models.TransactionStatusPending
	if compounding || autoApprove {
		// Compounded distributions never move cash, so there is nothing
		// for the manual payout queue to approve.
		status = models.TransactionStatusReceived
	}

	periodIndex := ev.PeriodIndex
	row := models.Transaction{
		ID:           id,
		InvestmentID: inv.ID,
		UserID:       inv.UserID,
		Type:         models.TransactionTypeDistribution,
		Amount:       ev.GrossAmount,
		Date:         ev.PeriodDate,
		Status:       status,
		PeriodIndex:  &periodIndex,
	}
	ApplyTaxMetadata(&row)
	if compounding {
		row.ConstructiveReceipt = true
		row.ActualReceipt = false
	} else {
		row.ActualReceipt = true
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// A concurrent pass won the race; use its row.
		var winner models.Transaction
		err := tx.Where("investment_id = ? AND period_index = ? AND type = ?",
			inv.ID, ev.PeriodIndex, models.TransactionTypeDistribution).
			First(&winner).Error
		if err != nil {
			return nil, err
		}
		return &winner, nil
	}
	return &row, nil
}

func (s *Synchronizer) createContribution(tx *gorm.DB, inv *models.Investment, ev AccrualEvent, distributionID string) error {
	id, err := s.ids.Next(IDTypeTransaction)
	if err != nil {
		return err
	}

	periodIndex := ev.PeriodIndex
	row := models.Transaction{
		ID:               id,
		InvestmentID:     inv.ID,
		UserID:           inv.UserID,
		Type:             models.TransactionTypeContribution,
		Amount:           ev.GrossAmount,
		Date:             ev.PeriodDate,
		Status:           models.TransactionStatusReceived,
		PeriodIndex:      &periodIndex,
		DistributionTxID: &distributionID,
	}
	ApplyTaxMetadata(&row)
	row.ConstructiveReceipt = false
	row.ActualReceipt = true

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}
