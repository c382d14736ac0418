package services

import (
	"time"

	logger "github.com/sirupsen/logrus"

	"fundcontrol/pkg/config"
)

// SyncQueue is the durable queue carrying ledger synchronization tasks.
const SyncQueue = "ledger_sync"

// SyncTask asks the worker to reconcile the ledger. An empty InvestmentID
// means all interest-bearing investments.
type SyncTask struct {
	Reason       string    `json:"reason"`
	InvestmentID string    `json:"investment_id,omitempty"`
	TriggeredBy  string    `json:"triggered_by,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
}

// Run executes a sync task. Used by the worker and by the in-process fallback.
func (s *Synchronizer) Run(task SyncTask) error {
	if task.InvestmentID != "" {
		return s.SyncInvestment(task.InvestmentID)
	}
	return s.SyncAll(task.Reason)
}

// TriggerSync hands a task to the worker via the durable queue. The caller's
// state change has already committed, so when no broker is configured the
// task degrades to an in-process goroutine; a failed pass is repaired by the
// next trigger either way. Never returns an error to the caller.
func TriggerSync(s *Synchronizer, task SyncTask) {
	if task.RequestedAt.IsZero() {
		task.RequestedAt = time.Now().UTC()
	}

	if config.RabbitMQ != nil {
		publisher, err := config.NewPublisher()
		if err == nil {
			defer publisher.Close()
			if err := publisher.Publish(SyncQueue, task); err == nil {
				return
			}
			logger.Warnf("sync: failed to publish task, falling back to in-process run: %v", err)
		} else {
			logger.Warnf("sync: failed to create publisher, falling back to in-process run: %v", err)
		}
	}

	go func() {
		if err := s.Run(task); err != nil {
			logger.Errorf("sync: in-process run failed (reason: %s): %v", task.Reason, err)
		}
	}()
}
