package main

import (
	"time"

	"fundcontrol/internal/services"
	dbconfig "fundcontrol/pkg/config"

	"github.com/robfig/cron/v3"
	logger "github.com/sirupsen/logrus"
)

// RunAccrualSweep reconciles the ledger for every interest-bearing
// investment. Crossing a period boundary creates the missing accrual rows;
// running between boundaries is a no-op.
func RunAccrualSweep() error {
	start := time.Now()
	logger.Info("> starting accrual sweep")

	synchronizer := services.NewSynchronizer(dbconfig.DB)
	if err := synchronizer.SyncAll("scheduled_sweep"); err != nil {
		logger.Errorf("> accrual sweep failed: %v", err)
		return err
	}

	logger.Infof("> accrual sweep finished in %s", time.Since(start))
	return nil
}

func main() {
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(logger.InfoLevel)
	logger.Info("> initializing accrual sweep schedule...")

	dbconfig.InitDB()
	logger.Info("> database connection initialized")

	c := cron.New(cron.WithSeconds())

	// Hourly sweep. Period boundaries land on arbitrary days of the month,
	// so a coarse daily schedule would leave accruals pending for hours
	// under time-machine jumps.
	_, err := c.AddFunc("0 0 * * * *", func() {
		if err := RunAccrualSweep(); err != nil {
			logger.Errorf("> scheduled sweep failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("> failed to add scheduled task: %v", err)
	}

	logger.Info("> accrual sweep scheduled hourly")

	c.Start()

	select {}
}
