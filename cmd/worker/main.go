package main

import (
	"encoding/json"
	"log"

	"fundcontrol/internal/services"
	"fundcontrol/pkg/config"

	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	synchronizer := services.NewSynchronizer(config.DB)

	// Create consumer for the ledger sync queue
	msgConsumer, err := config.NewConsumer(services.SyncQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Ledger sync worker started, waiting for tasks...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var task services.SyncTask
		if err := json.Unmarshal(msg, &task); err != nil {
			logrus.Errorf("Failed to unmarshal task: %v", err)
			return err
		}

		logrus.WithFields(logrus.Fields{
			"reason":        task.Reason,
			"investment_id": task.InvestmentID,
			"triggered_by":  task.TriggeredBy,
			"requested_at":  task.RequestedAt,
		}).Info("Received sync task")

		if err := synchronizer.Run(task); err != nil {
			// Ack anyway: a failed pass is repaired by the next trigger,
			// and requeueing a task against a broken row would spin.
			logrus.Errorf("Sync task failed: %v", err)
		}

		return nil
	})

	if err != nil {
		log.Fatal("Failed to start consumer: ", err)
	}
}
