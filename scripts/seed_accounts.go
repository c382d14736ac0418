package main

import (
	"flag"
	"fmt"
	"log"

	"fundcontrol/internal/models"
	"fundcontrol/internal/services"
	"fundcontrol/pkg/config"
)

type seedInvestment struct {
	amount    float64
	frequency string
	lockup    string
}

type seedAccount struct {
	email       string
	firstName   string
	lastName    string
	investments []seedInvestment
}

var seedAccounts = []seedAccount{
	{
		email:     "alice@example.com",
		firstName: "Alice",
		lastName:  "Nguyen",
		investments: []seedInvestment{
			{amount: 10000, frequency: models.PaymentFrequencyMonthly, lockup: models.LockupPeriod1Year},
			{amount: 25000, frequency: models.PaymentFrequencyCompounding, lockup: models.LockupPeriod3Year},
		},
	},
	{
		email:     "bob@example.com",
		firstName: "Bob",
		lastName:  "Keller",
		investments: []seedInvestment{
			{amount: 50000, frequency: models.PaymentFrequencyCompounding, lockup: models.LockupPeriod5Year},
		},
	},
	{
		email:     "carol@example.com",
		firstName: "Carol",
		lastName:  "Ito",
		investments: []seedInvestment{
			{amount: 1000, frequency: models.PaymentFrequencyMonthly, lockup: models.LockupPeriod1Year},
		},
	},
}

func main() {
	confirm := flag.Bool("confirm", false, "submit and confirm the seeded investments so accrual starts")
	flag.Parse()

	config.InitDB()

	ids := services.NewIDAllocator(config.DB)

	for _, account := range seedAccounts {
		var existing models.User
		if err := config.DB.Where("email = ?", account.email).First(&existing).Error; err == nil {
			log.Printf("user %s already exists as %s, skipping", account.email, existing.ID)
			continue
		}

		userID, err := ids.Next(services.IDTypeUser)
		if err != nil {
			log.Fatalf("failed to allocate user id: %v", err)
		}

		user := models.User{
			ID:        userID,
			Email:     account.email,
			FirstName: account.firstName,
			LastName:  account.lastName,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Fatalf("failed to create user %s: %v", account.email, err)
		}
		fmt.Printf("created %s (%s)\n", user.ID, user.Email)

		for _, si := range account.investments {
			invID, err := ids.Next(services.IDTypeInvestment)
			if err != nil {
				log.Fatalf("failed to allocate investment id: %v", err)
			}

			inv := models.Investment{
				ID:               invID,
				UserID:           user.ID,
				Amount:           si.amount,
				PaymentFrequency: si.frequency,
				LockupPeriod:     si.lockup,
				AnnualRate:       models.DefaultAnnualRate(si.lockup),
				Status:           models.InvestmentStatusDraft,
			}
			if err := config.DB.Create(&inv).Error; err != nil {
				log.Fatalf("failed to create investment for %s: %v", user.ID, err)
			}
			fmt.Printf("  created %s: $%.2f %s %s\n", inv.ID, inv.Amount, inv.PaymentFrequency, inv.LockupPeriod)

			if *confirm {
				clock := services.NewClock(config.DB)
				now := clock.Now()
				lockupEnd := now.AddDate(inv.LockupYears(), 0, 0)
				updates := map[string]interface{}{
					"status":          models.InvestmentStatusActive,
					"confirmed_at":    now,
					"lockup_end_date": lockupEnd,
				}
				if err := config.DB.Model(&inv).Updates(updates).Error; err != nil {
					log.Fatalf("failed to confirm investment %s: %v", inv.ID, err)
				}

				txnID, err := ids.Next(services.IDTypeTransaction)
				if err != nil {
					log.Fatalf("failed to allocate transaction id: %v", err)
				}
				principal := models.Transaction{
					ID:            txnID,
					UserID:        user.ID,
					InvestmentID:  inv.ID,
					Type:          models.TransactionTypeInvestment,
					Status:        models.TransactionStatusReceived,
					Amount:        inv.Amount,
					Date:          now,
					ActualReceipt: true,
				}
				services.ApplyTaxMetadata(&principal)
				if err := config.DB.Create(&principal).Error; err != nil {
					log.Fatalf("failed to create principal transaction for %s: %v", inv.ID, err)
				}
				fmt.Printf("  confirmed %s, lockup ends %s\n", inv.ID, lockupEnd.Format("2006-01-02"))
			}
		}
	}

	if *confirm {
		synchronizer := services.NewSynchronizer(config.DB)
		if err := synchronizer.SyncAll("seed"); err != nil {
			log.Fatalf("initial sync failed: %v", err)
		}
		fmt.Println("ledger synchronized")
	}
}
