package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medicore-systems/hospital-service/internal/billing"
	"github.com/medicore-systems/hospital-service/internal/db"
)

// Revenue report job. Prints per-day paid revenue for the requested
// range (REPORT_FROM / REPORT_TO, default: the last 30 days).
func main() {
	log.Println("Revenue Report Job - Starting")

	from := os.Getenv("REPORT_FROM")
	to := os.Getenv("REPORT_TO")
	if from == "" {
		from = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	repo := billing.NewRepository(database)
	service := billing.NewService(repo, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	days, err := service.RevenueReport(ctx, from, to)
	if err != nil {
		log.Fatalf("Report failed: %v", err)
	}

	if len(days) == 0 {
		log.Printf("No paid bills between %s and %s", from, to)
		os.Exit(0)
	}

	total := decimal.Zero
	bills := 0
	log.Printf("Paid revenue from %s to %s:", from, to)
	for _, d := range days {
		log.Printf("  %s  %3d bills  %12s", d.Date, d.Bills, d.Revenue.StringFixed(2))
		total = total.Add(d.Revenue)
		bills += d.Bills
	}
	log.Printf("✓ Total: %d bills, %s", bills, total.StringFixed(2))
	log.Println("Revenue Report Job - Finished")
}
