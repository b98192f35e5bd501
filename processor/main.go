package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"fulfillment-app/config"
	"fulfillment-app/models"
	"fulfillment-app/services"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Standalone worker that keeps every vendor's cached inventory in step with
// the vendor API. Runs one sync immediately, then on a fixed interval.
func main() {

	config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	interval := time.Duration(config.SyncIntervalMinutes) * time.Minute
	log.Printf("Inventory processor started, syncing every %s", interval)

	syncAllVendors(db)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		syncAllVendors(db)
	}
}

func syncAllVendors(db *gorm.DB) {
	var vendors []models.Vendor
	if err := db.Find(&vendors).Error; err != nil {
		log.Printf("Failed to load vendors: %v", err)
		return
	}

	var failures []string
	for i := range vendors {
		vendor := &vendors[i]

		// Fresh gateway per vendor so each cycle logs in with a clean token.
		sourcing := services.NewSourcingService(db, services.NewInventoryService())
		updated, err := sourcing.SyncVendor(vendor)
		if err != nil {
			log.Printf("Sync failed for vendor %s: %v", vendor.Name, err)
			failures = append(failures, fmt.Sprintf("%s: %v", vendor.Name, err))
			continue
		}
		log.Printf("Synced vendor %s, %d items updated", vendor.Name, updated)
	}

	if len(failures) > 0 {
		if err := sendAlertEmail(failures); err != nil {
			log.Printf("Failed to send alert email: %v", err)
		}
	}
}

func sendAlertEmail(failures []string) error {
	if config.SenderEmail == "" || len(config.AlertEmails) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.SenderEmail)
	m.SetHeader("To", config.AlertEmails...)
	m.SetHeader("Subject", "Inventory sync failures")
	m.SetBody("text/plain", "The following vendor syncs failed:\n\n"+strings.Join(failures, "\n"))

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SenderEmail, config.SenderPassword)
	return d.DialAndSend(m)
}
