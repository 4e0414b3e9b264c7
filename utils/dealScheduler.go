package utils

import (
	"agora/config"
	"agora/database"
	"agora/models"
	"agora/models/deal"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[DEAL-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// cancelStaleDeals cancels PENDING deals that have seen no recipient action
// for longer than the configured window
func cancelStaleDeals() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.DealStaleDays)

	var stale []deal.Deal
	if err := db.Where("status = ? AND is_deleted = false AND created_at < ?", deal.StatusPending, cutoff).
		Find(&stale).Error; err != nil {
		logScheduler("Error fetching stale deals: " + err.Error())
		return
	}

	for _, d := range stale {
		err := db.Transaction(func(tx *gorm.DB) error {
			// Same PENDING guard the workflow engine uses, so a response
			// racing the scheduler wins cleanly.
			res := tx.Model(&deal.Deal{}).
				Where("id = ? AND status = ?", d.ID, deal.StatusPending).
				Update("status", deal.StatusCancelled)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil // someone responded in the meantime
			}

			for _, recipient := range []uint{d.InitiatorID, d.RecipientID} {
				n := models.Notification{
					RecipientID: recipient,
					Type:        models.NotifyDealCancelled,
					Title:       "Deal cancelled automatically",
					Body:        d.Title,
					ReferenceID: d.ID,
				}
				if err := tx.Create(&n).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			logScheduler("Error cancelling stale deal: " + err.Error())
		}
	}

	if len(stale) > 0 {
		logScheduler("Processed stale pending deals")
	}
}

// pruneNotifications removes read notifications older than 90 days
func pruneNotifications() {
	cutoff := time.Now().AddDate(0, 0, -90)

	res := database.Database.Db.Model(&models.Notification{}).
		Where("is_read = true AND is_deleted = false AND created_at < ?", cutoff).
		Update("is_deleted", true)
	if res.Error != nil {
		logScheduler("Error pruning notifications: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Pruned old notifications")
	}
}

// StartDealScheduler runs the stale-deal and notification housekeeping jobs
func StartDealScheduler() {
	c := cron.New()

	// Every hour
	if _, err := c.AddFunc("@hourly", cancelStaleDeals); err != nil {
		log.Fatalf("Failed to schedule stale deal job: %v", err)
	}

	// Once a day
	if _, err := c.AddFunc("@daily", pruneNotifications); err != nil {
		log.Fatalf("Failed to schedule notification pruning job: %v", err)
	}

	c.Start()
	logScheduler("Deal scheduler started")
}
