package utils

import (
	"agora/config"
	"agora/database"
	"agora/models"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// notificationEvent is the webhook payload for one notification row
type notificationEvent struct {
	ID          uint   `json:"id"`
	RecipientID uint   `json:"recipientId"`
	ActorID     uint   `json:"actorId"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ReferenceID uint   `json:"referenceId"`
	CreatedAt   string `json:"createdAt"`
}

// SendNotificationWebhook posts one notification event to the configured
// endpoint. Failures are logged, never retried; the row itself is already
// committed.
func SendNotificationWebhook(n models.Notification) {
	url := config.AppConfig.NotifyWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(notificationEvent{
			ID:          n.ID,
			RecipientID: n.RecipientID,
			ActorID:     n.ActorID,
			Type:        n.Type,
			Title:       n.Title,
			Body:        n.Body,
			ReferenceID: n.ReferenceID,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
		}).
		Post(url)
	if err != nil {
		log.Printf("Error posting notification webhook: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Notification webhook returned status %d", resp.StatusCode())
	}
}

// DispatchNotification fans one committed notification out to the webhook
// and, for the events users care about most, to email. Wired as the workflow
// engine's NotifyHook.
func DispatchNotification(n models.Notification) {
	SendNotificationWebhook(n)

	var recipient models.User
	if err := database.Database.Db.
		Select("id, username, email").
		First(&recipient, n.RecipientID).Error; err != nil || recipient.Email == "" {
		return
	}

	switch n.Type {
	case models.NotifyDealProposed:
		SendDealProposedEmail(recipient.Email, recipient.Username, n.Body)
	case models.NotifyDealApproved:
		SendDealDecisionEmail(recipient.Email, recipient.Username, n.Body, true)
	case models.NotifyDealRejected:
		SendDealDecisionEmail(recipient.Email, recipient.Username, n.Body, false)
	case models.NotifyReviewReceived:
		SendReviewReceivedEmail(recipient.Email, recipient.Username, n.Body)
	}
}
