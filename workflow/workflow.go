// Package workflow enforces the deal negotiation state machine: who may act
// on a deal, which status transitions are legal, and how reviews feed
// reputation. Every status change is an optimistic compare-and-swap against
// the store so concurrent actors cannot both conclude the same deal.
package workflow

import (
	"context"
	"time"

	"agora/models"

	"gorm.io/gorm"
)

// Session identifies the acting user for one operation call. It is built per
// request from the verified token, never held as ambient state.
type Session struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the session holds administrative capability
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin || s.Role == models.RoleOwner
}

// StoreTimeout bounds every store round-trip made by an operation.
// Overridden from config at startup.
var StoreTimeout = 5 * time.Second

// AssessmentRetractsReview controls whether an approved assessment removes
// the disputed review from reputation aggregation, or merely annotates it.
// Overridden from config at startup.
var AssessmentRetractsReview = true

// NotifyHook receives each notification row after its transaction commits,
// for webhook/email fan-out. Left nil in tests.
var NotifyHook func(n models.Notification)

// store returns a timeout-bounded handle for one operation call
func store(db *gorm.DB) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), StoreTimeout)
	return db.WithContext(ctx), cancel
}

// dispatch hands committed notifications to the fan-out hook
func dispatch(notes []models.Notification) {
	if NotifyHook == nil {
		return
	}
	for _, n := range notes {
		go NotifyHook(n)
	}
}
