package notify

import (
	"context"
	"time"
)

// EventType defines the kinds of pool events published for out-of-band
// delivery (email, dashboard updates).
type EventType string

const (
	// EventPayoutCompleted fires after a payout commits and the round advances.
	EventPayoutCompleted EventType = "payout_completed"
	// EventContributionVerified fires when the admin verifies a contribution.
	EventContributionVerified EventType = "contribution_verified"
	// EventPaymentReminder fires when a round payment is flagged late.
	EventPaymentReminder EventType = "payment_reminder"
)

// Event is a pool notification. Delivery is fire-and-forget: the engine's
// commit never waits on, and is never rolled back by, a notification.
type Event struct {
	Id         string    `json:"id"`
	Type       EventType `json:"type"`
	PoolId     string    `json:"pool_id"`
	PoolName   string    `json:"pool_name"`
	MemberName string    `json:"member_name,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	Round      int       `json:"round"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier defines the interface for publishing pool events after a
// successful state change.
type Notifier interface {
	// Publish enqueues an event for asynchronous delivery.
	Publish(ctx context.Context, event *Event) error
}
