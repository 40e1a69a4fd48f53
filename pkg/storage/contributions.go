package storage

import (
	"context"

	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
)

// ContributionStore defines the write path for per-round payment tracking.
// Both operations are read-modify-write flows guarded by the pool's version
// counter; they retry internally on a lost race.
type ContributionStore interface {
	// RecordContribution records that a member's contribution for the current
	// round was verified by the admin: it appends a completed contribution
	// transaction, updates the pool balance and the member's counters, and
	// marks the member's round payment admin_verified.
	RecordContribution(ctx context.Context, poolID, memberID, method string) (*models.Pool, error)

	// ConfirmRoundPayment records a member's own claim that they have paid,
	// moving their round payment from pending to member_confirmed.
	ConfirmRoundPayment(ctx context.Context, poolID, memberID string) (*models.Pool, error)
}
