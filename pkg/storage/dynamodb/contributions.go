package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
)

// contributionRetries bounds the read-modify-write replays after a lost
// version race.
const contributionRetries = 3

// RecordContribution records an admin-verified contribution for the current
// round: it appends a completed contribution transaction, credits the pool
// balance and the member's counters, and marks the member's round payment
// admin_verified. The whole mutation lands through the version-guarded write.
func (s *Store) RecordContribution(ctx context.Context, poolID, memberID, method string) (*models.Pool, error) {
	for attempt := 0; attempt < contributionRetries; attempt++ {
		pool, err := s.GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}

		updated := pool.Clone()
		member := updated.MemberById(memberID)
		if member == nil {
			return nil, storage.ErrMemberNotFound
		}
		if updated.HasContribution(member.Name, updated.CurrentRound) {
			return nil, storage.ErrDuplicateContribution
		}

		now := time.Now()
		updated.Transactions = append(updated.Transactions, models.Transaction{
			Id:     updated.NextTransactionId(),
			Type:   models.TypeContribution,
			Amount: updated.ContributionAmount,
			Date:   now,
			Member: member.Name,
			Status: models.TxCompleted,
			Round:  updated.CurrentRound,
		})
		updated.TotalAmount += updated.ContributionAmount
		member.TotalContributed += updated.ContributionAmount

		payment := ensureRoundPayment(updated, memberID)
		if payment.Status == models.PaymentLate || payment.Status == models.PaymentMissed {
			member.PaymentsMissed++
		} else {
			member.PaymentsOnTime++
		}
		payment.Status = models.PaymentAdminVerified
		payment.Method = method
		payment.VerifiedAt = &now

		err = s.SavePool(ctx, updated, pool.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to record contribution for pool %s: %w", poolID, err)
		}
		return updated, nil
	}

	return nil, storage.ErrVersionConflict
}

// ConfirmRoundPayment records a member's own claim that they have paid,
// moving their round payment from pending to member_confirmed. Confirming an
// already confirmed or verified payment is a no-op.
func (s *Store) ConfirmRoundPayment(ctx context.Context, poolID, memberID string) (*models.Pool, error) {
	for attempt := 0; attempt < contributionRetries; attempt++ {
		pool, err := s.GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}

		updated := pool.Clone()
		if updated.MemberById(memberID) == nil {
			return nil, storage.ErrMemberNotFound
		}

		payment := ensureRoundPayment(updated, memberID)
		if payment.Status == models.PaymentMemberConfirmed || payment.Status == models.PaymentAdminVerified {
			return pool, nil
		}

		now := time.Now()
		payment.Status = models.PaymentMemberConfirmed
		payment.ConfirmedAt = &now

		err = s.SavePool(ctx, updated, pool.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to confirm payment for pool %s: %w", poolID, err)
		}
		return updated, nil
	}

	return nil, storage.ErrVersionConflict
}

// ensureRoundPayment returns the member's tracking record for the current
// round, seeding a pending one if the round advance cleared the list.
func ensureRoundPayment(pool *models.Pool, memberID string) *models.RoundPayment {
	if payment := pool.RoundPaymentFor(memberID); payment != nil {
		return payment
	}
	pool.CurrentRoundPayments = append(pool.CurrentRoundPayments, models.RoundPayment{
		MemberId: memberID,
		Status:   models.PaymentPending,
	})
	return &pool.CurrentRoundPayments[len(pool.CurrentRoundPayments)-1]
}
