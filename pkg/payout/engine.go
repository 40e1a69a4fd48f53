package payout

import (
	"time"

	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
)

// Amount computes the payout for one round. Under the universal contribution
// model every member, including the recipient, contributes each round, so the
// payout is always contributionAmount * memberCount.
func Amount(pool *models.Pool) int64 {
	return pool.ContributionAmount * int64(len(pool.Members))
}

// missingContributions returns the names of members without a completed
// contribution transaction for the current round.
func missingContributions(pool *models.Pool) []string {
	var missing []string
	for i := range pool.Members {
		if !pool.HasContribution(pool.Members[i].Name, pool.CurrentRound) {
			missing = append(missing, pool.Members[i].Name)
		}
	}
	return missing
}

// Validate checks whether a payout may be processed for the pool's current
// round. Checks run in a fixed order so each failure mode is distinct.
func Validate(pool *models.Pool) error {
	if pool.Status == models.PoolCompleted {
		return ErrPoolCompleted
	}

	recipient := pool.Recipient()
	if recipient == nil {
		return ErrRecipientNotFound
	}

	// Double-payout guard: the ledger check is authoritative, the recipient's
	// payout_received flag is a redundant second guard.
	if pool.PayoutForRound(pool.CurrentRound) != nil || recipient.PayoutReceived {
		return ErrPayoutAlreadyProcessed
	}

	if len(missingContributions(pool)) > 0 {
		return ErrContributionsMissing
	}

	if pool.TotalAmount < Amount(pool) {
		return ErrInsufficientBalance
	}

	return nil
}

// Apply performs the round transition in memory: it validates eligibility,
// appends the payout transaction, flips the recipient's flags, debits the
// balance, advances the round (or completes the pool on the final round) and
// clears the per-round payment tracking. The caller is responsible for
// persisting the mutated pool atomically; on error the pool is untouched.
func Apply(pool *models.Pool, now time.Time) (*models.Transaction, error) {
	if err := Validate(pool); err != nil {
		return nil, err
	}

	recipient := pool.Recipient()
	amount := Amount(pool)

	tx := models.Transaction{
		Id:     pool.NextTransactionId(),
		Type:   models.TypePayout,
		Amount: amount,
		Date:   now,
		Member: recipient.Name,
		Status: models.TxCompleted,
		Round:  pool.CurrentRound,
	}
	pool.Transactions = append(pool.Transactions, tx)

	recipient.PayoutReceived = true
	recipient.Status = models.MemberCompleted

	pool.TotalAmount -= amount
	if pool.TotalAmount < 0 {
		pool.TotalAmount = 0
	}

	if pool.CurrentRound < pool.TotalRounds {
		pool.CurrentRound++
		if next := pool.Recipient(); next != nil {
			next.Status = models.MemberCurrent
		}
		pool.RoundStartedAt = now
	} else {
		pool.Status = models.PoolCompleted
	}

	pool.CurrentRoundPayments = []models.RoundPayment{}

	return &pool.Transactions[len(pool.Transactions)-1], nil
}

// Status is the read-only eligibility report for UI polling. Unlike Validate
// it does not stop at the first failure: it reports every outstanding
// condition so the admin can see what is left before the round can close.
type Status struct {
	PoolId               string   `json:"pool_id"`
	Round                int      `json:"round"`
	Eligible             bool     `json:"eligible"`
	PayoutAmount         int64    `json:"payout_amount"`
	RecipientId          string   `json:"recipient_id,omitempty"`
	RecipientName        string   `json:"recipient_name,omitempty"`
	AlreadyProcessed     bool     `json:"already_processed"`
	MissingContributions []string `json:"missing_contributions,omitempty"`
	InsufficientBalance  bool     `json:"insufficient_balance"`
}

// CheckStatus builds the eligibility report for the pool's current round
// without side effects.
func CheckStatus(pool *models.Pool) *Status {
	st := &Status{
		PoolId:       pool.Id,
		Round:        pool.CurrentRound,
		PayoutAmount: Amount(pool),
	}

	if recipient := pool.Recipient(); recipient != nil {
		st.RecipientId = recipient.Id
		st.RecipientName = recipient.Name
	}

	st.AlreadyProcessed = pool.PayoutForRound(pool.CurrentRound) != nil
	st.MissingContributions = missingContributions(pool)
	st.InsufficientBalance = pool.TotalAmount < st.PayoutAmount
	st.Eligible = Validate(pool) == nil

	return st
}
