package payout

import "errors"

// ErrRecipientNotFound is returned when no member's position matches the
// pool's current round.
var ErrRecipientNotFound = errors.New("no recipient found for current round")

// ErrPayoutAlreadyProcessed is the double-payout guard: a completed or
// pending payout transaction already exists for the current round.
var ErrPayoutAlreadyProcessed = errors.New("payout already processed for this round")

// ErrContributionsMissing is returned when not every member has a completed
// contribution transaction for the current round.
var ErrContributionsMissing = errors.New("not all members have contributed for this round")

// ErrInsufficientBalance is returned when the pool balance is below the
// computed payout amount. It blocks the mutating path; the read-only status
// query reports it as advisory.
var ErrInsufficientBalance = errors.New("insufficient pool balance for payout")

// ErrPoolCompleted is returned when a payout is attempted on a pool that has
// already finished its final round.
var ErrPoolCompleted = errors.New("pool already completed")
