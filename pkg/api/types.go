package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PoolStatus defines the possible states of a pool.
type PoolStatus string

// Frequency defines how often a contribution round occurs.
type Frequency string

// MemberRole defines a member's role within a pool.
type MemberRole string

// MemberStatus reflects where a member's payout round sits relative to the
// pool's current round.
type MemberStatus string

// TransactionType defines the two kinds of ledger entries.
type TransactionType string

// TransactionStatus defines the possible states of a ledger entry.
type TransactionStatus string

// RoundPaymentStatus tracks a member's payment for the current round.
type RoundPaymentStatus string

// NewMember is the request body item for a pool's initial roster.
type NewMember struct {
	Name     string              `json:"name"`
	Email    openapi_types.Email `json:"email"`
	Position int                 `json:"position"`
	Role     MemberRole          `json:"role,omitempty"`
}

// NewPool is the request body for creating a pool.
type NewPool struct {
	Name               string      `json:"name"`
	ContributionAmount int64       `json:"contribution_amount"`
	Frequency          Frequency   `json:"frequency"`
	TotalRounds        int         `json:"total_rounds"`
	Members            []NewMember `json:"members"`
}

// Member is a participant in a pool.
type Member struct {
	Id               string              `json:"id"`
	Name             string              `json:"name"`
	Email            openapi_types.Email `json:"email"`
	Position         int                 `json:"position"`
	Role             MemberRole          `json:"role"`
	Status           MemberStatus        `json:"status"`
	PayoutReceived   bool                `json:"payout_received"`
	TotalContributed int64               `json:"total_contributed"`
	PaymentsOnTime   int                 `json:"payments_on_time"`
	PaymentsMissed   int                 `json:"payments_missed"`
}

// Transaction is a ledger entry within a pool.
type Transaction struct {
	Id     int               `json:"id"`
	Type   TransactionType   `json:"type"`
	Amount int64             `json:"amount"`
	Date   time.Time         `json:"date"`
	Member string            `json:"member"`
	Status TransactionStatus `json:"status"`
	Round  int               `json:"round"`
}

// RoundPayment tracks one member's payment for the current round.
type RoundPayment struct {
	MemberId    string             `json:"member_id"`
	Status      RoundPaymentStatus `json:"status"`
	Method      string             `json:"method,omitempty"`
	ConfirmedAt *time.Time         `json:"confirmed_at,omitempty"`
	VerifiedAt  *time.Time         `json:"verified_at,omitempty"`
}

// Pool is the API view of a pool aggregate.
type Pool struct {
	Id                   string         `json:"id"`
	Name                 string         `json:"name"`
	ContributionAmount   int64          `json:"contribution_amount"`
	Frequency            Frequency      `json:"frequency"`
	TotalRounds          int            `json:"total_rounds"`
	CurrentRound         int            `json:"current_round"`
	Status               PoolStatus     `json:"status"`
	TotalAmount          int64          `json:"total_amount"`
	Version              int64          `json:"version"`
	Members              []Member       `json:"members"`
	Transactions         []Transaction  `json:"transactions"`
	CurrentRoundPayments []RoundPayment `json:"current_round_payments"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// NewContribution is the request body for recording a verified contribution.
type NewContribution struct {
	MemberId string `json:"member_id"`
	Method   string `json:"method"`
}

// PayoutResult is the response envelope for the payout mutation.
type PayoutResult struct {
	Success bool   `json:"success"`
	Pool    *Pool  `json:"pool,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PayoutStatus is the read-only eligibility report for UI polling.
type PayoutStatus struct {
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
