package models

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PoolStatus defines the possible states of a pool.
type PoolStatus string

const (
	PoolActive    PoolStatus = "active"
	PoolCompleted PoolStatus = "completed"
)

// Frequency defines how often a contribution round occurs.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

// MemberRole defines a member's role within a pool.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// MemberStatus reflects where a member's payout round sits relative to the
// pool's current round.
type MemberStatus string

const (
	MemberUpcoming  MemberStatus = "upcoming"
	MemberCurrent   MemberStatus = "current"
	MemberCompleted MemberStatus = "completed"
)

// TransactionType defines the two kinds of ledger entries.
type TransactionType string

const (
	TypeContribution TransactionType = "contribution"
	TypePayout       TransactionType = "payout"
)

// TransactionStatus defines the possible states of a ledger entry.
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "completed"
	TxPending   TransactionStatus = "pending"
)

// RoundPaymentStatus tracks a member's payment for the current round,
// separate from the transaction ledger.
type RoundPaymentStatus string

const (
	PaymentPending         RoundPaymentStatus = "pending"
	PaymentMemberConfirmed RoundPaymentStatus = "member_confirmed"
	PaymentAdminVerified   RoundPaymentStatus = "admin_verified"
	PaymentLate            RoundPaymentStatus = "late"
	PaymentMissed          RoundPaymentStatus = "missed"
	PaymentExcused         RoundPaymentStatus = "excused"
)

// Member is a participant in a pool. Position determines payout order:
// round N pays out to the member whose position equals N.
type Member struct {
	Id               string              `json:"id" dynamodbav:"id"`
	Name             string              `json:"name" dynamodbav:"name"`
	Email            openapi_types.Email `json:"email" dynamodbav:"email"`
	Position         int                 `json:"position" dynamodbav:"position"`
	Role             MemberRole          `json:"role" dynamodbav:"role"`
	Status           MemberStatus        `json:"status" dynamodbav:"status"`
	PayoutReceived   bool                `json:"payout_received" dynamodbav:"payout_received"`
	TotalContributed int64               `json:"total_contributed" dynamodbav:"total_contributed"`
	PaymentsOnTime   int                 `json:"payments_on_time" dynamodbav:"payments_on_time"`
	PaymentsMissed   int                 `json:"payments_missed" dynamodbav:"payments_missed"`
	JoinedAt         time.Time           `json:"joined_at" dynamodbav:"joined_at"`
}

// Transaction is an immutable ledger entry within a pool. Ids are assigned
// monotonically (count of existing entries + 1) and never reused.
// The member field stores the member's name at the time of the entry, not a
// reference; this is a deliberate denormalization so that the ledger is a
// historical snapshot unaffected by later renames.
type Transaction struct {
	Id     int               `json:"id" dynamodbav:"id"`
	Type   TransactionType   `json:"type" dynamodbav:"type"`
	Amount int64             `json:"amount" dynamodbav:"amount"`
	Date   time.Time         `json:"date" dynamodbav:"date"`
	Member string            `json:"member" dynamodbav:"member"`
	Status TransactionStatus `json:"status" dynamodbav:"status"`
	Round  int               `json:"round" dynamodbav:"round"`
}

// RoundPayment tracks one member's payment for the current round. The list
// is cleared every time the round advances.
type RoundPayment struct {
	MemberId    string             `json:"member_id" dynamodbav:"member_id"`
	Status      RoundPaymentStatus `json:"status" dynamodbav:"status"`
	Method      string             `json:"method,omitempty" dynamodbav:"method,omitempty"`
	ConfirmedAt *time.Time         `json:"confirmed_at,omitempty" dynamodbav:"confirmed_at,omitempty"`
	VerifiedAt  *time.Time         `json:"verified_at,omitempty" dynamodbav:"verified_at,omitempty"`
}

// Pool is the aggregate root. Members, transactions and round payments are
// embedded; the whole pool is persisted as a single document, guarded by the
// Version counter for optimistic concurrency.
type Pool struct {
	Id                   string         `json:"id" dynamodbav:"id"`
	Name                 string         `json:"name" dynamodbav:"name"`
	ContributionAmount   int64          `json:"contribution_amount" dynamodbav:"contribution_amount"`
	Frequency            Frequency      `json:"frequency" dynamodbav:"frequency"`
	TotalRounds          int            `json:"total_rounds" dynamodbav:"total_rounds"`
	CurrentRound         int            `json:"current_round" dynamodbav:"current_round"`
	Status               PoolStatus     `json:"status" dynamodbav:"status"`
	TotalAmount          int64          `json:"total_amount" dynamodbav:"total_amount"`
	Version              int64          `json:"version" dynamodbav:"version"`
	Members              []Member       `json:"members" dynamodbav:"members"`
	Transactions         []Transaction  `json:"transactions" dynamodbav:"transactions"`
	CurrentRoundPayments []RoundPayment `json:"current_round_payments" dynamodbav:"current_round_payments"`
	RoundStartedAt       time.Time      `json:"round_started_at" dynamodbav:"round_started_at"`
	CreatedAt            time.Time      `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at" dynamodbav:"updated_at"`
}

// Recipient returns the member whose position equals the pool's current
// round, or nil if no such member exists.
func (p *Pool) Recipient() *Member {
	return p.MemberAtPosition(p.CurrentRound)
}

// MemberAtPosition returns the member at the given payout position, or nil.
func (p *Pool) MemberAtPosition(position int) *Member {
	for i := range p.Members {
		if p.Members[i].Position == position {
			return &p.Members[i]
		}
	}
	return nil
}

// MemberById returns the member with the given id, or nil.
func (p *Pool) MemberById(id string) *Member {
	for i := range p.Members {
		if p.Members[i].Id == id {
			return &p.Members[i]
		}
	}
	return nil
}

// PayoutForRound returns the payout transaction for the given round if one
// exists in a completed or pending state. This is the double-payout guard's
// source of truth.
func (p *Pool) PayoutForRound(round int) *Transaction {
	for i := range p.Transactions {
		tx := &p.Transactions[i]
		if tx.Type == TypePayout && tx.Round == round &&
			(tx.Status == TxCompleted || tx.Status == TxPending) {
			return tx
		}
	}
	return nil
}

// HasContribution reports whether a completed contribution transaction
// exists for the named member in the given round.
func (p *Pool) HasContribution(memberName string, round int) bool {
	for i := range p.Transactions {
		tx := &p.Transactions[i]
		if tx.Type == TypeContribution && tx.Round == round &&
			tx.Status == TxCompleted && tx.Member == memberName {
			return true
		}
	}
	return false
}

// NextTransactionId returns the id for the next ledger entry.
func (p *Pool) NextTransactionId() int {
	return len(p.Transactions) + 1
}

// RoundPaymentFor returns the current-round payment record for the given
// member, or nil if none has been seeded yet.
func (p *Pool) RoundPaymentFor(memberId string) *RoundPayment {
	for i := range p.CurrentRoundPayments {
		if p.CurrentRoundPayments[i].MemberId == memberId {
			return &p.CurrentRoundPayments[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the pool. Mutating flows operate on a copy so
// that a failed persist leaves the caller's view of the pool untouched.
func (p *Pool) Clone() *Pool {
	cp := *p
	cp.Members = append([]Member(nil), p.Members...)
	cp.Transactions = append([]Transaction(nil), p.Transactions...)
	cp.CurrentRoundPayments = append([]RoundPayment(nil), p.CurrentRoundPayments...)
	return &cp
}
