package mapping

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgil256/juntas-seguras-sub006/pkg/api"
	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/payout"
)

// ToApiMember converts a domain Member model to an API Member model.
func ToApiMember(member *models.Member) api.Member {
	return api.Member{
		Id:               member.Id,
		Name:             member.Name,
		Email:            member.Email,
		Position:         member.Position,
		Role:             api.MemberRole(member.Role),
		Status:           api.MemberStatus(member.Status),
		PayoutReceived:   member.PayoutReceived,
		TotalContributed: member.TotalContributed,
		PaymentsOnTime:   member.PaymentsOnTime,
		PaymentsMissed:   member.PaymentsMissed,
	}
}

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) api.Transaction {
	return api.Transaction{
		Id:     tx.Id,
		Type:   api.TransactionType(tx.Type),
		Amount: tx.Amount,
		Date:   tx.Date,
		Member: tx.Member,
		Status: api.TransactionStatus(tx.Status),
		Round:  tx.Round,
	}
}

// ToApiRoundPayment converts a domain RoundPayment model to an API RoundPayment model.
func ToApiRoundPayment(payment *models.RoundPayment) api.RoundPayment {
	return api.RoundPayment{
		MemberId:    payment.MemberId,
		Status:      api.RoundPaymentStatus(payment.Status),
		Method:      payment.Method,
		ConfirmedAt: payment.ConfirmedAt,
		VerifiedAt:  payment.VerifiedAt,
	}
}

// ToApiPool converts a domain Pool model to an API Pool model.
func ToApiPool(pool *models.Pool) *api.Pool {
	apiPool := &api.Pool{
		Id:                   pool.Id,
		Name:                 pool.Name,
		ContributionAmount:   pool.ContributionAmount,
		Frequency:            api.Frequency(pool.Frequency),
		TotalRounds:          pool.TotalRounds,
		CurrentRound:         pool.CurrentRound,
		Status:               api.PoolStatus(pool.Status),
		TotalAmount:          pool.TotalAmount,
		Version:              pool.Version,
		Members:              make([]api.Member, len(pool.Members)),
		Transactions:         make([]api.Transaction, len(pool.Transactions)),
		CurrentRoundPayments: make([]api.RoundPayment, len(pool.CurrentRoundPayments)),
		CreatedAt:            pool.CreatedAt,
		UpdatedAt:            pool.UpdatedAt,
	}
	for i := range pool.Members {
		apiPool.Members[i] = ToApiMember(&pool.Members[i])
	}
	for i := range pool.Transactions {
		apiPool.Transactions[i] = ToApiTransaction(&pool.Transactions[i])
	}
	for i := range pool.CurrentRoundPayments {
		apiPool.CurrentRoundPayments[i] = ToApiRoundPayment(&pool.CurrentRoundPayments[i])
	}
	return apiPool
}

// ToDomainNewPool converts an API NewPool request to a fully initialized
// domain Pool: round 1 active, the position-1 member current, everyone's
// round payment seeded pending.
func ToDomainNewPool(newPool *api.NewPool) *models.Pool {
	now := time.Now()
	pool := &models.Pool{
		Id:                 uuid.New().String(),
		Name:               newPool.Name,
		ContributionAmount: newPool.ContributionAmount,
		Frequency:          models.Frequency(newPool.Frequency),
		TotalRounds:        newPool.TotalRounds,
		CurrentRound:       1,
		Status:             models.PoolActive,
		Version:            1,
		RoundStartedAt:     now,
	}

	for _, nm := range newPool.Members {
		role := models.MemberRole(nm.Role)
		if role == "" {
			role = models.RoleMember
		}
		status := models.MemberUpcoming
		if nm.Position == 1 {
			status = models.MemberCurrent
		}
		member := models.Member{
			Id:       uuid.New().String(),
			Name:     nm.Name,
			Email:    nm.Email,
			Position: nm.Position,
			Role:     role,
			Status:   status,
			JoinedAt: now,
		}
		pool.Members = append(pool.Members, member)
		pool.CurrentRoundPayments = append(pool.CurrentRoundPayments, models.RoundPayment{
			MemberId: member.Id,
			Status:   models.PaymentPending,
		})
	}

	return pool
}

// ToApiPayoutStatus converts an engine eligibility report to its API model.
func ToApiPayoutStatus(st *payout.Status) *api.PayoutStatus {
	return &api.PayoutStatus{
		PoolId:               st.PoolId,
		Round:                st.Round,
		Eligible:             st.Eligible,
		PayoutAmount:         st.PayoutAmount,
		RecipientId:          st.RecipientId,
		RecipientName:        st.RecipientName,
		AlreadyProcessed:     st.AlreadyProcessed,
		MissingContributions: st.MissingContributions,
		InsufficientBalance:  st.InsufficientBalance,
	}
}
