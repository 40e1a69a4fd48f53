package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pgil256/juntas-seguras-sub006/pkg/api"
	"github.com/pgil256/juntas-seguras-sub006/pkg/mapping"
	"github.com/pgil256/juntas-seguras-sub006/pkg/notify"
	"github.com/pgil256/juntas-seguras-sub006/pkg/payout"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
)

// ProcessPayout handles the payout mutation for a pool's current round. The
// engine guarantees at-most-once application per round; concurrent callers
// lose the version race and get a conflict here.
func (h *ApiHandler) ProcessPayout(w http.ResponseWriter, r *http.Request, poolId string) {
	updatedPool, err := h.Payouts.ProcessPayout(r.Context(), poolId)
	if err != nil {
		status, message := payoutErrorResponse(err)
		respondJSON(w, status, api.PayoutResult{Success: false, Error: message})
		return
	}

	// The payout is committed at this point. Notification delivery is
	// best-effort and must never surface as a request failure. The payout
	// entry is always the most recent one in the ledger.
	tx := updatedPool.Transactions[len(updatedPool.Transactions)-1]
	h.publish(r, &notify.Event{
		Type:       notify.EventPayoutCompleted,
		PoolId:     updatedPool.Id,
		PoolName:   updatedPool.Name,
		MemberName: tx.Member,
		Amount:     tx.Amount,
		Round:      tx.Round,
	})

	respondJSON(w, http.StatusOK, api.PayoutResult{
		Success: true,
		Pool:    mapping.ToApiPool(updatedPool),
	})
}

// GetPayoutStatus reports whether the current round's payout can proceed,
// without mutating anything. Intended for UI polling.
func (h *ApiHandler) GetPayoutStatus(w http.ResponseWriter, r *http.Request, poolId string) {
	status, err := h.Payouts.PayoutStatus(r.Context(), poolId)
	if err != nil {
		if errors.Is(err, storage.ErrPoolNotFound) {
			http.Error(w, "Pool not found", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to compute payout status", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiPayoutStatus(status))
}

// payoutErrorResponse maps an engine error to an HTTP status and a stable,
// client-safe message.
func payoutErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrPoolNotFound):
		return http.StatusNotFound, "pool not found"
	case errors.Is(err, payout.ErrRecipientNotFound):
		return http.StatusUnprocessableEntity, "no member holds the current round's position"
	case errors.Is(err, payout.ErrContributionsMissing):
		return http.StatusUnprocessableEntity, "not all members have contributed this round"
	case errors.Is(err, payout.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "pool balance cannot cover the payout"
	case errors.Is(err, payout.ErrPoolCompleted):
		return http.StatusUnprocessableEntity, "pool has already completed all rounds"
	case errors.Is(err, payout.ErrPayoutAlreadyProcessed):
		return http.StatusConflict, "payout already processed for this round"
	case errors.Is(err, storage.ErrVersionConflict):
		return http.StatusConflict, "pool was modified concurrently, please retry"
	default:
		return http.StatusInternalServerError, "payout failed due to a storage error"
	}
}

// publish sends an event through the notifier, logging delivery failures at
// the highest severity because the state change they describe has already
// been committed.
func (h *ApiHandler) publish(r *http.Request, event *notify.Event) {
	if h.Notifier == nil {
		return
	}
	event.Id = uuid.New().String()
	event.OccurredAt = time.Now()
	if err := h.Notifier.Publish(r.Context(), event); err != nil {
		slog.Error("CRITICAL: state committed but notification publish failed",
			"pool_id", event.PoolId, "event_type", event.Type, "error", err)
	}
}
