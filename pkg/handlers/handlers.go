package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pgil256/juntas-seguras-sub006/pkg/api"
	"github.com/pgil256/juntas-seguras-sub006/pkg/mapping"
	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/notify"
	"github.com/pgil256/juntas-seguras-sub006/pkg/payout"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
)

// ApiHandler implements the server interface.
// It holds the application's dependencies: the storage layer, the payout
// engine and the (optional) notifier. Authorization is handled upstream;
// handlers only enforce data invariants.
type ApiHandler struct {
	Store    storage.ApiStore
	Payouts  *payout.Service
	Notifier notify.Notifier
}

// NewApiHandler creates a new ApiHandler with its dependencies. The notifier
// may be nil, in which case events are simply not published.
func NewApiHandler(store storage.ApiStore, notifier notify.Notifier) *ApiHandler {
	return &ApiHandler{
		Store:    store,
		Payouts:  payout.NewService(store),
		Notifier: notifier,
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// CreatePool handles the logic for creating a new pool.
func (h *ApiHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var newPool api.NewPool
	if err := json.NewDecoder(r.Body).Decode(&newPool); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := validateNewPool(&newPool); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	domainPool := mapping.ToDomainNewPool(&newPool)

	createdPool, err := h.Store.CreatePool(r.Context(), domainPool)
	if err != nil {
		if errors.Is(err, storage.ErrPoolExists) {
			http.Error(w, "Pool already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create pool: %v", err), http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiPool(createdPool))
}

// GetPoolById handles the logic for retrieving a pool by its ID.
func (h *ApiHandler) GetPoolById(w http.ResponseWriter, r *http.Request, poolId string) {
	domainPool, err := h.Store.GetPool(r.Context(), poolId)
	if err != nil {
		if errors.Is(err, storage.ErrPoolNotFound) {
			http.Error(w, "Pool not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve pool: %v", err), http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiPool(domainPool))
}

// ListPools handles the logic for retrieving all pools.
func (h *ApiHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	domainPools, err := h.Store.ListPools(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve pools: %v", err), http.StatusInternalServerError)
		return
	}

	apiPools := make([]*api.Pool, len(domainPools))
	for i := range domainPools {
		apiPools[i] = mapping.ToApiPool(&domainPools[i])
	}

	respondJSON(w, http.StatusOK, apiPools)
}

// DeletePool handles the logic for deleting a pool.
func (h *ApiHandler) DeletePool(w http.ResponseWriter, r *http.Request, poolId string) {
	if err := h.Store.DeletePool(r.Context(), poolId); err != nil {
		if errors.Is(err, storage.ErrPoolNotFound) {
			http.Error(w, "Pool not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to delete pool: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordContribution handles the admin recording a verified contribution for
// the current round.
func (h *ApiHandler) RecordContribution(w http.ResponseWriter, r *http.Request, poolId string) {
	var newContribution api.NewContribution
	if err := json.NewDecoder(r.Body).Decode(&newContribution); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newContribution.MemberId == "" {
		http.Error(w, "member_id is required", http.StatusBadRequest)
		return
	}

	updatedPool, err := h.Store.RecordContribution(r.Context(), poolId, newContribution.MemberId, newContribution.Method)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	h.publish(r, &notify.Event{
		Type:       notify.EventContributionVerified,
		PoolId:     updatedPool.Id,
		PoolName:   updatedPool.Name,
		MemberName: memberName(updatedPool, newContribution.MemberId),
		Amount:     updatedPool.ContributionAmount,
		Round:      updatedPool.CurrentRound,
	})

	respondJSON(w, http.StatusCreated, mapping.ToApiPool(updatedPool))
}

// ConfirmRoundPayment handles a member self-reporting their payment for the
// current round.
func (h *ApiHandler) ConfirmRoundPayment(w http.ResponseWriter, r *http.Request, poolId string, memberId string) {
	updatedPool, err := h.Store.ConfirmRoundPayment(r.Context(), poolId, memberId)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiPool(updatedPool))
}

func validateNewPool(newPool *api.NewPool) error {
	if newPool.Name == "" {
		return errors.New("name is required")
	}
	if newPool.ContributionAmount < 1 || newPool.ContributionAmount > 20 {
		return errors.New("contribution_amount must be between 1 and 20")
	}
	if newPool.TotalRounds < 1 {
		return errors.New("total_rounds must be at least 1")
	}
	if len(newPool.Members) == 0 {
		return errors.New("at least one member is required")
	}

	seen := make(map[int]bool, len(newPool.Members))
	for _, member := range newPool.Members {
		if member.Name == "" {
			return errors.New("every member needs a name")
		}
		if member.Position < 1 || member.Position > newPool.TotalRounds {
			return fmt.Errorf("member position %d is outside 1..%d", member.Position, newPool.TotalRounds)
		}
		if seen[member.Position] {
			return fmt.Errorf("duplicate member position %d", member.Position)
		}
		seen[member.Position] = true
	}
	return nil
}

func respondStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrPoolNotFound):
		http.Error(w, "Pool not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrMemberNotFound):
		http.Error(w, "Member not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrDuplicateContribution):
		http.Error(w, "Contribution already recorded for this round", http.StatusConflict)
	case errors.Is(err, storage.ErrVersionConflict):
		http.Error(w, "Pool was modified concurrently, please retry", http.StatusConflict)
	default:
		http.Error(w, fmt.Sprintf("Storage failure: %v", err), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func memberName(pool *models.Pool, memberId string) string {
	if member := pool.MemberById(memberId); member != nil {
		return member.Name
	}
	return ""
}
