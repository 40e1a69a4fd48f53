package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List all pools
	// (GET /pools)
	ListPools(w http.ResponseWriter, r *http.Request)
	// Create a new pool
	// (POST /pools)
	CreatePool(w http.ResponseWriter, r *http.Request)
	// Get a pool by id
	// (GET /pools/{poolId})
	GetPoolById(w http.ResponseWriter, r *http.Request, poolId string)
	// Delete a pool
	// (DELETE /pools/{poolId})
	DeletePool(w http.ResponseWriter, r *http.Request, poolId string)
	// Record an admin-verified contribution for the current round
	// (POST /pools/{poolId}/contributions)
	RecordContribution(w http.ResponseWriter, r *http.Request, poolId string)
	// Member self-confirms their payment for the current round
	// (POST /pools/{poolId}/payments/{memberId}/confirm)
	ConfirmRoundPayment(w http.ResponseWriter, r *http.Request, poolId string, memberId string)
	// Get payout eligibility for the current round
	// (GET /pools/{poolId}/payout)
	GetPayoutStatus(w http.ResponseWriter, r *http.Request, poolId string)
	// Process the payout for the current round
	// (POST /pools/{poolId}/payout)
	ProcessPayout(w http.ResponseWriter, r *http.Request, poolId string)
}

// HandlerFromMux attaches the handler's routes to the given chi router.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	r.Get("/pools", si.ListPools)
	r.Post("/pools", si.CreatePool)
	r.Get("/pools/{poolId}", func(w http.ResponseWriter, req *http.Request) {
		si.GetPoolById(w, req, chi.URLParam(req, "poolId"))
	})
	r.Delete("/pools/{poolId}", func(w http.ResponseWriter, req *http.Request) {
		si.DeletePool(w, req, chi.URLParam(req, "poolId"))
	})
	r.Post("/pools/{poolId}/contributions", func(w http.ResponseWriter, req *http.Request) {
		si.RecordContribution(w, req, chi.URLParam(req, "poolId"))
	})
	r.Post("/pools/{poolId}/payments/{memberId}/confirm", func(w http.ResponseWriter, req *http.Request) {
		si.ConfirmRoundPayment(w, req, chi.URLParam(req, "poolId"), chi.URLParam(req, "memberId"))
	})
	r.Get("/pools/{poolId}/payout", func(w http.ResponseWriter, req *http.Request) {
		si.GetPayoutStatus(w, req, chi.URLParam(req, "poolId"))
	})
	r.Post("/pools/{poolId}/payout", func(w http.ResponseWriter, req *http.Request) {
		si.ProcessPayout(w, req, chi.URLParam(req, "poolId"))
	})
	return r
}
