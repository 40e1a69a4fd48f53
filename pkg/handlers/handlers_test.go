package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pgil256/juntas-seguras-sub006/pkg/api"
	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/notify"
	notifymocks "github.com/pgil256/juntas-seguras-sub006/pkg/notify/mocks"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage/mocks"
)

func newTestServer(t *testing.T) (*mocks.Storage, *notifymocks.Notifier, http.Handler) {
	store := mocks.NewStorage(t)
	notifier := notifymocks.NewNotifier(t)
	handler := NewApiHandler(store, notifier)
	router := api.HandlerFromMux(handler, chi.NewRouter())
	return store, notifier, router
}

// fixturePool builds a two-member pool in round 1 of 2 with both
// contributions already verified, so a payout would be eligible.
func fixturePool() *models.Pool {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	verified := now.Add(time.Hour)
	return &models.Pool{
		Id:                 "pool-1",
		Name:               "Vecinos del Barrio",
		ContributionAmount: 10,
		Frequency:          models.Weekly,
		TotalRounds:        2,
		CurrentRound:       1,
		Status:             models.PoolActive,
		TotalAmount:        20,
		Version:            3,
		Members: []models.Member{
			{Id: "m1", Name: "Ana", Email: "ana@example.com", Position: 1, Role: models.RoleAdmin, Status: models.MemberCurrent, TotalContributed: 10, PaymentsOnTime: 1, JoinedAt: now},
			{Id: "m2", Name: "Luis", Email: "luis@example.com", Position: 2, Role: models.RoleMember, Status: models.MemberUpcoming, TotalContributed: 10, PaymentsOnTime: 1, JoinedAt: now},
		},
		Transactions: []models.Transaction{
			{Id: 1, Type: models.TypeContribution, Amount: 10, Date: verified, Member: "Ana", Status: models.TxCompleted, Round: 1},
			{Id: 2, Type: models.TypeContribution, Amount: 10, Date: verified, Member: "Luis", Status: models.TxCompleted, Round: 1},
		},
		CurrentRoundPayments: []models.RoundPayment{
			{MemberId: "m1", Status: models.PaymentAdminVerified, Method: "cash", VerifiedAt: &verified},
			{MemberId: "m2", Status: models.PaymentAdminVerified, Method: "cash", VerifiedAt: &verified},
		},
		RoundStartedAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestCreatePool(t *testing.T) {
	validBody := func() []byte {
		b, _ := json.Marshal(api.NewPool{
			Name:               "Vecinos del Barrio",
			ContributionAmount: 10,
			Frequency:          "weekly",
			TotalRounds:        2,
			Members: []api.NewMember{
				{Name: "Ana", Email: "ana@example.com", Position: 1, Role: "admin"},
				{Name: "Luis", Email: "luis@example.com", Position: 2},
			},
		})
		return b
	}

	t.Run("Success", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("CreatePool", mock.Anything, mock.AnythingOfType("*models.Pool")).
			Return(func(ctx context.Context, pool *models.Pool) *models.Pool { return pool }, nil).
			Run(func(args mock.Arguments) {
				pool := args.Get(1).(*models.Pool)
				assert.Equal(t, 1, pool.CurrentRound)
				assert.Equal(t, int64(1), pool.Version)
				assert.Len(t, pool.CurrentRoundPayments, 2)
				assert.Equal(t, models.MemberCurrent, pool.MemberAtPosition(1).Status)
			})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools", bytes.NewReader(validBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Pool
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "Vecinos del Barrio", got.Name)
		assert.Len(t, got.Members, 2)
		assert.Equal(t, api.PoolStatus("active"), got.Status)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		_, _, router := newTestServer(t)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools", bytes.NewReader([]byte("{not json")))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Contribution Out Of Range", func(t *testing.T) {
		_, _, router := newTestServer(t)
		body, _ := json.Marshal(api.NewPool{
			Name:               "Too Rich",
			ContributionAmount: 21,
			TotalRounds:        1,
			Members:            []api.NewMember{{Name: "Ana", Email: "ana@example.com", Position: 1}},
		})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools", bytes.NewReader(body))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "contribution_amount")
	})

	t.Run("Duplicate Position", func(t *testing.T) {
		_, _, router := newTestServer(t)
		body, _ := json.Marshal(api.NewPool{
			Name:               "Clashing",
			ContributionAmount: 5,
			TotalRounds:        2,
			Members: []api.NewMember{
				{Name: "Ana", Email: "ana@example.com", Position: 1},
				{Name: "Luis", Email: "luis@example.com", Position: 1},
			},
		})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools", bytes.NewReader(body))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "position")
	})

	t.Run("Already Exists", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("CreatePool", mock.Anything, mock.AnythingOfType("*models.Pool")).
			Return(nil, storage.ErrPoolExists)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools", bytes.NewReader(validBody()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetPoolById(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("GetPool", mock.Anything, "pool-1").Return(fixturePool(), nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/pools/pool-1", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Pool
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "pool-1", got.Id)
		assert.Equal(t, int64(3), got.Version)
	})

	t.Run("Not Found", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("GetPool", mock.Anything, "missing").Return(nil, storage.ErrPoolNotFound)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/pools/missing", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListPools(t *testing.T) {
	store, _, router := newTestServer(t)
	store.On("ListPools", mock.Anything).Return([]models.Pool{*fixturePool()}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/pools", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.Pool
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Vecinos del Barrio", got[0].Name)
}

func TestDeletePool(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("DeletePool", mock.Anything, "pool-1").Return(nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/pools/pool-1", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("DeletePool", mock.Anything, "missing").Return(storage.ErrPoolNotFound)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/pools/missing", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRecordContribution(t *testing.T) {
	body := func() []byte {
		b, _ := json.Marshal(api.NewContribution{MemberId: "m2", Method: "cash"})
		return b
	}

	t.Run("Success Publishes Event", func(t *testing.T) {
		store, notifier, router := newTestServer(t)
		store.On("RecordContribution", mock.Anything, "pool-1", "m2", "cash").
			Return(fixturePool(), nil)
		notifier.On("Publish", mock.Anything, mock.MatchedBy(func(e *notify.Event) bool {
			return e.Type == notify.EventContributionVerified && e.PoolId == "pool-1"
		})).Return(nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools/pool-1/contributions", bytes.NewReader(body()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		notifier.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("Missing Member Id", func(t *testing.T) {
		_, _, router := newTestServer(t)
		b, _ := json.Marshal(api.NewContribution{Method: "cash"})

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools/pool-1/contributions", bytes.NewReader(b))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Member Not Found", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("RecordContribution", mock.Anything, "pool-1", "m2", "cash").
			Return(nil, storage.ErrMemberNotFound)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools/pool-1/contributions", bytes.NewReader(body()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Duplicate For Round", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("RecordContribution", mock.Anything, "pool-1", "m2", "cash").
			Return(nil, storage.ErrDuplicateContribution)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools/pool-1/contributions", bytes.NewReader(body()))
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestConfirmRoundPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("ConfirmRoundPayment", mock.Anything, "pool-1", "m2").
			Return(fixturePool(), nil)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools/pool-1/payments/m2/confirm", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Pool Not Found", func(t *testing.T) {
		store, _, router := newTestServer(t)
		store.On("ConfirmRoundPayment", mock.Anything, "missing", "m2").
			Return(nil, storage.ErrPoolNotFound)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/pools/missing/payments/m2/confirm", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
