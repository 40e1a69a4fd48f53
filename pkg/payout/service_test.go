package payout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProcessPayout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		pool := testPool(3, 10, 3)
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPool", mock.Anything, "pool-1").Return(pool, nil).Once()
		mockStorage.On("SavePool", mock.Anything, mock.AnythingOfType("*models.Pool"), pool.Version).Return(nil).Once()

		svc := NewService(mockStorage)
		updated, err := svc.ProcessPayout(ctx, "pool-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, updated.CurrentRound)
		assert.True(t, updated.MemberAtPosition(1).PayoutReceived)
		assert.NotNil(t, updated.PayoutForRound(1))
		// The pool read from storage is never mutated in place.
		assert.Equal(t, 1, pool.CurrentRound)
		assert.Nil(t, pool.PayoutForRound(1))
		mockStorage.AssertExpectations(t)
	})

	t.Run("Second Invocation Fails", func(t *testing.T) {
		pool := testPool(3, 10, 3)
		_, err := Apply(pool, pool.CreatedAt)
		assert.NoError(t, err)
		pool.CurrentRound = 1 // simulate a racing replay of round 1

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPool", mock.Anything, "pool-1").Return(pool, nil).Once()

		svc := NewService(mockStorage)
		_, err = svc.ProcessPayout(ctx, "pool-1")

		assert.ErrorIs(t, err, ErrPayoutAlreadyProcessed)
		mockStorage.AssertNotCalled(t, "SavePool", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pool Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPool", mock.Anything, "missing").Return(nil, storage.ErrPoolNotFound).Once()

		svc := NewService(mockStorage)
		_, err := svc.ProcessPayout(ctx, "missing")

		assert.ErrorIs(t, err, storage.ErrPoolNotFound)
	})

	t.Run("Conflict Retry Re-Validates", func(t *testing.T) {
		// First attempt loses the version race; the re-read sees the winner's
		// payout and fails the guard instead of double-applying.
		stale := testPool(3, 10, 3)
		won := testPool(3, 10, 3)
		_, err := Apply(won, won.CreatedAt)
		assert.NoError(t, err)
		won.Version = 2

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPool", mock.Anything, "pool-1").Return(stale, nil).Once()
		mockStorage.On("SavePool", mock.Anything, mock.Anything, stale.Version).Return(storage.ErrVersionConflict).Once()
		mockStorage.On("GetPool", mock.Anything, "pool-1").Return(won, nil).Once()

		svc := NewService(mockStorage)
		_, err = svc.ProcessPayout(ctx, "pool-1")

		// The winner advanced to round 2 with an unfunded balance, so the
		// loser's re-validation stops before any write.
		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrVersionConflict)
		mockStorage.AssertNumberOfCalls(t, "SavePool", 1)
	})

	t.Run("Conflict Retries Exhausted", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPool", mock.Anything, "pool-1").Return(testPool(3, 10, 3), nil)
		mockStorage.On("SavePool", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrVersionConflict)

		svc := NewService(mockStorage)
		_, err := svc.ProcessPayout(ctx, "pool-1")

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		mockStorage.AssertNumberOfCalls(t, "SavePool", maxConflictRetries)
	})

	t.Run("Storage Failure Leaves State Untouched", func(t *testing.T) {
		pool := testPool(3, 10, 3)
		before := pool.Clone()

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetPool", mock.Anything, "pool-1").Return(pool, nil).Once()
		mockStorage.On("SavePool", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("write timed out")).Once()

		svc := NewService(mockStorage)
		_, err := svc.ProcessPayout(ctx, "pool-1")

		assert.Error(t, err)
		assert.Equal(t, before, pool)
		mockStorage.AssertExpectations(t)
	})
}

// fakePoolStore is an in-memory PoolStore with real compare-and-swap
// semantics, used to exercise the engine under actual concurrency.
type fakePoolStore struct {
	mu   sync.Mutex
	pool *models.Pool
}

func (f *fakePoolStore) GetPool(ctx context.Context, poolID string) (*models.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pool == nil || f.pool.Id != poolID {
		return nil, storage.ErrPoolNotFound
	}
	return f.pool.Clone(), nil
}

func (f *fakePoolStore) ListPools(ctx context.Context) ([]models.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pool == nil {
		return nil, nil
	}
	return []models.Pool{*f.pool.Clone()}, nil
}

func (f *fakePoolStore) CreatePool(ctx context.Context, pool *models.Pool) (*models.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pool = pool.Clone()
	return pool, nil
}

func (f *fakePoolStore) SavePool(ctx context.Context, pool *models.Pool, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pool == nil || f.pool.Id != pool.Id {
		return storage.ErrPoolNotFound
	}
	if f.pool.Version != expectedVersion {
		return storage.ErrVersionConflict
	}
	pool.Version = expectedVersion + 1
	f.pool = pool.Clone()
	return nil
}

func (f *fakePoolStore) DeletePool(ctx context.Context, poolID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pool = nil
	return nil
}

func TestProcessPayoutConcurrency(t *testing.T) {
	const callers = 8
	ctx := context.Background()

	store := &fakePoolStore{}
	_, err := store.CreatePool(ctx, testPool(3, 10, 3))
	assert.NoError(t, err)

	svc := NewService(store)

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ProcessPayout(ctx, "pool-1")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			// Losers surface a typed rejection, never a silent no-op.
			assert.True(t,
				errors.Is(err, ErrPayoutAlreadyProcessed) ||
					errors.Is(err, ErrContributionsMissing) ||
					errors.Is(err, ErrInsufficientBalance) ||
					errors.Is(err, storage.ErrVersionConflict),
				"unexpected loser error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	final, err := store.GetPool(ctx, "pool-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, final.CurrentRound) // advanced exactly one step

	payouts := 0
	for _, tx := range final.Transactions {
		if tx.Type == models.TypePayout && tx.Round == 1 {
			payouts++
		}
	}
	assert.Equal(t, 1, payouts)
}

func TestPayoutStatusQuery(t *testing.T) {
	mockStorage := new(mocks.Storage)
	mockStorage.On("GetPool", mock.Anything, "pool-1").Return(testPool(3, 10, 3), nil).Once()

	svc := NewService(mockStorage)
	st, err := svc.PayoutStatus(context.Background(), "pool-1")

	assert.NoError(t, err)
	assert.True(t, st.Eligible)
	assert.Equal(t, int64(30), st.PayoutAmount)
	// Status is a read path; nothing may be written.
	mockStorage.AssertNotCalled(t, "SavePool", mock.Anything, mock.Anything, mock.Anything)
}
