package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
)

// maxConflictRetries bounds how often a payout attempt is replayed after
// losing the version race. Each retry re-reads and re-validates, so a
// concurrent winner's payout is detected as ErrPayoutAlreadyProcessed rather
// than being applied twice.
const maxConflictRetries = 3

// Service orchestrates the payout round transition against the storage
// layer: read the latest pool, apply the transition to a copy, persist the
// copy through the version-guarded write.
type Service struct {
	Store storage.PoolStore

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a payout Service backed by the given pool store.
func NewService(store storage.PoolStore) *Service {
	return &Service{Store: store, now: time.Now}
}

// ProcessPayout atomically transitions the pool from its current round to
// the next (or to completed on the final round). Exactly one of N concurrent
// calls for the same round succeeds; the rest fail with
// ErrPayoutAlreadyProcessed or storage.ErrVersionConflict.
func (s *Service) ProcessPayout(ctx context.Context, poolID string) (*models.Pool, error) {
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		pool, err := s.Store.GetPool(ctx, poolID)
		if err != nil {
			return nil, err
		}

		// Mutate a copy so a failed persist leaves no observable change.
		updated := pool.Clone()
		tx, err := Apply(updated, s.now())
		if err != nil {
			return nil, err
		}

		err = s.Store.SavePool(ctx, updated, pool.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			slog.Log(ctx, slog.LevelDebug, "payout write lost version race, re-validating",
				"pool_id", poolID, "round", tx.Round, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist payout for pool %s: %w", poolID, err)
		}

		return updated, nil
	}

	return nil, storage.ErrVersionConflict
}

// PayoutStatus returns the read-only eligibility report for the pool's
// current round.
func (s *Service) PayoutStatus(ctx context.Context, poolID string) (*Status, error) {
	pool, err := s.Store.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return CheckStatus(pool), nil
}
