package storage

import (
	"context"

	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
)

// PoolReader defines the interface for reading pool documents.
type PoolReader interface {
	// GetPool retrieves a pool by its id.
	GetPool(ctx context.Context, poolID string) (*models.Pool, error)

	// ListPools retrieves all pools.
	ListPools(ctx context.Context) ([]models.Pool, error)
}

// PoolWriter defines the interface for creating, replacing and deleting pool
// documents.
type PoolWriter interface {
	// CreatePool persists a new pool. Fails with ErrPoolExists if the id is taken.
	CreatePool(ctx context.Context, pool *models.Pool) (*models.Pool, error)

	// SavePool replaces the whole pool document, conditional on the stored
	// version still equalling expectedVersion. The pool's version is bumped as
	// part of the write. A lost race surfaces as ErrVersionConflict.
	SavePool(ctx context.Context, pool *models.Pool, expectedVersion int64) error

	// DeletePool removes a pool document.
	DeletePool(ctx context.Context, poolID string) error
}

// PoolStore combines the reader and writer interfaces. The payout engine
// depends on this: it reads the latest pool state, applies the round
// transition in memory and persists the result through the version guard.
type PoolStore interface {
	PoolReader
	PoolWriter
}
