package storage

import "context"

// ConnectionManager defines the interface for storing and retrieving
// WebSocket connection IDs used by the pool-event broadcast path.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetAllConnections(ctx context.Context) ([]string, error)
}
