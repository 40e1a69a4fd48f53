package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the store.
// Pools are single items, so plain conditional writes are sufficient; no
// multi-item transactions are needed.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB. Each pool is
// one item with members, transactions and round payments embedded, so every
// write is atomic over the whole aggregate.
type Store struct {
	Client               DynamoDBAPI
	PoolsTableName       string
	ConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, poolsTable, connectionsTable string) *Store {
	return &Store{
		Client:               client,
		PoolsTableName:       poolsTable,
		ConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
