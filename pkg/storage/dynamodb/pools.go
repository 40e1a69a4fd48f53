package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
)

// CreatePool persists a new pool document.
func (s *Store) CreatePool(ctx context.Context, pool *models.Pool) (*models.Pool, error) {
	now := time.Now()
	pool.CreatedAt = now
	pool.UpdatedAt = now

	poolAV, err := attributevalue.MarshalMap(pool)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pool: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.PoolsTableName),
		Item:                poolAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"), // Prevent overwriting existing pools.
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrPoolExists
		}
		return nil, fmt.Errorf("failed to create pool in DynamoDB: %w", err)
	}

	return pool, nil
}

// GetPool retrieves a pool document by its id.
func (s *Store) GetPool(ctx context.Context, poolID string) (*models.Pool, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": poolID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pool ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.PoolsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrPoolNotFound
	}

	var pool models.Pool
	if err := attributevalue.UnmarshalMap(result.Item, &pool); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool: %w", err)
	}

	return &pool, nil
}

// ListPools retrieves all pool documents.
func (s *Store) ListPools(ctx context.Context) ([]models.Pool, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.PoolsTableName),
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pools table: %w", err)
	}

	var pools []models.Pool
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &pools); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pools: %w", err)
	}

	return pools, nil
}

// DeletePool removes a pool document.
func (s *Store) DeletePool(ctx context.Context, poolID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"id": poolID})
	if err != nil {
		return fmt.Errorf("failed to marshal pool ID for deletion: %w", err)
	}

	input := &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.PoolsTableName),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(id)"),
	}

	_, err = s.Client.DeleteItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrPoolNotFound
		}
		return fmt.Errorf("failed to delete pool from DynamoDB: %w", err)
	}

	return nil
}
