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

// SavePool replaces the whole pool document, conditional on the stored
// version still equalling expectedVersion. The condition is what serializes
// concurrent round transitions: a write based on stale state fails with
// ErrVersionConflict instead of overwriting the winner, and since the entire
// aggregate lands in one PutItem there is never a partially applied payout.
func (s *Store) SavePool(ctx context.Context, pool *models.Pool, expectedVersion int64) error {
	pool.Version = expectedVersion + 1
	pool.UpdatedAt = time.Now()

	poolAV, err := attributevalue.MarshalMap(pool)
	if err != nil {
		pool.Version = expectedVersion
		return fmt.Errorf("failed to marshal pool: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.PoolsTableName),
		Item:                poolAV,
		ConditionExpression: aws.String("attribute_exists(id) AND version = :expected"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		// Leave the caller's copy at the version it was read at.
		pool.Version = expectedVersion

		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrVersionConflict
		}
		return fmt.Errorf("failed to save pool to DynamoDB: %w", err)
	}

	return nil
}
