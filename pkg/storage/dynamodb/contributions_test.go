package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pgil256/juntas-seguras-sub006/pkg/models"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecordContribution(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		poolAV, _ := attributevalue.MarshalMap(fixturePool())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()
		mockClient.On("PutItem", mock.Anything, mock.AnythingOfType("*dynamodb.PutItemInput")).Return(&dynamodb.PutItemOutput{}, nil).Once()

		pool, err := store.RecordContribution(context.Background(), "pool-1", "m2", "venmo")

		assert.NoError(t, err)
		assert.Len(t, pool.Transactions, 1)
		tx := pool.Transactions[0]
		assert.Equal(t, 1, tx.Id)
		assert.Equal(t, models.TypeContribution, tx.Type)
		assert.Equal(t, int64(10), tx.Amount)
		assert.Equal(t, "Luis", tx.Member)
		assert.Equal(t, models.TxCompleted, tx.Status)
		assert.Equal(t, 1, tx.Round)

		assert.Equal(t, int64(10), pool.TotalAmount)
		member := pool.MemberById("m2")
		assert.Equal(t, int64(10), member.TotalContributed)
		assert.Equal(t, 1, member.PaymentsOnTime)

		payment := pool.RoundPaymentFor("m2")
		assert.Equal(t, models.PaymentAdminVerified, payment.Status)
		assert.Equal(t, "venmo", payment.Method)
		assert.NotNil(t, payment.VerifiedAt)
		mockClient.AssertExpectations(t)
	})

	t.Run("Late Payment Counts As Missed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		late := fixturePool()
		late.CurrentRoundPayments[1].Status = models.PaymentLate
		poolAV, _ := attributevalue.MarshalMap(late)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil).Once()

		pool, err := store.RecordContribution(context.Background(), "pool-1", "m2", "zelle")

		assert.NoError(t, err)
		member := pool.MemberById("m2")
		assert.Equal(t, 1, member.PaymentsMissed)
		assert.Equal(t, 0, member.PaymentsOnTime)
		assert.Equal(t, models.PaymentAdminVerified, pool.RoundPaymentFor("m2").Status)
	})

	t.Run("Duplicate For Same Round", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		contributed := fixturePool()
		contributed.Transactions = append(contributed.Transactions, models.Transaction{
			Id: 1, Type: models.TypeContribution, Amount: 10,
			Member: "Luis", Status: models.TxCompleted, Round: 1,
		})
		poolAV, _ := attributevalue.MarshalMap(contributed)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()

		_, err := store.RecordContribution(context.Background(), "pool-1", "m2", "venmo")

		assert.ErrorIs(t, err, storage.ErrDuplicateContribution)
		mockClient.AssertNotCalled(t, "PutItem", mock.Anything, mock.Anything)
	})

	t.Run("Member Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		poolAV, _ := attributevalue.MarshalMap(fixturePool())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()

		_, err := store.RecordContribution(context.Background(), "pool-1", "ghost", "venmo")

		assert.ErrorIs(t, err, storage.ErrMemberNotFound)
	})

	t.Run("Retries Exhausted On Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		poolAV, _ := attributevalue.MarshalMap(fixturePool())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil)
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.RecordContribution(context.Background(), "pool-1", "m2", "venmo")

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
		mockClient.AssertNumberOfCalls(t, "GetItem", contributionRetries)
	})
}

func TestConfirmRoundPayment(t *testing.T) {
	t.Run("Pending Becomes Member Confirmed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		poolAV, _ := attributevalue.MarshalMap(fixturePool())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil).Once()

		pool, err := store.ConfirmRoundPayment(context.Background(), "pool-1", "m1")

		assert.NoError(t, err)
		payment := pool.RoundPaymentFor("m1")
		assert.Equal(t, models.PaymentMemberConfirmed, payment.Status)
		assert.NotNil(t, payment.ConfirmedAt)
	})

	t.Run("Already Verified Is A No-Op", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		verified := fixturePool()
		verified.CurrentRoundPayments[0].Status = models.PaymentAdminVerified
		poolAV, _ := attributevalue.MarshalMap(verified)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()

		pool, err := store.ConfirmRoundPayment(context.Background(), "pool-1", "m1")

		assert.NoError(t, err)
		assert.Equal(t, models.PaymentAdminVerified, pool.RoundPaymentFor("m1").Status)
		mockClient.AssertNotCalled(t, "PutItem", mock.Anything, mock.Anything)
	})

	t.Run("Seeds Tracking After Round Advance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, PoolsTableName: "pools"}

		cleared := fixturePool()
		cleared.CurrentRoundPayments = nil // round advance cleared the list
		poolAV, _ := attributevalue.MarshalMap(cleared)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: poolAV}, nil).Once()
		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil).Once()

		pool, err := store.ConfirmRoundPayment(context.Background(), "pool-1", "m2")

		assert.NoError(t, err)
		assert.Len(t, pool.CurrentRoundPayments, 1)
		assert.Equal(t, models.PaymentMemberConfirmed, pool.RoundPaymentFor("m2").Status)
	})
}
