package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
	"github.com/tradehub/escrow-settlement/pkg/storage/dynamodb/mocks"
)

func TestConfirmTransaction(t *testing.T) {
	txID := "tx1"
	paidTx := func() *models.Transaction {
		return &models.Transaction{
			Id:       txID,
			BuyerId:  "buyer1",
			SellerId: "seller1",
			Amount:   15000,
			Status:   models.PAID,
		}
	}

	mockGetTransaction := func(mockClient *mocks.DynamoDBAPI, tx *models.Transaction) {
		item, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()
	}

	t.Run("First Confirmation", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockGetTransaction(mockClient, paidTx())
		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).
			Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		result, err := store.ConfirmTransaction(context.Background(), txID, "buyer1", []string{"receipt.png"})

		assert.NoError(t, err)
		assert.False(t, result.Completed)
		assert.True(t, result.Transaction.BuyerConfirmed)
		assert.Equal(t, models.PAID, result.Transaction.Status)
		assert.Nil(t, result.Transaction.CompletedAt)
		mockClient.AssertExpectations(t)
	})

	t.Run("Second Confirmation Completes", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		tx := paidTx()
		tx.BuyerConfirmed = true
		mockGetTransaction(mockClient, tx)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		result, err := store.ConfirmTransaction(context.Background(), txID, "seller1", nil)

		assert.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Equal(t, models.COMPLETED, result.Transaction.Status)
		assert.NotNil(t, result.Transaction.CompletedAt)
		assert.Equal(t, testClock(), *result.Transaction.CompletedAt)
		mockClient.AssertExpectations(t)
	})

	t.Run("Double Confirmation", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		tx := paidTx()
		tx.BuyerConfirmed = true
		mockGetTransaction(mockClient, tx)

		result, err := store.ConfirmTransaction(context.Background(), txID, "buyer1", nil)

		assert.ErrorIs(t, err, storage.ErrAlreadyConfirmed)
		assert.Nil(t, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not A Party", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockGetTransaction(mockClient, paidTx())

		result, err := store.ConfirmTransaction(context.Background(), txID, "stranger", nil)

		assert.ErrorIs(t, err, storage.ErrForbidden)
		assert.Nil(t, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Paid Yet", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		tx := paidTx()
		tx.Status = models.PENDING
		mockGetTransaction(mockClient, tx)

		result, err := store.ConfirmTransaction(context.Background(), txID, "buyer1", nil)

		assert.ErrorIs(t, err, storage.ErrNotConfirmable)
		assert.Nil(t, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Retries After Losing The Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		// First read sees nobody confirmed; the write fails because the seller
		// confirmed in between. The retry reads fresh state and completes.
		mockGetTransaction(mockClient, paidTx())
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{}).Once()

		raced := paidTx()
		raced.SellerConfirmed = true
		mockGetTransaction(mockClient, raced)
		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		result, err := store.ConfirmTransaction(context.Background(), txID, "buyer1", nil)

		assert.NoError(t, err)
		assert.True(t, result.Completed)
		assert.Equal(t, models.COMPLETED, result.Transaction.Status)
		mockClient.AssertExpectations(t)
	})
}
