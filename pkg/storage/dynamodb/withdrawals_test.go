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

func TestRequestWithdrawal(t *testing.T) {
	mockGetWallet := func(mockClient *mocks.DynamoDBAPI, wallet *models.Wallet) {
		item, _ := attributevalue.MarshalMap(wallet)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()
	}

	newRequest := func() *models.Withdrawal {
		return &models.Withdrawal{UserId: "user1", Amount: 5000, PayoutKey: "pix-key-1"}
	}

	t.Run("Success Debits Wallet And Binds Key", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockGetWallet(mockClient, &models.Wallet{UserId: "user1", Balance: 10000})
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		w, err := store.RequestWithdrawal(context.Background(), newRequest())

		assert.NoError(t, err)
		assert.Equal(t, models.WithdrawalPending, w.Status)
		assert.NotEmpty(t, w.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockGetWallet(mockClient, &models.Wallet{UserId: "user1", Balance: 4999})

		w, err := store.RequestWithdrawal(context.Background(), newRequest())

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.Nil(t, w)
		mockClient.AssertExpectations(t)
	})

	t.Run("Payout Key Mismatch", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockGetWallet(mockClient, &models.Wallet{UserId: "user1", Balance: 10000, PayoutKey: "pix-key-original"})

		w, err := store.RequestWithdrawal(context.Background(), newRequest())

		assert.ErrorIs(t, err, storage.ErrPayoutKeyMismatch)
		assert.Nil(t, w)
		mockClient.AssertExpectations(t)
	})

	t.Run("Same Key Accepted After Binding", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockGetWallet(mockClient, &models.Wallet{UserId: "user1", Balance: 10000, PayoutKey: "pix-key-1"})
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		w, err := store.RequestWithdrawal(context.Background(), newRequest())

		assert.NoError(t, err)
		assert.Equal(t, models.WithdrawalPending, w.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Balance Races To Zero", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		// The pre-read sees enough balance but the conditional debit fails: a
		// concurrent withdrawal spent it first.
		wallet := &models.Wallet{UserId: "user1", Balance: 5000}
		mockGetWallet(mockClient, wallet)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, &types.TransactionCanceledException{
				CancellationReasons: []types.CancellationReason{
					{Code: strPtr("ConditionalCheckFailed")},
				},
			}).Once()

		// The post-failure re-read shows the drained balance.
		drained, _ := attributevalue.MarshalMap(&models.Wallet{UserId: "user1", Balance: 0})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: drained}, nil).Once()

		w, err := store.RequestWithdrawal(context.Background(), newRequest())

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.Nil(t, w)
		mockClient.AssertExpectations(t)
	})
}

func TestRejectWithdrawal(t *testing.T) {
	pending := &models.Withdrawal{Id: "w1", UserId: "user1", Amount: 5000, Status: models.WithdrawalPending}

	t.Run("Refunds The Hold", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		item, _ := attributevalue.MarshalMap(pending)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		err := store.RejectWithdrawal(context.Background(), "w1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Pending", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		done := &models.Withdrawal{Id: "w1", Status: models.WithdrawalCompleted}
		item, _ := attributevalue.MarshalMap(done)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()

		err := store.RejectWithdrawal(context.Background(), "w1")

		assert.ErrorIs(t, err, storage.ErrWithdrawalNotPending)
		mockClient.AssertExpectations(t)
	})
}

func TestApproveWithdrawal(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).
			Return(&dynamodb.UpdateItemOutput{}, nil).Once()

		err := store.ApproveWithdrawal(context.Background(), "w1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Pending", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.ApproveWithdrawal(context.Background(), "w1")

		assert.ErrorIs(t, err, storage.ErrWithdrawalNotPending)
		mockClient.AssertExpectations(t)
	})
}

func strPtr(s string) *string { return &s }
