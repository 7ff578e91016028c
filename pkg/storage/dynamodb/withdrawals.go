package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// RequestWithdrawal debits the wallet and creates the pending withdrawal in
// one atomic unit. The debit is a pessimistic hold: the money leaves the
// balance now, so a second request cannot spend it while the first awaits
// processing. The wallet update also binds the payout key on first use via
// if_not_exists, and its condition rejects a different key ever after.
func (s *Store) RequestWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error) {
	// Pre-read to turn the two condition failures into distinct errors.
	wallet, err := s.GetWallet(ctx, w.UserId)
	if err != nil {
		return nil, err
	}
	if wallet.PayoutKey != "" && wallet.PayoutKey != w.PayoutKey {
		return nil, storage.ErrPayoutKeyMismatch
	}
	if wallet.Balance < w.Amount {
		return nil, storage.ErrInsufficientFunds
	}

	now := s.Clock()
	w.Id = uuid.New().String()
	w.Status = models.WithdrawalPending
	w.CreatedAt = now

	withdrawalAV, err := attributevalue.MarshalMap(w)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawal: %w", err)
	}
	amountAV, err := attributevalue.Marshal(w.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	debitEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: w.Id,
		AccountID:     w.UserId,
		Debit:         w.Amount,
		Description:   fmt.Sprintf("Withdrawal hold for request %s", w.Id),
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	debitAV, err := attributevalue.MarshalMap(debitEntry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal debit entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: debit the wallet and bind the payout key. The
				// condition re-checks both balance and key inside the
				// transaction, so the pre-read above is advisory only.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Wallets),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: w.UserId},
					},
					UpdateExpression:    aws.String("SET balance = balance - :amount, payout_key = if_not_exists(payout_key, :key)"),
					ConditionExpression: aws.String("balance >= :amount AND (attribute_not_exists(payout_key) OR payout_key = :key)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":key":    &types.AttributeValueMemberS{Value: w.PayoutKey},
					},
				},
			},
			{
				// Operation 2: create the pending withdrawal.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Withdrawals),
					Item:                withdrawalAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 3: ledger debit for the hold.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                debitAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactCancelledAt(err, 0) {
			// The balance or the bound key changed between the pre-read and
			// the write. Re-read to report which.
			current, gerr := s.GetWallet(ctx, w.UserId)
			if gerr == nil && current.PayoutKey != "" && current.PayoutKey != w.PayoutKey {
				return nil, storage.ErrPayoutKeyMismatch
			}
			return nil, storage.ErrInsufficientFunds
		}
		return nil, fmt.Errorf("failed to execute withdrawal transaction: %w", err)
	}

	return w, nil
}

// GetWithdrawal retrieves a withdrawal by its ID.
func (s *Store) GetWithdrawal(ctx context.Context, withdrawalID string) (*models.Withdrawal, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": withdrawalID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawal ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Withdrawals),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var w models.Withdrawal
	if err := attributevalue.UnmarshalMap(result.Item, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawal: %w", err)
	}

	return &w, nil
}

// ListPendingWithdrawals retrieves all withdrawals awaiting processing.
func (s *Store) ListPendingWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Withdrawals),
		FilterExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": &types.AttributeValueMemberS{Value: string(models.WithdrawalPending)},
		},
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan withdrawals: %w", err)
	}

	var withdrawals []models.Withdrawal
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawals: %w", err)
	}

	return withdrawals, nil
}

// ApproveWithdrawal marks a pending withdrawal completed. The funds already
// left the wallet at request time, so approval is a pure status flip.
func (s *Store) ApproveWithdrawal(ctx context.Context, withdrawalID string) error {
	now := s.Clock()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Withdrawals),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: withdrawalID},
		},
		UpdateExpression:    aws.String("SET #status = :completed, processed_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(models.WithdrawalCompleted)},
			":pending":   &types.AttributeValueMemberS{Value: string(models.WithdrawalPending)},
			":now":       nowAV,
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return storage.ErrWithdrawalNotPending
		}
		return fmt.Errorf("failed to approve withdrawal: %w", err)
	}

	return nil
}

// RejectWithdrawal releases the pessimistic hold: the withdrawal flips to
// rejected and the held amount returns to the wallet, atomically.
func (s *Store) RejectWithdrawal(ctx context.Context, withdrawalID string) error {
	w, err := s.GetWithdrawal(ctx, withdrawalID)
	if err != nil {
		return err
	}
	if w.Status != models.WithdrawalPending {
		return storage.ErrWithdrawalNotPending
	}

	now := s.Clock()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	amountAV, err := attributevalue.Marshal(w.Amount)
	if err != nil {
		return fmt.Errorf("failed to marshal amount: %w", err)
	}

	creditEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: w.Id,
		AccountID:     w.UserId,
		Credit:        w.Amount,
		Description:   fmt.Sprintf("Withdrawal hold released for request %s", w.Id),
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	creditAV, err := attributevalue.MarshalMap(creditEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal credit entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: flip the withdrawal, guarded on pending.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Withdrawals),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: withdrawalID},
					},
					UpdateExpression:    aws.String("SET #status = :rejected, processed_at = :now"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rejected": &types.AttributeValueMemberS{Value: string(models.WithdrawalRejected)},
						":pending":  &types.AttributeValueMemberS{Value: string(models.WithdrawalPending)},
						":now":      nowAV,
					},
				},
			},
			{
				// Operation 2: return the held amount.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Wallets),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: w.UserId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
					},
				},
			},
			{
				// Operation 3: ledger credit for the returned hold.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                creditAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactCancelledAt(err, 0) {
			return storage.ErrWithdrawalNotPending
		}
		return fmt.Errorf("failed to execute rejection transaction: %w", err)
	}

	return nil
}
