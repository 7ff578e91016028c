package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/tradehub/escrow-settlement/pkg/hold"
	"github.com/tradehub/escrow-settlement/pkg/models"
)

// ListReleasableTransactions retrieves the seller's completed transactions
// whose business-day hold has elapsed. Disputed, refunded and released rows
// never match the status key, so a transaction disputed before its hold ran
// out stays frozen no matter how old it gets.
func (s *Store) ListReleasableTransactions(ctx context.Context, sellerID string) ([]models.Transaction, error) {
	cutoff := hold.Cutoff(s.Clock(), s.HoldBusinessDays)
	cutoffText, err := cutoff.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff time: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Transactions),
		IndexName:              aws.String(sellerStatusGSI),
		KeyConditionExpression: aws.String("seller_id = :seller AND #status = :completed"),
		FilterExpression:       aws.String("completed_at <= :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":seller":    &types.AttributeValueMemberS{Value: sellerID},
			":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
			":cutoff":    &types.AttributeValueMemberS{Value: string(cutoffText)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query releasable transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal releasable transactions: %w", err)
	}

	return transactions, nil
}

// ReleaseTransaction credits the seller with the transaction's stored net
// amount and flips it from completed to released, atomically. The status
// guard makes the operation idempotent: a transaction can only be released
// once, so losing the race to a concurrent sweep is a clean no-op.
func (s *Store) ReleaseTransaction(ctx context.Context, tx *models.Transaction) (bool, error) {
	now := s.Clock()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return false, fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	netAV, err := attributevalue.Marshal(tx.NetAmount)
	if err != nil {
		return false, fmt.Errorf("failed to marshal net amount: %w", err)
	}

	description := fmt.Sprintf("Escrow release for transaction %s", tx.Id)
	debitEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: tx.Id,
		AccountID:     models.EscrowAccountID,
		Debit:         tx.NetAmount,
		Description:   description,
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	creditEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: tx.Id,
		AccountID:     tx.SellerId,
		Credit:        tx.NetAmount,
		Description:   description,
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	debitAV, err := attributevalue.MarshalMap(debitEntry)
	if err != nil {
		return false, fmt.Errorf("failed to marshal debit entry: %w", err)
	}
	creditAV, err := attributevalue.MarshalMap(creditEntry)
	if err != nil {
		return false, fmt.Errorf("failed to marshal credit entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: finalize the transaction, guarded on completed.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Transactions),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tx.Id},
					},
					UpdateExpression:    aws.String("SET #status = :released, updated_at = :now"),
					ConditionExpression: aws.String("#status = :completed"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":released":  &types.AttributeValueMemberS{Value: string(models.RELEASED)},
						":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
						":now":       nowAV,
					},
				},
			},
			{
				// Operation 2: credit the seller's wallet with the frozen net amount.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Wallets),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: tx.SellerId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :net"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":net": netAV,
					},
				},
			},
			{
				// Operation 3: escrow debit entry.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                debitAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
			{
				// Operation 4: seller credit entry.
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
			// Already released by a concurrent sweep, or disputed in the
			// meantime. Either way the funds must not move here.
			return false, nil
		}
		return false, fmt.Errorf("failed to execute release transaction: %w", err)
	}

	return true, nil
}

// ReleaseEligibleFunds releases every eligible transaction for the seller and
// returns the total cents credited. Each transaction is its own atomic unit,
// so the sweep is safe to run repeatedly or concurrently.
func (s *Store) ReleaseEligibleFunds(ctx context.Context, sellerID string) (int64, error) {
	eligible, err := s.ListReleasableTransactions(ctx, sellerID)
	if err != nil {
		return 0, err
	}

	var released int64
	for i := range eligible {
		tx := &eligible[i]
		done, err := s.ReleaseTransaction(ctx, tx)
		if err != nil {
			// Surface the failure but keep the amount already released; the
			// remaining rows are picked up by the next sweep.
			return released, fmt.Errorf("failed to release transaction %s: %w", tx.Id, err)
		}
		if done {
			slog.Log(ctx, slog.LevelDebug, "released escrowed funds", "transaction_id", tx.Id, "net_amount", tx.NetAmount)
			released += tx.NetAmount
		}
	}

	return released, nil
}
