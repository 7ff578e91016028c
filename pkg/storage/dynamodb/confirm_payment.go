package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// ConfirmPayment advances whatever is waiting on the external payment
// reference: a pending purchase transaction moves to paid, a pending deposit
// credits the wallet. The gateway delivers callbacks at least once, so every
// path here treats "nothing pending for this reference" as a successful
// no-op. A replayed callback finds the status guard already consumed and
// changes nothing.
func (s *Store) ConfirmPayment(ctx context.Context, paymentRef string) error {
	tx, err := s.getTransactionByPaymentRef(ctx, paymentRef)
	if err == nil {
		return s.markTransactionPaid(ctx, tx)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	deposit, err := s.getDepositByPaymentRef(ctx, paymentRef)
	if err == nil {
		return s.settleDeposit(ctx, deposit)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	slog.Log(ctx, slog.LevelDebug, "payment callback matched nothing", "payment_ref", paymentRef)
	return nil
}

// markTransactionPaid moves a pending transaction to paid. Conditional
// failure means the transaction already advanced; that is the idempotent
// replay case, not an error.
func (s *Store) markTransactionPaid(ctx context.Context, tx *models.Transaction) error {
	if tx.Status != models.PENDING {
		return nil
	}

	nowAV, err := attributevalue.Marshal(s.Clock())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Transactions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tx.Id},
		},
		UpdateExpression:    aws.String("SET #status = :paid, updated_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":paid":    &types.AttributeValueMemberS{Value: string(models.PAID)},
			":pending": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":     nowAV,
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return nil
		}
		return fmt.Errorf("failed to mark transaction paid: %w", err)
	}

	return nil
}

// settleDeposit atomically approves the deposit and credits the wallet. The
// deposit's pending guard makes duplicate callbacks single-credit.
func (s *Store) settleDeposit(ctx context.Context, deposit *models.Deposit) error {
	if deposit.Status != models.DepositPending {
		return nil
	}

	now := s.Clock()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	amountAV, err := attributevalue.Marshal(deposit.Amount)
	if err != nil {
		return fmt.Errorf("failed to marshal deposit amount: %w", err)
	}

	creditEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: deposit.Id,
		AccountID:     deposit.UserId,
		Credit:        deposit.Amount,
		Description:   fmt.Sprintf("Deposit %s confirmed", deposit.Id),
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	debitEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: deposit.Id,
		AccountID:     models.ExternalAccountID,
		Debit:         deposit.Amount,
		Description:   fmt.Sprintf("Deposit %s confirmed", deposit.Id),
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	creditAV, err := attributevalue.MarshalMap(creditEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal credit entry: %w", err)
	}
	debitAV, err := attributevalue.MarshalMap(debitEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal debit entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: approve the deposit, guarded on pending.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Deposits),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: deposit.Id},
					},
					UpdateExpression:    aws.String("SET #status = :approved, updated_at = :now"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":approved": &types.AttributeValueMemberS{Value: string(models.DepositApproved)},
						":pending":  &types.AttributeValueMemberS{Value: string(models.DepositPending)},
						":now":      nowAV,
					},
				},
			},
			{
				// Operation 2: credit the wallet, server-side relative adjustment.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Wallets),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: deposit.UserId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
					},
				},
			},
			{
				// Operation 3: ledger credit entry.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                creditAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
			{
				// Operation 4: ledger debit entry.
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
			// Another delivery of the same callback won the race.
			return nil
		}
		return fmt.Errorf("failed to settle deposit: %w", err)
	}

	return nil
}
