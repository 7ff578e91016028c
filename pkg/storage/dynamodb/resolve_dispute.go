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

// ResolveDispute applies the arbitrated outcome in a single atomic unit:
// close the dispute, finalize the transaction, credit the wallet and write
// the ledger pair. A partially applied resolution is never observable; if any
// condition fails the whole write is cancelled.
//
// refund_buyer credits the buyer with the full amount and marks the
// transaction refunded. release_seller credits the seller with the stored net
// amount and marks it released rather than completed, so the
// release sweep can never credit the same funds a second time when the
// dispute was opened after both parties had confirmed.
func (s *Store) ResolveDispute(ctx context.Context, disputeID, resolverID string, resolution models.DisputeResolution) error {
	dispute, err := s.GetDispute(ctx, disputeID)
	if err != nil {
		return err
	}
	if dispute.Status == models.DisputeResolved {
		return storage.ErrDisputeResolved
	}

	tx, err := s.GetTransaction(ctx, dispute.TransactionId)
	if err != nil {
		return err
	}
	if tx.Party(resolverID) {
		// A transaction party can never arbitrate its own dispute.
		return storage.ErrForbidden
	}

	var account string
	var credit int64
	var finalStatus models.TransactionStatus
	switch resolution {
	case models.RefundBuyer:
		// The buyer gets the full amount back, not the net.
		account = tx.BuyerId
		credit = tx.Amount
		finalStatus = models.REFUNDED
	case models.ReleaseSeller:
		account = tx.SellerId
		credit = tx.NetAmount
		finalStatus = models.RELEASED
	default:
		return fmt.Errorf("unknown resolution %q", resolution)
	}

	now := s.Clock()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	creditAV, err := attributevalue.Marshal(credit)
	if err != nil {
		return fmt.Errorf("failed to marshal credit amount: %w", err)
	}

	description := fmt.Sprintf("Dispute %s resolved (%s) for transaction %s", disputeID, resolution, tx.Id)
	debitEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: tx.Id,
		AccountID:     models.EscrowAccountID,
		Debit:         credit,
		Description:   description,
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	creditEntry := models.LedgerEntry{
		EntryID:       uuid.New().String(),
		TransactionID: tx.Id,
		AccountID:     account,
		Credit:        credit,
		Description:   description,
		Timestamp:     now,
		GSI1PK:        ledgerPartition,
	}
	debitEntryAV, err := attributevalue.MarshalMap(debitEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal debit entry: %w", err)
	}
	creditEntryAV, err := attributevalue.MarshalMap(creditEntry)
	if err != nil {
		return fmt.Errorf("failed to marshal credit entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: close the dispute, guarded on it still being open.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Disputes),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: disputeID},
					},
					UpdateExpression:    aws.String("SET #status = :resolved, resolution = :resolution, resolved_by = :resolver, resolved_at = :now"),
					ConditionExpression: aws.String("#status = :open"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":resolved":   &types.AttributeValueMemberS{Value: string(models.DisputeResolved)},
						":resolution": &types.AttributeValueMemberS{Value: string(resolution)},
						":resolver":   &types.AttributeValueMemberS{Value: resolverID},
						":open":       &types.AttributeValueMemberS{Value: string(models.DisputeOpen)},
						":now":        nowAV,
					},
				},
			},
			{
				// Operation 2: finalize the transaction, guarded on disputed.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Transactions),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tx.Id},
					},
					UpdateExpression:    aws.String("SET #status = :final, updated_at = :now"),
					ConditionExpression: aws.String("#status = :disputed"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":final":    &types.AttributeValueMemberS{Value: string(finalStatus)},
						":disputed": &types.AttributeValueMemberS{Value: string(models.DISPUTED)},
						":now":      nowAV,
					},
				},
			},
			{
				// Operation 3: credit the adjudicated party's wallet.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Wallets),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: account},
					},
					UpdateExpression:    aws.String("SET balance = balance + :credit"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":credit": creditAV,
					},
				},
			},
			{
				// Operation 4: escrow debit entry.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                debitEntryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
			{
				// Operation 5: wallet credit entry.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Ledger),
					Item:                creditEntryAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		// Cancellation reasons line up with TransactItems: index 0 is the
		// dispute's open guard, index 2 the wallet existence check. A failed
		// open guard means a concurrent resolution won.
		if transactCancelledAt(err, 0) {
			return storage.ErrDisputeResolved
		}
		if transactCancelledAt(err, 2) {
			return fmt.Errorf("wallet %s: %w", account, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to execute resolution transaction: %w", err)
	}

	return nil
}
