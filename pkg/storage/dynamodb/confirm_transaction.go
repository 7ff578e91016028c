package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// confirmAttempts bounds the read-then-conditional-update retry loop when the
// other party's flag changes between our read and our write.
const confirmAttempts = 3

// ConfirmTransaction records the acting party's delivery confirmation. The
// "other party already confirmed" check is part of the ConditionExpression of
// the same UpdateItem that writes the acting party's flag, so two
// near-simultaneous confirmations cannot both take the completing branch: one
// of them fails the condition and retries against fresh state.
//
// No wallet credit happens here. Completion only stamps completed_at, which
// starts the business-day hold clock for the release sweep.
func (s *Store) ConfirmTransaction(ctx context.Context, txID, userID string, evidence []string) (*storage.ConfirmResult, error) {
	var lastErr error

	for attempt := 0; attempt < confirmAttempts; attempt++ {
		tx, err := s.GetTransaction(ctx, txID)
		if err != nil {
			return nil, err
		}

		if !tx.Party(userID) {
			return nil, storage.ErrForbidden
		}

		isBuyer := tx.BuyerId == userID
		if (isBuyer && tx.BuyerConfirmed) || (!isBuyer && tx.SellerConfirmed) {
			return nil, storage.ErrAlreadyConfirmed
		}

		if tx.Status != models.PAID {
			return nil, storage.ErrNotConfirmable
		}

		otherConfirmed := tx.SellerConfirmed
		if !isBuyer {
			otherConfirmed = tx.BuyerConfirmed
		}

		now := s.Clock()
		if err := s.writeConfirmation(ctx, tx, isBuyer, otherConfirmed, evidence); err != nil {
			if isConditionalCheckFailed(err) {
				// The other party's flag or the status moved underneath us;
				// re-read and try again.
				lastErr = err
				continue
			}
			return nil, err
		}

		if isBuyer {
			tx.BuyerConfirmed = true
			tx.BuyerEvidence = evidence
		} else {
			tx.SellerConfirmed = true
			tx.SellerEvidence = evidence
		}
		tx.UpdatedAt = now
		if otherConfirmed {
			tx.Status = models.COMPLETED
			tx.CompletedAt = &now
		}

		return &storage.ConfirmResult{Completed: otherConfirmed, Transaction: tx}, nil
	}

	return nil, fmt.Errorf("confirmation lost the update race repeatedly: %w", lastErr)
}

// writeConfirmation performs the conditional flag write, promoting the
// transaction to completed when the other party's confirmation is already on
// record.
func (s *Store) writeConfirmation(ctx context.Context, tx *models.Transaction, isBuyer, otherConfirmed bool, evidence []string) error {
	ownFlag, ownEvidence, otherFlag := "buyer_confirmed", "buyer_evidence", "seller_confirmed"
	if !isBuyer {
		ownFlag, ownEvidence, otherFlag = "seller_confirmed", "seller_evidence", "buyer_confirmed"
	}

	nowAV, err := attributevalue.Marshal(s.Clock())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	evidenceAV, err := attributevalue.Marshal(evidence)
	if err != nil {
		return fmt.Errorf("failed to marshal evidence: %w", err)
	}

	values := map[string]types.AttributeValue{
		":true":     &types.AttributeValueMemberBOOL{Value: true},
		":false":    &types.AttributeValueMemberBOOL{Value: false},
		":paid":     &types.AttributeValueMemberS{Value: string(models.PAID)},
		":evidence": evidenceAV,
		":now":      nowAV,
	}

	update := fmt.Sprintf("SET %s = :true, %s = :evidence, updated_at = :now", ownFlag, ownEvidence)
	condition := fmt.Sprintf("#status = :paid AND %s = :false", ownFlag)

	if otherConfirmed {
		// Second confirmation: complete in the same atomic step, guarded on
		// the other party's flag still being set.
		update += ", #status = :completed, completed_at = :now"
		condition = fmt.Sprintf("#status = :paid AND %s = :false AND %s = :true", ownFlag, otherFlag)
		values[":completed"] = &types.AttributeValueMemberS{Value: string(models.COMPLETED)}
	} else {
		// First confirmation: only valid while the other party has not
		// confirmed, otherwise we must take the completing branch instead.
		condition = fmt.Sprintf("#status = :paid AND %s = :false AND %s = :false", ownFlag, otherFlag)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Transactions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: tx.Id},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: values,
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return err
	}
	return nil
}
