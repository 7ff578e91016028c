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

// OpenDispute creates the dispute record and freezes the transaction out of
// the release sweep in one atomic step. Only the buyer may dispute, and only
// while the transaction is neither already disputed nor terminal; the status
// guard is re-checked inside the TransactWriteItems so a racing release or
// second dispute cannot slip through.
func (s *Store) OpenDispute(ctx context.Context, dispute *models.Dispute) (*models.Dispute, error) {
	tx, err := s.GetTransaction(ctx, dispute.TransactionId)
	if err != nil {
		return nil, err
	}

	if tx.BuyerId != dispute.ReporterId {
		return nil, storage.ErrForbidden
	}
	if tx.Status == models.DISPUTED {
		return nil, storage.ErrAlreadyDisputed
	}
	if tx.Status.Terminal() {
		return nil, storage.ErrNotDisputable
	}

	now := s.Clock()
	dispute.Status = models.DisputeOpen
	dispute.CreatedAt = now

	disputeAV, err := attributevalue.MarshalMap(dispute)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dispute: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: create the dispute record.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Disputes),
					Item:                disputeAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: freeze the transaction, guarded on a
				// disputable status.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Transactions),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: dispute.TransactionId},
					},
					UpdateExpression:    aws.String("SET #status = :disputed, updated_at = :now"),
					ConditionExpression: aws.String("#status IN (:pending, :paid, :completed)"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":disputed": &types.AttributeValueMemberS{Value: string(models.DISPUTED)},
						":pending":  &types.AttributeValueMemberS{Value: string(models.PENDING)},
						":paid":     &types.AttributeValueMemberS{Value: string(models.PAID)},
						":completed": &types.AttributeValueMemberS{
							Value: string(models.COMPLETED),
						},
						":now": nowAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactCancelledAt(err, 1) {
			return nil, storage.ErrAlreadyDisputed
		}
		return nil, fmt.Errorf("failed to execute dispute transaction: %w", err)
	}

	return dispute, nil
}

// GetDispute retrieves a dispute by its ID.
func (s *Store) GetDispute(ctx context.Context, disputeID string) (*models.Dispute, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": disputeID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal dispute ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Disputes),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get dispute from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var dispute models.Dispute
	if err := attributevalue.UnmarshalMap(result.Item, &dispute); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dispute: %w", err)
	}

	return &dispute, nil
}

// ListOpenDisputes retrieves all unresolved disputes.
func (s *Store) ListOpenDisputes(ctx context.Context) ([]models.Dispute, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Disputes),
		FilterExpression: aws.String("#status = :open"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":open": &types.AttributeValueMemberS{Value: string(models.DisputeOpen)},
		},
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan disputes: %w", err)
	}

	var disputes []models.Dispute
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &disputes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal disputes: %w", err)
	}

	return disputes, nil
}
