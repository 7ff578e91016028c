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

// CreateDeposit persists a pending deposit. No balance movement happens here;
// the wallet is credited only when the gateway confirms the payment reference.
func (s *Store) CreateDeposit(ctx context.Context, d *models.Deposit) (*models.Deposit, error) {
	now := s.Clock()
	d.Status = models.DepositPending
	d.CreatedAt = now
	d.UpdatedAt = now

	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Deposits),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put deposit to DynamoDB: %w", err)
	}

	return d, nil
}

// GetDeposit retrieves a deposit by its ID.
func (s *Store) GetDeposit(ctx context.Context, depositID string) (*models.Deposit, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": depositID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal deposit ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Deposits),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var d models.Deposit
	if err := attributevalue.UnmarshalMap(result.Item, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deposit: %w", err)
	}

	return &d, nil
}

// getDepositByPaymentRef looks up a deposit by its external payment reference.
func (s *Store) getDepositByPaymentRef(ctx context.Context, paymentRef string) (*models.Deposit, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Deposits),
		IndexName:              aws.String(paymentRefGSI),
		KeyConditionExpression: aws.String("payment_ref = :ref"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: paymentRef},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposit by payment ref: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrNotFound
	}

	var d models.Deposit
	if err := attributevalue.UnmarshalMap(result.Items[0], &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deposit: %w", err)
	}

	return &d, nil
}
