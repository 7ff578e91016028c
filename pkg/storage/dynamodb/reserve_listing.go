package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// ReserveListing atomically claims the listing for the buyer and creates the
// pending transaction record. The sold check is a ConditionExpression on the
// same TransactWriteItems that flips the flag, so two concurrent buyers get
// exactly one success and one ErrAlreadySold regardless of how their initial
// reads interleaved.
//
// The caller provides the transaction with id, parties, frozen fee figures
// and the gateway payment reference already set; the fee is never recomputed
// after this point.
func (s *Store) ReserveListing(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	now := s.Clock()
	tx.Status = models.PENDING
	tx.CreatedAt = now
	tx.UpdatedAt = now

	slog.Log(ctx, slog.LevelDebug, "reserving listing", "listing_id", tx.ListingId, "transaction_id", tx.Id)

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: flip the sold flag, guarded against a lost race.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Listings),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: tx.ListingId},
					},
					UpdateExpression:    aws.String("SET is_sold = :sold, updated_at = :now"),
					ConditionExpression: aws.String("attribute_exists(id) AND is_sold = :not_sold AND is_active = :active"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":sold":     &types.AttributeValueMemberBOOL{Value: true},
						":not_sold": &types.AttributeValueMemberBOOL{Value: false},
						":active":   &types.AttributeValueMemberBOOL{Value: true},
						":now":      nowAV,
					},
				},
			},
			{
				// Operation 2: create the pending transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Transactions),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactCancelledAt(err, 0) {
			return nil, storage.ErrAlreadySold
		}
		return nil, fmt.Errorf("failed to execute reservation transaction: %w", err)
	}

	return tx, nil
}
