package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tradehub/escrow-settlement/pkg/models"
	"github.com/tradehub/escrow-settlement/pkg/storage"
)

// CreateListing persists a new listing record. The sold flag starts false and
// can only ever flip through ReserveListing.
func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	now := s.Clock()
	listing.IsSold = false
	listing.CreatedAt = now
	listing.UpdatedAt = now

	listingAV, err := attributevalue.MarshalMap(listing)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Listings),
		Item:                listingAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("listing %s already exists", listing.Id)
		}
		return nil, fmt.Errorf("failed to create listing in DynamoDB: %w", err)
	}

	return listing, nil
}

// GetListing retrieves a listing by its ID.
func (s *Store) GetListing(ctx context.Context, listingID string) (*models.Listing, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": listingID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listing ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Listings),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get listing from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var listing models.Listing
	if err := attributevalue.UnmarshalMap(result.Item, &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}

	return &listing, nil
}
