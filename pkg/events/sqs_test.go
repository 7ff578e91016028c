package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSQS struct {
	mock.Mock
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*sqs.SendMessageOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPublish(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	t.Run("Stamps Missing Timestamp", func(t *testing.T) {
		client := new(mockSQS)
		publisher := NewSQSPublisher(client, "https://sqs.example/events")
		publisher.Clock = func() time.Time { return now }

		var sent Event
		client.On("SendMessage", mock.Anything, mock.AnythingOfType("*sqs.SendMessageInput")).
			Run(func(args mock.Arguments) {
				body := args.Get(1).(*sqs.SendMessageInput).MessageBody
				_ = json.Unmarshal([]byte(*body), &sent)
			}).
			Return(&sqs.SendMessageOutput{}, nil).Once()

		err := publisher.Publish(context.Background(), Event{
			Type:          TypeOrderPlaced,
			TransactionID: "tx1",
			Amount:        15000,
		})

		assert.NoError(t, err)
		assert.Equal(t, TypeOrderPlaced, sent.Type)
		assert.Equal(t, now, sent.OccurredAt)
		client.AssertExpectations(t)
	})

	t.Run("Queue Failure Surfaces", func(t *testing.T) {
		client := new(mockSQS)
		publisher := NewSQSPublisher(client, "https://sqs.example/events")

		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("queue down")).Once()

		err := publisher.Publish(context.Background(), Event{Type: TypeFundsReleased})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish event to SQS")
		client.AssertExpectations(t)
	})
}
