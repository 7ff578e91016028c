package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/tradehub/escrow-settlement/pkg/hold"
)

// maxSQSDelay is the hard SQS per-message delay ceiling. A business-day hold
// is far longer, so messages hop through the queue: each delivery before the
// hold elapses re-enqueues with another maximal delay.
const maxSQSDelay = 15 * time.Minute

// SQSAPI is the subset of the SQS client used by the scheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string

	// Clock supplies the current time; overridable in tests.
	Clock func() time.Time

	// HoldBusinessDays mirrors the storage layer's hold period so the delay
	// computation agrees with the release sweep's cutoff.
	HoldBusinessDays int
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:           client,
		QueueURL:         queueURL,
		Clock:            time.Now,
		HoldBusinessDays: hold.DefaultBusinessDays,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// ScheduleRelease sends the release message to SQS with as much delay as the
// queue allows, capped by the time remaining on the hold.
func (s *SQSScheduler) ScheduleRelease(ctx context.Context, msg ReleaseMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal release message for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: s.delaySeconds(msg.CompletedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// delaySeconds computes the per-hop delay. Anything already past its hold gets
// delivered immediately.
func (s *SQSScheduler) delaySeconds(completedAt time.Time) int32 {
	releaseAt := hold.ReleaseAt(completedAt, s.HoldBusinessDays)
	remaining := releaseAt.Sub(s.Clock())
	if remaining <= 0 {
		return 0
	}
	if remaining > maxSQSDelay {
		remaining = maxSQSDelay
	}
	return int32(remaining / time.Second)
}
