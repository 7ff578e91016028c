package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tradehub/escrow-settlement/pkg/config"
	"github.com/tradehub/escrow-settlement/pkg/events"
	"github.com/tradehub/escrow-settlement/pkg/notify"
)

var notifier *notify.Notifier

func init() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	if len(senders) == 0 {
		log.Println("No notification channels configured, events will be dropped")
	}

	notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)
}

// HandleRequest fans queued lifecycle events out to the configured channels.
// Delivery is best effort: a failing channel is logged, not retried, because
// replaying the whole batch would duplicate the notifications that did land.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		var event events.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal event %s: %v", message.MessageId, err)
			continue
		}

		if err := notifier.HandleEvent(ctx, event); err != nil {
			log.Printf("ERROR: failed to deliver event %s: %v", message.MessageId, err)
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
