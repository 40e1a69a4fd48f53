package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/pgil256/juntas-seguras-sub006/pkg/config"
	"github.com/pgil256/juntas-seguras-sub006/pkg/notify"
	"github.com/pgil256/juntas-seguras-sub006/pkg/realtime"
	dydbstore "github.com/pgil256/juntas-seguras-sub006/pkg/storage/dynamodb"
)

var publisher realtime.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.PoolsTable, cfg.ConnectionsTable)

	publisher, err = realtime.NewPublisher(store, store, cfg.WebsocketEndpoint)
	if err != nil {
		log.Fatalf("failed to create publisher: %v", err)
	}
}

// HandleRequest fans pool events out to connected WebSocket clients.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event notify.Event
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		if err := publisher.Publish(ctx, toRealtimeMessage(&event)); err != nil {
			log.Printf("ERROR: failed to broadcast event %s: %v", event.Id, err)
			return err
		}

		log.Printf("Successfully broadcast event %s (%s)", event.Id, event.Type)
	}

	return nil
}

func toRealtimeMessage(event *notify.Event) realtime.Message {
	msgType := realtime.MessageTypePoolUpdate
	if event.Type == notify.EventPaymentReminder {
		msgType = realtime.MessageTypePaymentReminder
	}

	return realtime.Message{
		Type: msgType,
		Payload: realtime.PoolUpdatePayload{
			PoolID:     event.PoolId,
			Round:      event.Round,
			MemberName: event.MemberName,
			Amount:     event.Amount,
			Event:      string(event.Type),
		},
	}
}

func main() {
	lambda.Start(HandleRequest)
}
