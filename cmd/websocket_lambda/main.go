package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/pgil256/juntas-seguras-sub006/pkg/config"
	"github.com/pgil256/juntas-seguras-sub006/pkg/storage"
	dydbstore "github.com/pgil256/juntas-seguras-sub006/pkg/storage/dynamodb"
)

var connManager storage.ConnectionManager

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	connManager = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.PoolsTable, cfg.ConnectionsTable)
}

// HandleRequest tracks WebSocket clients as they connect and disconnect so
// the notifications lambda knows who to broadcast pool updates to.
func HandleRequest(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID

	switch request.RequestContext.RouteKey {
	case "$connect":
		log.Printf("Client connected: %s", connectionID)
		if err := connManager.AddConnection(ctx, connectionID); err != nil {
			log.Printf("ERROR: failed to save connection ID %s: %v", connectionID, err)
			return events.APIGatewayProxyResponse{StatusCode: 500}, err
		}
	case "$disconnect":
		log.Printf("Client disconnected: %s", connectionID)
		if err := connManager.RemoveConnection(ctx, connectionID); err != nil {
			log.Printf("ERROR: failed to delete connection ID %s: %v", connectionID, err)
			return events.APIGatewayProxyResponse{StatusCode: 500}, err
		}
	default:
		// Clients aren't expected to send messages; log and acknowledge.
		log.Printf("Received message from %s: %s", connectionID, request.Body)
	}

	return events.APIGatewayProxyResponse{StatusCode: 200}, nil
}

func main() {
	lambda.Start(HandleRequest)
}
