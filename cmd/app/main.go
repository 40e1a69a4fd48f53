package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pgil256/juntas-seguras-sub006/pkg/api"
	"github.com/pgil256/juntas-seguras-sub006/pkg/config"
	"github.com/pgil256/juntas-seguras-sub006/pkg/handlers"
	"github.com/pgil256/juntas-seguras-sub006/pkg/middleware"
	"github.com/pgil256/juntas-seguras-sub006/pkg/notify"
	dydbstore "github.com/pgil256/juntas-seguras-sub006/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(awsCfg)
	store := dydbstore.New(dbClient, cfg.PoolsTable, cfg.ConnectionsTable)

	// Notifications are optional: without a queue the service still runs,
	// it just skips out-of-band delivery.
	var notifier notify.Notifier
	if cfg.NotificationsQueueURL != "" {
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.NotificationsQueueURL)
	} else {
		logger.Warn("SQS_NOTIFICATIONS_QUEUE_URL not set, notifications disabled")
	}

	handler := handlers.NewApiHandler(store, notifier)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)

	api.HandlerFromMux(handler, router)

	logger.Info("starting server", "port", cfg.HTTPPort)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
