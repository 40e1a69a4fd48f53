package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

// Config carries all environment-driven settings for the service and the
// Lambda entrypoints.
type Config struct {
	PoolsTable       string `env:"DYNAMODB_POOLS_TABLE_NAME,required"`
	ConnectionsTable string `env:"DYNAMODB_CONNECTIONS_TABLE_NAME"`

	NotificationsQueueURL string `env:"SQS_NOTIFICATIONS_QUEUE_URL"`
	WebsocketEndpoint     string `env:"WEBSOCKET_API_ENDPOINT"`

	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
