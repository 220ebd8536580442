package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// UPS
	UPSKey        string `envconfig:"UPS_KEY"`
	UPSLogin      string `envconfig:"UPS_LOGIN"`
	UPSPassword   string `envconfig:"UPS_PASSWORD"`
	UPSAccount    string `envconfig:"UPS_ACCOUNT"`
	UPSPickupType string `envconfig:"UPS_PICKUP_TYPE" default:"daily_pickup"`
	UPSEnabled    bool   `envconfig:"UPS_ENABLED" default:"true"`
	UPSTestMode   bool   `envconfig:"UPS_TEST_MODE" default:"true"`
	UPSUseMock    bool   `envconfig:"UPS_USE_MOCK" default:"false"`

	// Bogus carrier, for local development and smoke tests
	BogusEnabled bool `envconfig:"BOGUS_ENABLED" default:"false"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://jaeger-collector.default.svc.cluster.local:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"parcelbridge-logistic"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from the environment, seeded by a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("ups.enabled", c.UPSEnabled),
		attribute.Bool("ups.test_mode", c.UPSTestMode),
		attribute.Bool("bogus.enabled", c.BogusEnabled),
	}
}
