package main

import (
	"context"

	"github.com/parcelbridge/logistic/internal/config"
	"github.com/parcelbridge/logistic/internal/telemetry"
	"github.com/parcelbridge/logistic/pkg/carrier"
	"github.com/parcelbridge/logistic/pkg/carrier/bogus"
	"github.com/parcelbridge/logistic/pkg/carrier/ups"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

func initCarrierRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *carrier.Registry {
	registry := carrier.NewRegistry()

	if cfg.UPSEnabled {
		registry.Register(ups.New(ups.Config{
			Key:           cfg.UPSKey,
			Login:         cfg.UPSLogin,
			Password:      cfg.UPSPassword,
			AccountNumber: cfg.UPSAccount,
			PickupType:    cfg.UPSPickupType,
			Test:          cfg.UPSTestMode,
			UseMock:       cfg.UPSUseMock,
		}, logger, tracer))
	}

	if cfg.BogusEnabled {
		registry.Register(bogus.New())
	}

	return registry
}
