// cmd/activity-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"activity-signup/internal/activities"
	"activity-signup/internal/common/aws"
	"activity-signup/internal/common/config"
	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/metrics"
	"activity-signup/internal/common/observability"
	"activity-signup/internal/models"
	"activity-signup/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting activity server",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Warn("otel prometheus exporter unavailable, request metrics disabled", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	rosterMetrics := metrics.NewRosterMetrics(prometheus.DefaultRegisterer)

	seed, err := loadSeed(cfg.Registry)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	var publisher activities.EventPublisher
	if sns := cfg.Notifications.SNS; sns.Enabled {
		p, err := aws.NewSNSPublisher(ctx, sns.Region, sns.TopicARN)
		if err != nil {
			zapLog.Fatal("sns publisher init failed", zap.Error(err))
		}
		publisher = p
		zapLog.Info("roster events enabled", zap.String("topicArn", sns.TopicARN))
	}

	registry, err := activities.NewRegistry(seed, activities.Options{
		Config:    activities.LoadConfig(cfg),
		Metrics:   rosterMetrics,
		Publisher: publisher,
		Tracer:    obs.Tracer(),
		Logger:    log.WithFields(map[string]interface{}{"component": "registry"}),
	})
	if err != nil {
		zapLog.Fatal("registry init failed", zap.Error(err))
	}
	zapLog.Info("activity registry ready",
		zap.Strings("activities", registry.Names()),
		zap.Bool("enforceCapacity", cfg.Registry.EnforceCapacity),
	)

	srv := server.New(cfg.Server, server.Dependencies{
		Registry: registry,
		Handler:  activities.NewHandler(registry, rosterMetrics, log),
		Obs:      obs,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   log,
	})

	if err := srv.Run(ctx); err != nil {
		zapLog.Error("http server stopped with error", zap.Error(err))
		_ = zapLog.Sync()
		os.Exit(1)
	}
	zapLog.Info("activity server stopped")
}

func loadSeed(cfg config.RegistryConfig) ([]models.Activity, error) {
	if cfg.CatalogFile == "" {
		return activities.DefaultCatalog(), nil
	}
	return activities.LoadCatalog(cfg.CatalogFile)
}
