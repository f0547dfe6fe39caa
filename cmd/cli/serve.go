package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/limaJavier/regatta/internal/app"
	"github.com/limaJavier/regatta/internal/cache"
	"github.com/limaJavier/regatta/internal/logger"
	"github.com/limaJavier/regatta/internal/metrics"
	"github.com/limaJavier/regatta/internal/publish"
	"github.com/limaJavier/regatta/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("serve")

	sink, err := metrics.NewSink(cfg.Metrics, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	defer metrics.Close(sink)

	var publisher app.Publisher
	if cfg.MQTT.Enabled() {
		pahoPublisher, err := publish.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("mqtt publisher: %w", err)
		}
		defer pahoPublisher.Disconnect()
		publisher = pahoPublisher
	}

	responses, closeCache, err := responseCache(ctx, cfg.Cache, log)
	if err != nil {
		return err
	}
	defer closeCache()

	service, err := app.New(cfg, sink, publisher)
	if err != nil {
		return err
	}

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Prometheus {
		gatherer = prometheus.DefaultGatherer
	}
	handler := server.NewScheduleHandler(service, responses, cfg.Solver.Strategy, cfg.Solver.Backend)
	router := server.NewRouter(cfg.Server.Mode, handler, gatherer)

	return server.Serve(ctx, cfg.Server.Addr, router)
}

// responseCache connects the redis response cache. Without a redis address caching is disabled and the cache is nil.
func responseCache(ctx context.Context, cfg cache.Config, log logger.Logger) (cache.ScheduleCache, func(), error) {
	if !cfg.Enabled() {
		log.Infof("response caching disabled, no redis address configured")
		return nil, func() {}, nil
	}

	client := cache.NewRedisClient(cfg)
	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Warnf("failed to close redis client: %v", err)
		}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	log.Infof("caching schedules in redis at %s", cfg.Addr)
	return cache.NewRedisCache(client, time.Duration(cfg.TTLSeconds)*time.Second), closeClient, nil
}
