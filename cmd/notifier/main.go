package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"staybook/internal/notifier"
	"staybook/pkg/config"
	"staybook/pkg/kafka"
	kafkaconfig "staybook/pkg/kafka/config"
	kafkamiddleware "staybook/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	handler := notifier.NewHandler(notifier.NewLogSink(cfg.Log), cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingTopic,
		cfg.NotifierGroupID,
		cfg.BookingDLQTopic,
		cfg.NotifierMaxRetries,
		handler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create consumer", "error", err)
	}
	metrics := kafkamiddleware.NewMetrics()
	consumer.Use(kafkamiddleware.MetricsConsumerMiddleware(metrics))
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier", "topic", cfg.BookingTopic, "group_id", cfg.NotifierGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	metrics.LogSummary(cfg.Log, cfg.NotifierGroupID)
	cfg.Log.Info("Notifier stopped")
}
