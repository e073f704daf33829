package main

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"restaurant-orders-api/config"
	"restaurant-orders-api/notifier"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// startKafkaSource feeds externally produced events (status changes from
// other services, stock alerts) onto the same channel the in-process
// handlers publish to.
func startKafkaSource(ctx context.Context, brokers string) {
	src := notifier.NewKafkaSource(
		strings.Split(brokers, ","),
		getenv("KAFKA_GROUP_ID", "restaurant-orders-api"),
		getenv("KAFKA_TOPIC_EVENTS", "order-events"),
		config.Log,
	)
	go func() {
		defer src.Close()
		if err := src.Run(ctx, config.Events); err != nil {
			config.Log.Error("kafka source stopped", zap.Error(err))
		}
	}()
}
