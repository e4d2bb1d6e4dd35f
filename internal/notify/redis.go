package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/config"
)

// RedisSink mirrors every notification frame onto a Redis pub/sub channel so
// dashboards can subscribe without holding a raw TCP connection.
type RedisSink struct {
	client  *redis.Client
	channel string
	timeout time.Duration
}

// NewRedisSink connects to Redis using the provided configuration.
// Connectivity problems are logged, not fatal: publishing will fail and the
// broadcaster prunes the sink like any other.
func NewRedisSink(cfg config.NotifyConfig, logger *zap.Logger) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("channel", cfg.RedisChannel))
	}

	return &RedisSink{
		client:  client,
		channel: cfg.RedisChannel,
		timeout: cfg.WriteTimeout(),
	}
}

// Send publishes the frame to the configured channel.
func (s *RedisSink) Send(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.client.Publish(ctx, s.channel, payload).Err()
}

// Close closes the client.
func (s *RedisSink) Close() error {
	return s.client.Close()
}

// Target identifies the sink in logs.
func (s *RedisSink) Target() string {
	return "redis:" + s.channel
}
