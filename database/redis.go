package database

import (
	"context"

	"event_ticketing/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var Redis *redis.Client

// ConnectRedis opens the shared redis client used for auxiliary lookup
// caching (bank directory). Ticket counts and pricing are never cached here.
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.Config("REDIS_PASSWORD"),
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, bank directory cache disabled")
		return
	}
	logrus.Info("connection opened to redis")
}
