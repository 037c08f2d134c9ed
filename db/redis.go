package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Redis stays nil when no address is configured, consumers then skip the stream and cache.
var Redis *redis.Client

func ConnectRedis(ctx context.Context, addr, password string, database int) error {
	if Redis != nil || addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return errors.Wrap(err, "redis connection failed")
	}
	Redis = client
	log.Info("Connected to redis")
	return nil
}
