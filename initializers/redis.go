package initializers

import (
	"context"
	"recruit-backend/config"
	"recruit-backend/db"

	log "github.com/sirupsen/logrus"
)

func InitRedis(ctx context.Context) {
	err := db.ConnectRedis(ctx, config.Conf.Redis.Addr, config.Conf.Redis.Password, config.Conf.Redis.DB)
	if err != nil {
		panic(err.Error())
	}
	if db.Redis == nil {
		log.Warn("redis is not configured, domain events and job view cache are disabled")
	}
}
