package database

import (
	"context"
	"fmt"

	"mindscreen-service/internal/app/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(driverConfig *config.DriverConfig, logger *zap.Logger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password: driverConfig.Redis.Password,
	})

	_, err := rdb.Ping(context.Background()).Result()
	if err != nil {
		logger.Fatal("Could not connect to Redis", zap.Error(err))
	}

	logger.Info("Successfully connected to redis")
	return rdb
}
