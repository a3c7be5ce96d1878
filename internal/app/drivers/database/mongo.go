package database

import (
	"context"
	"fmt"
	"time"

	"mindscreen-service/internal/app/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func NewMongoDB(driverConfig *config.DriverConfig, logger *zap.Logger) *mongo.Client {
	connectionString := fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		driverConfig.MongoDB.Username,
		driverConfig.MongoDB.Password,
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		logger.Fatal("Failed to connect to mongo database", zap.Error(err))
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		logger.Fatal("Failed to ping or test the connection to mongo database", zap.Error(err))
	}
	logger.Info("Successfully connected to mongo database")
	return client
}
