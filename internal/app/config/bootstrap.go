package config

import (
	"context"
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	PostgresDB     *sql.DB
	MongoDB        *mongo.Client
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// WorkerStop if set will be called during Shutdown to stop the rescoring worker
	WorkerStop func()
	// PublisherClose releases the event queue channel
	PublisherClose func() error
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.WorkerStop != nil {
		b.WorkerStop()
		log.Println("Successfully stopped rescoring worker")
	}

	if b.PublisherClose != nil {
		if err := b.PublisherClose(); err != nil {
			return err
		}
		log.Println("Successfully closing event publisher")
	}

	if err := b.Redis.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	if err := b.RabbitMQ.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	if err := b.MongoDB.Disconnect(ctx); err != nil {
		return err
	}
	log.Println("Successfully closing MongoDB")

	if err := b.PostgresDB.Close(); err != nil {
		return err
	}
	log.Println("Successfully closing PostgreSQL")

	b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
