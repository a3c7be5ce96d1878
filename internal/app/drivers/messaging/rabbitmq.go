package messaging

import (
	"fmt"

	"mindscreen-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func NewRabbitMQ(driverConfig *config.DriverConfig, logger *zap.Logger) *amqp091.Connection {
	connectionString := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		driverConfig.RabbitMQ.Username,
		driverConfig.RabbitMQ.Password,
		driverConfig.RabbitMQ.Host,
		driverConfig.RabbitMQ.Port,
	)
	conn, err := amqp091.Dial(connectionString)
	if err != nil {
		logger.Fatal("Failed to connect to rabbitMQ", zap.Error(err))
	}
	logger.Info("Successfully connected to rabbitMQ")
	return conn
}
