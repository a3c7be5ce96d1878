package mailer

import (
	"context"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// mailerService hands email payloads to the mail queue. Delivery happens in
// a separate mail worker that consumes the queue.
type mailerService struct {
	Channel publisher
	Queue   string
	Log     *zap.Logger
}

func NewMailerService(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.MailerService, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		return nil, err
	}

	return &mailerService{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *mailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("mailerService.SendEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.Queue),
	)

	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("mailerService.SendEmail error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	s.Log.Info("mailerService.SendEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}
