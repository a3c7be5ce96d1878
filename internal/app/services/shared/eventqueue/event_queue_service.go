package eventqueue

import (
	"context"
	"fmt"
	"sync"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Service publishes response lifecycle events and analysis requests to
// durable queues and waits for the broker confirm of every message.
type Service struct {
	ch            publisher
	closer        func() error
	log           *zap.Logger
	confirms      <-chan amqp.Confirmation
	eventsQueue   string
	analysisQueue string
	mu            sync.Mutex
}

var _ contracts.EventPublisher = (*Service)(nil)

// NewService opens a channel, declares both queues and enables publisher confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, eventsQueue, analysisQueue string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	for _, queue := range []string{eventsQueue, analysisQueue} {
		_, err = ch.QueueDeclare(
			queue, // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			ch.Close()
			return nil, err
		}
	}

	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	svc := newService(ch, ch.NotifyPublish(make(chan amqp.Confirmation, 1)), log, eventsQueue, analysisQueue)
	svc.closer = ch.Close
	return svc, nil
}

func newService(ch publisher, confirms <-chan amqp.Confirmation, log *zap.Logger, eventsQueue, analysisQueue string) *Service {
	return &Service{
		ch:            ch,
		log:           log,
		confirms:      confirms,
		eventsQueue:   eventsQueue,
		analysisQueue: analysisQueue,
	}
}

func (s *Service) PublishResponseEvent(ctx context.Context, event models.ResponseEvent) error {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("EventQueue.PublishResponseEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingResponseIDKey, event.ResponseID),
	)

	if err := s.publish(ctx, s.eventsQueue, event.Type, event); err != nil {
		s.log.Error("EventQueue.PublishResponseEvent error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.eventsQueue),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) PublishAnalysisRequest(ctx context.Context, request models.AnalysisRequest) error {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("EventQueue.PublishAnalysisRequest called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, request.ResponseID),
	)

	if err := s.publish(ctx, s.analysisQueue, "analysis.requested", request); err != nil {
		s.log.Error("EventQueue.PublishAnalysisRequest error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.analysisQueue),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Service) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *Service) publish(ctx context.Context, queue, messageType string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Type:         messageType,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed, ok := <-s.confirms:
		if !ok {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("channel closed before confirm"), queue)
		}
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
