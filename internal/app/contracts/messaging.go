package contracts

import (
	"context"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/dto/requests"
)

type EventPublisher interface {
	PublishResponseEvent(ctx context.Context, event models.ResponseEvent) error
	PublishAnalysisRequest(ctx context.Context, request models.AnalysisRequest) error
}

type MailerService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}
