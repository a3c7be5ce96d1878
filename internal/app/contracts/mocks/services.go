package mocks

import (
	"context"
	"io"
	"time"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/mock"
)

type LockerService struct {
	mock.Mock
}

func (m *LockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *LockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishResponseEvent(ctx context.Context, event models.ResponseEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventPublisher) PublishAnalysisRequest(ctx context.Context, request models.AnalysisRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MailerService struct {
	mock.Mock
}

func (m *MailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

// Storage drains the uploaded content into Uploaded so tests can inspect it.
type Storage struct {
	mock.Mock
	Uploaded []byte
}

func (m *Storage) UploadObject(ctx context.Context, content io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	m.Uploaded = data
	args := m.Called(ctx, size, bucketName, objectName, contentType)
	return args.String(0), args.Error(1)
}

func (m *Storage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}
