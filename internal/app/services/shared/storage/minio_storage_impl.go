package storage

import (
	"context"
	"io"
	"net/url"
	"time"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, content io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	_, err := m.MinioClient.PutObject(ctx, bucketName, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	return objectName, nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiryTime, url.Values{})
	if err != nil {
		return "", exceptions.ErrMinioFindObjectPresignedURL(err, bucketName)
	}
	return presignedURL.String(), nil
}
