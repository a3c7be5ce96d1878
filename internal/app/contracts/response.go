package contracts

import (
	"context"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/dto/responses"
)

// ResponseRepository returns nil without error when a response does not exist.
// Loaded responses carry no answers; use AnswerRepository for those.
type ResponseRepository interface {
	Create(ctx context.Context, response *models.Response) error
	FindByID(ctx context.Context, responseID string) (*models.Response, error)
	FindByUniqueCode(ctx context.Context, uniqueCode string) (*models.Response, error)
	FindAll(ctx context.Context, filter models.ResponseFilter) ([]models.Response, int, error)
	// FindByState pages through responses in state ordered by (updated_at, id),
	// starting after cursor.
	FindByState(ctx context.Context, state models.ResponseState, after models.ResponseCursor, limit int) ([]models.Response, error)
	FindByQuestionnaireID(ctx context.Context, questionnaireID string) ([]models.Response, error)
	CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int, error)
	// Save writes the response state and upserts answers in one transaction.
	// It fails with a version conflict when response.Version is stale and
	// bumps response.Version on success.
	Save(ctx context.Context, response *models.Response, answers ...models.Answer) error
}

type AnswerRepository interface {
	FindByResponseID(ctx context.Context, responseID string) ([]models.Answer, error)
	FindByResponseIDs(ctx context.Context, responseIDs []string) (map[string][]models.Answer, error)
}

type ResponseUsecase interface {
	StartResponse(ctx context.Context, request *requests.StartResponse) (*responses.Response, error)
	StartPublicResponse(ctx context.Context, request *requests.StartPublicResponse) (*responses.PublicResponse, error)
	FindPublicResponseByUniqueCode(ctx context.Context, uniqueCode string) (*responses.PublicResponse, error)
	RecordPublicAnswer(ctx context.Context, uniqueCode string, request *requests.RecordAnswer) (*responses.PublicResponse, error)
	SubmitPublicResponse(ctx context.Context, uniqueCode string) (*responses.PublicResponse, error)
	RecordAnswer(ctx context.Context, request *requests.RecordAnswer) (*responses.Response, error)
	SubmitResponse(ctx context.Context, responseID string) (*responses.Response, error)
	ScoreResponse(ctx context.Context, responseID string) (*responses.Response, error)
	SetFlag(ctx context.Context, request *requests.SetFlag) (*responses.Response, error)
	ReopenResponse(ctx context.Context, responseID string) (*responses.Response, error)
	FindResponseByID(ctx context.Context, responseID string) (*responses.Response, error)
	FindAllResponses(ctx context.Context, request *requests.FindAllResponses) ([]responses.Response, int, error)
	RescoreCompletedResponses(ctx context.Context, limit int) (int, error)
}
