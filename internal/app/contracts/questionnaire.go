package contracts

import (
	"context"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/dto/responses"
)

// QuestionnaireRepository returns nil without error when a questionnaire does not exist.
type QuestionnaireRepository interface {
	Create(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error
	Update(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error
	FindByID(ctx context.Context, questionnaireID string) (*models.Questionnaire, error)
	FindAll(ctx context.Context, filter models.QuestionnaireFilter) ([]models.Questionnaire, int, error)
	Delete(ctx context.Context, questionnaireID string) error
}

type QuestionRepository interface {
	FindByQuestionnaireID(ctx context.Context, questionnaireID string) ([]models.Question, error)
}

type QuestionnaireUsecase interface {
	CreateQuestionnaire(ctx context.Context, request *requests.UpsertQuestionnaire) (*responses.Questionnaire, error)
	UpdateQuestionnaire(ctx context.Context, request *requests.UpsertQuestionnaire) (*responses.Questionnaire, error)
	FindQuestionnaireByID(ctx context.Context, questionnaireID string) (*responses.Questionnaire, error)
	FindAllQuestionnaires(ctx context.Context, request *requests.FindAllQuestionnaires) ([]responses.Questionnaire, int, error)
	DeleteQuestionnaireByID(ctx context.Context, questionnaireID string) error
	FindAllPresets(ctx context.Context) []responses.QuestionnairePreset
	CreateQuestionnaireFromPreset(ctx context.Context, request *requests.CreateQuestionnaireFromPreset) (*responses.Questionnaire, error)
	CreateDistributionLink(ctx context.Context, request *requests.CreateDistributionLink) (*responses.DistributionLink, error)
}
