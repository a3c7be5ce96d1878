package mocks

import (
	"context"

	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type QuestionnaireUsecase struct {
	mock.Mock
}

func (m *QuestionnaireUsecase) CreateQuestionnaire(ctx context.Context, request *requests.UpsertQuestionnaire) (*responses.Questionnaire, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Questionnaire)
	return result, args.Error(1)
}

func (m *QuestionnaireUsecase) UpdateQuestionnaire(ctx context.Context, request *requests.UpsertQuestionnaire) (*responses.Questionnaire, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Questionnaire)
	return result, args.Error(1)
}

func (m *QuestionnaireUsecase) FindQuestionnaireByID(ctx context.Context, questionnaireID string) (*responses.Questionnaire, error) {
	args := m.Called(ctx, questionnaireID)
	result, _ := args.Get(0).(*responses.Questionnaire)
	return result, args.Error(1)
}

func (m *QuestionnaireUsecase) FindAllQuestionnaires(ctx context.Context, request *requests.FindAllQuestionnaires) ([]responses.Questionnaire, int, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).([]responses.Questionnaire)
	return result, args.Int(1), args.Error(2)
}

func (m *QuestionnaireUsecase) DeleteQuestionnaireByID(ctx context.Context, questionnaireID string) error {
	args := m.Called(ctx, questionnaireID)
	return args.Error(0)
}

func (m *QuestionnaireUsecase) FindAllPresets(ctx context.Context) []responses.QuestionnairePreset {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]responses.QuestionnairePreset)
	return result
}

func (m *QuestionnaireUsecase) CreateQuestionnaireFromPreset(ctx context.Context, request *requests.CreateQuestionnaireFromPreset) (*responses.Questionnaire, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Questionnaire)
	return result, args.Error(1)
}

func (m *QuestionnaireUsecase) CreateDistributionLink(ctx context.Context, request *requests.CreateDistributionLink) (*responses.DistributionLink, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.DistributionLink)
	return result, args.Error(1)
}

type ResponseUsecase struct {
	mock.Mock
}

func (m *ResponseUsecase) StartResponse(ctx context.Context, request *requests.StartResponse) (*responses.Response, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) StartPublicResponse(ctx context.Context, request *requests.StartPublicResponse) (*responses.PublicResponse, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.PublicResponse)
	return result, args.Error(1)
}

func (m *ResponseUsecase) FindPublicResponseByUniqueCode(ctx context.Context, uniqueCode string) (*responses.PublicResponse, error) {
	args := m.Called(ctx, uniqueCode)
	result, _ := args.Get(0).(*responses.PublicResponse)
	return result, args.Error(1)
}

func (m *ResponseUsecase) RecordPublicAnswer(ctx context.Context, uniqueCode string, request *requests.RecordAnswer) (*responses.PublicResponse, error) {
	args := m.Called(ctx, uniqueCode, request)
	result, _ := args.Get(0).(*responses.PublicResponse)
	return result, args.Error(1)
}

func (m *ResponseUsecase) SubmitPublicResponse(ctx context.Context, uniqueCode string) (*responses.PublicResponse, error) {
	args := m.Called(ctx, uniqueCode)
	result, _ := args.Get(0).(*responses.PublicResponse)
	return result, args.Error(1)
}

func (m *ResponseUsecase) RecordAnswer(ctx context.Context, request *requests.RecordAnswer) (*responses.Response, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) SubmitResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	args := m.Called(ctx, responseID)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) ScoreResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	args := m.Called(ctx, responseID)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) SetFlag(ctx context.Context, request *requests.SetFlag) (*responses.Response, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) ReopenResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	args := m.Called(ctx, responseID)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) FindResponseByID(ctx context.Context, responseID string) (*responses.Response, error) {
	args := m.Called(ctx, responseID)
	result, _ := args.Get(0).(*responses.Response)
	return result, args.Error(1)
}

func (m *ResponseUsecase) FindAllResponses(ctx context.Context, request *requests.FindAllResponses) ([]responses.Response, int, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).([]responses.Response)
	return result, args.Int(1), args.Error(2)
}

func (m *ResponseUsecase) RescoreCompletedResponses(ctx context.Context, limit int) (int, error) {
	args := m.Called(ctx, limit)
	return args.Int(0), args.Error(1)
}

type ReportUsecase struct {
	mock.Mock
}

func (m *ReportUsecase) GetQuestionnaireSummary(ctx context.Context, questionnaireID string) (*responses.QuestionnaireSummary, error) {
	args := m.Called(ctx, questionnaireID)
	result, _ := args.Get(0).(*responses.QuestionnaireSummary)
	return result, args.Error(1)
}

func (m *ReportUsecase) ExportResponses(ctx context.Context, questionnaireID string) (*responses.ResponseExport, error) {
	args := m.Called(ctx, questionnaireID)
	result, _ := args.Get(0).(*responses.ResponseExport)
	return result, args.Error(1)
}

type AnalysisUsecase struct {
	mock.Mock
}

func (m *AnalysisUsecase) SaveAnalysis(ctx context.Context, responseID string, payload map[string]interface{}) (*responses.Analysis, error) {
	args := m.Called(ctx, responseID, payload)
	result, _ := args.Get(0).(*responses.Analysis)
	return result, args.Error(1)
}

func (m *AnalysisUsecase) FindAnalysisByResponseID(ctx context.Context, responseID string) (*responses.Analysis, error) {
	args := m.Called(ctx, responseID)
	result, _ := args.Get(0).(*responses.Analysis)
	return result, args.Error(1)
}
