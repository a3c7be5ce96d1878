package mocks

import (
	"context"
	"time"

	"mindscreen-service/internal/app/models"

	"github.com/stretchr/testify/mock"
)

type QuestionnaireRepository struct {
	mock.Mock
}

func (m *QuestionnaireRepository) Create(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error {
	args := m.Called(ctx, questionnaire, questions)
	return args.Error(0)
}

func (m *QuestionnaireRepository) Update(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error {
	args := m.Called(ctx, questionnaire, questions)
	return args.Error(0)
}

func (m *QuestionnaireRepository) FindByID(ctx context.Context, questionnaireID string) (*models.Questionnaire, error) {
	args := m.Called(ctx, questionnaireID)
	questionnaire, _ := args.Get(0).(*models.Questionnaire)
	return questionnaire, args.Error(1)
}

func (m *QuestionnaireRepository) FindAll(ctx context.Context, filter models.QuestionnaireFilter) ([]models.Questionnaire, int, error) {
	args := m.Called(ctx, filter)
	questionnaires, _ := args.Get(0).([]models.Questionnaire)
	return questionnaires, args.Int(1), args.Error(2)
}

func (m *QuestionnaireRepository) Delete(ctx context.Context, questionnaireID string) error {
	args := m.Called(ctx, questionnaireID)
	return args.Error(0)
}

type QuestionRepository struct {
	mock.Mock
}

func (m *QuestionRepository) FindByQuestionnaireID(ctx context.Context, questionnaireID string) ([]models.Question, error) {
	args := m.Called(ctx, questionnaireID)
	questions, _ := args.Get(0).([]models.Question)
	return questions, args.Error(1)
}

type ResponseRepository struct {
	mock.Mock
}

func (m *ResponseRepository) Create(ctx context.Context, response *models.Response) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *ResponseRepository) FindByID(ctx context.Context, responseID string) (*models.Response, error) {
	args := m.Called(ctx, responseID)
	response, _ := args.Get(0).(*models.Response)
	return response, args.Error(1)
}

func (m *ResponseRepository) FindByUniqueCode(ctx context.Context, uniqueCode string) (*models.Response, error) {
	args := m.Called(ctx, uniqueCode)
	response, _ := args.Get(0).(*models.Response)
	return response, args.Error(1)
}

func (m *ResponseRepository) FindAll(ctx context.Context, filter models.ResponseFilter) ([]models.Response, int, error) {
	args := m.Called(ctx, filter)
	result, _ := args.Get(0).([]models.Response)
	return result, args.Int(1), args.Error(2)
}

func (m *ResponseRepository) FindByState(ctx context.Context, state models.ResponseState, after models.ResponseCursor, limit int) ([]models.Response, error) {
	args := m.Called(ctx, state, after, limit)
	result, _ := args.Get(0).([]models.Response)
	return result, args.Error(1)
}

func (m *ResponseRepository) FindByQuestionnaireID(ctx context.Context, questionnaireID string) ([]models.Response, error) {
	args := m.Called(ctx, questionnaireID)
	result, _ := args.Get(0).([]models.Response)
	return result, args.Error(1)
}

func (m *ResponseRepository) CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int, error) {
	args := m.Called(ctx, questionnaireID)
	return args.Int(0), args.Error(1)
}

// Save mirrors the version bump of the real repository when it succeeds.
func (m *ResponseRepository) Save(ctx context.Context, response *models.Response, answers ...models.Answer) error {
	args := m.Called(ctx, response, answers)
	if args.Error(0) == nil {
		response.Version++
	}
	return args.Error(0)
}

type AnswerRepository struct {
	mock.Mock
}

func (m *AnswerRepository) FindByResponseID(ctx context.Context, responseID string) ([]models.Answer, error) {
	args := m.Called(ctx, responseID)
	answers, _ := args.Get(0).([]models.Answer)
	return answers, args.Error(1)
}

func (m *AnswerRepository) FindByResponseIDs(ctx context.Context, responseIDs []string) (map[string][]models.Answer, error) {
	args := m.Called(ctx, responseIDs)
	answers, _ := args.Get(0).(map[string][]models.Answer)
	return answers, args.Error(1)
}

type AnalysisRepository struct {
	mock.Mock
}

func (m *AnalysisRepository) Upsert(ctx context.Context, analysis *models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *AnalysisRepository) FindByResponseID(ctx context.Context, responseID string) (*models.Analysis, error) {
	args := m.Called(ctx, responseID)
	analysis, _ := args.Get(0).(*models.Analysis)
	return analysis, args.Error(1)
}

type RedisRepository struct {
	mock.Mock
}

func (m *RedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}
