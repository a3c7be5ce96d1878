package reports

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts/mocks"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/responses"
	"mindscreen-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var reportNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

type reportFixture struct {
	questionnaires *mocks.QuestionnaireRepository
	questions      *mocks.QuestionRepository
	responses      *mocks.ResponseRepository
	answers        *mocks.AnswerRepository
	redis          *mocks.RedisRepository
	storage        *mocks.Storage
	usecase        *reportUsecase
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		questionnaires: new(mocks.QuestionnaireRepository),
		questions:      new(mocks.QuestionRepository),
		responses:      new(mocks.ResponseRepository),
		answers:        new(mocks.AnswerRepository),
		redis:          new(mocks.RedisRepository),
		storage:        new(mocks.Storage),
	}
	internalConfig := &config.InternalConfig{
		Minio: config.AppMinio{ExportBucketName: "exports", PreSignedUrlObjectExpiryTimeInHours: 2},
		Cache: config.AppCache{AnalyticsCacheTTLInSeconds: 300},
	}
	f.usecase = NewReportUsecase(f.questionnaires, f.questions, f.responses, f.answers, f.redis, f.storage, internalConfig, zap.NewNop()).(*reportUsecase)
	f.usecase.now = func() time.Time { return reportNow }
	return f
}

func reportQuestionnaire() *models.Questionnaire {
	return &models.Questionnaire{
		ID:             "qn-1",
		ScoringMethod:  models.ScoringMethodSum,
		ScorePrecision: 2,
		RiskLevels: models.RiskThresholds{
			{Label: "low", MinScore: 0},
			{Label: "high", MinScore: 4},
		},
	}
}

func scoredResponse(id string, score float64, risk string, flagged bool) models.Response {
	completedAt := reportNow.Add(-time.Hour)
	return models.Response{
		ID:               id,
		QuestionnaireID:  "qn-1",
		UniqueCode:       "CODE" + id,
		State:            models.ResponseStateScored,
		Score:            &score,
		RiskLevel:        &risk,
		FlaggedForReview: flagged,
		CompletedAt:      &completedAt,
	}
}

func TestSummarize(t *testing.T) {
	all := []models.Response{
		scoredResponse("r-1", 2, "low", false),
		scoredResponse("r-2", 5, "high", true),
		scoredResponse("r-3", 6, "high", false),
		{ID: "r-4", State: models.ResponseStateDraft},
		{ID: "r-5", State: models.ResponseStateCompleted, FlaggedForReview: true},
	}

	summary := summarize(*reportQuestionnaire(), all, reportNow)

	assert.Equal(t, 5, summary.TotalResponses)
	assert.Equal(t, 3, summary.ResponsesByState[models.ResponseStateScored])
	assert.Equal(t, 1, summary.ResponsesByState[models.ResponseStateDraft])
	assert.Equal(t, 0, summary.ResponsesByState[models.ResponseStateInProgress])
	assert.Equal(t, 2, summary.FlaggedResponses)
	assert.Equal(t, map[string]int{"low": 1, "high": 2}, summary.RiskDistribution)
	require.NotNil(t, summary.AverageScore)
	assert.Equal(t, 4.33, *summary.AverageScore)
}

func TestSummarize_NoScoredResponses(t *testing.T) {
	summary := summarize(*reportQuestionnaire(), nil, reportNow)
	assert.Zero(t, summary.TotalResponses)
	assert.Nil(t, summary.AverageScore)
	assert.Equal(t, 0, summary.RiskDistribution["high"])
}

func TestReportUsecase_GetQuestionnaireSummary(t *testing.T) {
	ctx := context.Background()
	key := "questionnaire:summary:qn-1"

	t.Run("computes and caches on miss", func(t *testing.T) {
		f := newReportFixture()
		f.redis.On("Get", ctx, key).Return("", nil)
		f.questionnaires.On("FindByID", ctx, "qn-1").Return(reportQuestionnaire(), nil)
		f.responses.On("FindByQuestionnaireID", ctx, "qn-1").Return([]models.Response{scoredResponse("r-1", 5, "high", true)}, nil)
		f.redis.On("Set", ctx, key, mock.AnythingOfType("responses.QuestionnaireSummary"), 300*time.Second).Return(nil)

		summary, err := f.usecase.GetQuestionnaireSummary(ctx, "qn-1")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalResponses)
		assert.Equal(t, 1, summary.ResponsesByState["scored"])
		assert.Equal(t, 1, summary.RiskDistribution["high"])
		f.redis.AssertExpectations(t)
	})

	t.Run("serves the cached copy", func(t *testing.T) {
		f := newReportFixture()
		cached, err := json.Marshal(responses.QuestionnaireSummary{QuestionnaireID: "qn-1", TotalResponses: 42})
		require.NoError(t, err)
		f.redis.On("Get", ctx, key).Return(string(cached), nil)

		summary, err := f.usecase.GetQuestionnaireSummary(ctx, "qn-1")
		require.NoError(t, err)
		assert.Equal(t, 42, summary.TotalResponses)
		f.questionnaires.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown questionnaire", func(t *testing.T) {
		f := newReportFixture()
		f.redis.On("Get", ctx, "questionnaire:summary:missing").Return("", nil)
		f.questionnaires.On("FindByID", ctx, "missing").Return(nil, nil)

		_, err := f.usecase.GetQuestionnaireSummary(ctx, "missing")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}

func TestReportUsecase_ExportResponses(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()

	questions := []models.Question{
		{ID: "q-2", QuestionnaireID: "qn-1", Text: "Restless", Type: models.QuestionTypeSingleChoice, OrderNum: 2},
		{ID: "q-1", QuestionnaireID: "qn-1", Text: "Tense, nervous", Type: models.QuestionTypeSingleChoice, OrderNum: 1},
	}
	all := []models.Response{
		scoredResponse("r-1", 5, "high", true),
		{ID: "r-2", QuestionnaireID: "qn-1", UniqueCode: "CODEr-2", State: models.ResponseStateInProgress},
	}

	f.questionnaires.On("FindByID", ctx, "qn-1").Return(reportQuestionnaire(), nil)
	f.questions.On("FindByQuestionnaireID", ctx, "qn-1").Return(questions, nil)
	f.responses.On("FindByQuestionnaireID", ctx, "qn-1").Return(all, nil)
	f.answers.On("FindByResponseIDs", ctx, []string{"r-1", "r-2"}).Return(map[string][]models.Answer{
		"r-1": {
			{QuestionID: "q-1", Value: models.ChoiceValue(3)},
			{QuestionID: "q-2", Value: models.ChoiceValue(2)},
		},
		"r-2": {
			{QuestionID: "q-1", Value: models.ChoiceValue(1)},
		},
	}, nil)
	f.storage.On("UploadObject", ctx, mock.AnythingOfType("int64"), "exports", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "exports/qn-1/responses_") && strings.HasSuffix(name, ".csv")
	}), constvars.MIMETextCSV).Return("exports/qn-1/responses.csv", nil)
	f.storage.On("GetObjectUrlWithExpiryTime", ctx, "exports", "exports/qn-1/responses.csv", 2*time.Hour).Return("https://minio.local/presigned", nil)

	export, err := f.usecase.ExportResponses(ctx, "qn-1")
	require.NoError(t, err)
	assert.Equal(t, 2, export.RowCount)
	assert.Equal(t, "https://minio.local/presigned", export.URL)
	assert.Equal(t, reportNow.Add(2*time.Hour), export.ExpiresAt)

	rows, err := csv.NewReader(strings.NewReader(string(f.storage.Uploaded))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"response_id", "unique_code", "state", "score", "risk_level", "flagged_for_review", "completed_at",
		"1. Tense, nervous", "2. Restless",
	}, rows[0])
	assert.Equal(t, []string{"r-1", "CODEr-1", "scored", "5", "high", "true", "2024-07-15T11:00:00Z", "3", "2"}, rows[1])
	assert.Equal(t, []string{"r-2", "CODEr-2", "in_progress", "", "", "false", "", "1", ""}, rows[2])
}

func TestWriteResponsesCSV_EscapesFormulas(t *testing.T) {
	questions := []models.Question{
		{ID: "q-1", QuestionnaireID: "qn-1", Text: "Anything else?", Type: models.QuestionTypeText, OrderNum: 1},
		{ID: "q-2", QuestionnaireID: "qn-1", Text: "Shift", Type: models.QuestionTypeScale, OrderNum: 2},
	}
	all := []models.Response{{ID: "r-1", QuestionnaireID: "qn-1", UniqueCode: "CODE1", State: models.ResponseStateCompleted}}
	answers := map[string][]models.Answer{
		"r-1": {
			{QuestionID: "q-1", Value: models.TextValue(`=HYPERLINK("http://evil.example","open")`)},
			{QuestionID: "q-2", Value: models.AnswerValue{Kind: models.AnswerKindNumeric, Number: -2}},
		},
	}

	var buffer strings.Builder
	require.NoError(t, writeResponsesCSV(&buffer, questions, all, answers))

	rows, err := csv.NewReader(strings.NewReader(buffer.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `'=HYPERLINK("http://evil.example","open")`, rows[1][7])
	assert.Equal(t, "-2", rows[1][8])
}
