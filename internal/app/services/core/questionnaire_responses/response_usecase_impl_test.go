package questionnaireResponses

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts/mocks"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/app/services/core/lifecycle"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testQuestionnaireID = "qn-1"
	testResponseID      = "r-1"
	testSecret          = "distribution-secret"
)

var testNow = time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)

type responseFixture struct {
	questionnaires *mocks.QuestionnaireRepository
	questions      *mocks.QuestionRepository
	responses      *mocks.ResponseRepository
	answers        *mocks.AnswerRepository
	redis          *mocks.RedisRepository
	locker         *mocks.LockerService
	publisher      *mocks.EventPublisher
	mailer         *mocks.MailerService
	config         *config.InternalConfig
	usecase        *responseUsecase
}

func newResponseFixture() *responseFixture {
	f := &responseFixture{
		questionnaires: new(mocks.QuestionnaireRepository),
		questions:      new(mocks.QuestionRepository),
		responses:      new(mocks.ResponseRepository),
		answers:        new(mocks.AnswerRepository),
		redis:          new(mocks.RedisRepository),
		locker:         new(mocks.LockerService),
		publisher:      new(mocks.EventPublisher),
		mailer:         new(mocks.MailerService),
		config: &config.InternalConfig{
			JWT: config.AppJWT{Secret: testSecret},
			Scoring: config.AppScoring{
				AutoScoreOnSubmit:           true,
				ResponseLockTTLInSeconds:    10,
				UniqueCodeCacheTTLInMinutes: 60,
			},
			Mailer: config.AppMailer{
				EmailSender:    "noreply@mindscreen.example",
				ReviewerEmails: []string{"reviewer@mindscreen.example"},
			},
		},
	}

	f.usecase = NewResponseUsecase(
		f.questionnaires, f.questions, f.responses, f.answers,
		f.redis, f.locker, f.publisher, f.mailer,
		f.config, zap.NewNop(),
	).(*responseUsecase)

	sequence := 0
	newID := func() string {
		sequence++
		return fmt.Sprintf("id-%d", sequence)
	}
	f.usecase.now = func() time.Time { return testNow }
	f.usecase.newID = newID
	f.usecase.newUniqueCode = func() (string, error) { return "ABCDEFGH23", nil }
	f.usecase.Lifecycle = lifecycle.NewControllerWithClock(func() time.Time { return testNow }, newID)

	f.redis.On("Delete", mock.Anything, fmt.Sprintf(constvars.RedisKeyQuestionnaireSummary, testQuestionnaireID)).Return(nil).Maybe()
	return f
}

func (f *responseFixture) expectLock(responseID string) {
	key := fmt.Sprintf(constvars.RedisKeyResponseLock, responseID)
	f.locker.On("TryLock", mock.Anything, key, 10*time.Second).Return(true, "lock-token", nil)
	f.locker.On("Unlock", mock.Anything, key, "lock-token").Return(nil)
}

func (f *responseFixture) expectQuestionnaire(questionnaire *models.Questionnaire) {
	f.questionnaires.On("FindByID", mock.Anything, questionnaire.ID).Return(questionnaire, nil)
	f.questions.On("FindByQuestionnaireID", mock.Anything, questionnaire.ID).Return(testQuestions(), nil)
}

func (f *responseFixture) expectResponse(response *models.Response, answers []models.Answer) {
	f.responses.On("FindByID", mock.Anything, response.ID).Return(response, nil)
	f.answers.On("FindByResponseID", mock.Anything, response.ID).Return(answers, nil)
}

func (f *responseFixture) expectEvents() {
	f.publisher.On("PublishResponseEvent", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishAnalysisRequest", mock.Anything, mock.Anything).Return(nil)
}

func testQuestionnaire() *models.Questionnaire {
	return &models.Questionnaire{
		ID:             testQuestionnaireID,
		Title:          "Stress check",
		Type:           models.QuestionnaireTypeScreening,
		ScoringMethod:  models.ScoringMethodSum,
		ScorePrecision: 2,
		RiskLevels: models.RiskThresholds{
			{Label: "low", MinScore: 0},
			{Label: "high", MinScore: 4},
		},
		FlagRiskLevel: "high",
	}
}

func testQuestions() []models.Question {
	options := models.QuestionOptions{{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}}
	return []models.Question{
		{ID: "q-1", QuestionnaireID: testQuestionnaireID, Text: "Tense", Type: models.QuestionTypeSingleChoice, Required: true, OrderNum: 1, Options: options, ScoringWeight: 1},
		{ID: "q-2", QuestionnaireID: testQuestionnaireID, Text: "Restless", Type: models.QuestionTypeSingleChoice, Required: true, OrderNum: 2, Options: options, ScoringWeight: 1},
	}
}

func testAnswers(first, second float64) []models.Answer {
	return []models.Answer{
		{ID: "a-1", ResponseID: testResponseID, QuestionID: "q-1", Value: models.ChoiceValue(first), AnsweredAt: testNow},
		{ID: "a-2", ResponseID: testResponseID, QuestionID: "q-2", Value: models.ChoiceValue(second), AnsweredAt: testNow},
	}
}

func testResponse(state models.ResponseState) *models.Response {
	return &models.Response{
		ID:              testResponseID,
		QuestionnaireID: testQuestionnaireID,
		UniqueCode:      "ABCDEFGH23",
		State:           state,
		Version:         3,
	}
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(event models.ResponseEvent) bool {
		return event.Type == eventType
	})
}

func TestResponseUsecase_StartResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with a cached unique code", func(t *testing.T) {
		f := newResponseFixture()
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("FindByUniqueCode", ctx, "ABCDEFGH23").Return(nil, nil)
		f.responses.On("Create", ctx, mock.MatchedBy(func(r *models.Response) bool {
			return r.State == models.ResponseStateDraft && r.Version == 1 && r.Respondent.Email == "ana@example.org"
		})).Return(nil)
		f.redis.On("Set", ctx, "response:code:ABCDEFGH23", "id-1", time.Hour).Return(nil)

		result, err := f.usecase.StartResponse(ctx, &requests.StartResponse{
			QuestionnaireID: testQuestionnaireID,
			Respondent:      requests.Respondent{Name: " Ana ", Email: "Ana@Example.org"},
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", result.State)
		assert.Equal(t, "ABCDEFGH23", result.UniqueCode)
		assert.Equal(t, "Ana", result.Respondent.Name)
		f.redis.AssertExpectations(t)
	})

	t.Run("draws again when the code is taken", func(t *testing.T) {
		f := newResponseFixture()
		codes := []string{"TAKEN23456", "FREE234567"}
		f.usecase.newUniqueCode = func() (string, error) {
			code := codes[0]
			codes = codes[1:]
			return code, nil
		}
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("FindByUniqueCode", ctx, "TAKEN23456").Return(&models.Response{ID: "other"}, nil)
		f.responses.On("FindByUniqueCode", ctx, "FREE234567").Return(nil, nil)
		f.responses.On("Create", ctx, mock.Anything).Return(nil)
		f.redis.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := f.usecase.StartResponse(ctx, &requests.StartResponse{QuestionnaireID: testQuestionnaireID})
		require.NoError(t, err)
		assert.Equal(t, "FREE234567", result.UniqueCode)
	})

	t.Run("unknown questionnaire", func(t *testing.T) {
		f := newResponseFixture()
		f.questionnaires.On("FindByID", ctx, "missing").Return(nil, nil)

		_, err := f.usecase.StartResponse(ctx, &requests.StartResponse{QuestionnaireID: "missing"})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
		f.responses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestResponseUsecase_StartPublicResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a valid distribution token", func(t *testing.T) {
		f := newResponseFixture()
		token, err := utils.GenerateDistributionJWT(testQuestionnaireID, testSecret, time.Now().Add(time.Hour))
		require.NoError(t, err)
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("FindByUniqueCode", ctx, mock.Anything).Return(nil, nil)
		f.responses.On("Create", ctx, mock.Anything).Return(nil)
		f.redis.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := f.usecase.StartPublicResponse(ctx, &requests.StartPublicResponse{Token: token})
		require.NoError(t, err)
		assert.Equal(t, "Stress check", result.Title)
		assert.Len(t, result.Questions, 2)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		f := newResponseFixture()
		token, err := utils.GenerateDistributionJWT(testQuestionnaireID, "other-secret", time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = f.usecase.StartPublicResponse(ctx, &requests.StartPublicResponse{Token: token})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidDistributionLink))
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		f := newResponseFixture()
		token, err := utils.GenerateDistributionJWT(testQuestionnaireID, testSecret, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = f.usecase.StartPublicResponse(ctx, &requests.StartPublicResponse{Token: token})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidDistributionLink))
	})
}

func TestResponseUsecase_RecordAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("first answer moves the response to in progress", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateDraft), nil)
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.MatchedBy(func(r *models.Response) bool {
			return r.State == models.ResponseStateInProgress
		}), mock.MatchedBy(func(answers []models.Answer) bool {
			return len(answers) == 1 && answers[0].QuestionID == "q-1" && answers[0].Value.Number == 2
		})).Return(nil)

		result, err := f.usecase.RecordAnswer(ctx, &requests.RecordAnswer{
			ResponseID: testResponseID,
			QuestionID: "q-1",
			Value:      json.RawMessage(`2`),
		})
		require.NoError(t, err)
		assert.Equal(t, "in_progress", result.State)
		assert.Equal(t, 4, result.Version)
		require.Len(t, result.Answers, 1)
		f.locker.AssertExpectations(t)
	})

	t.Run("scored responses are immutable", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateScored), testAnswers(1, 1))
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.RecordAnswer(ctx, &requests.RecordAnswer{
			ResponseID: testResponseID,
			QuestionID: "q-1",
			Value:      json.RawMessage(`3`),
		})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeResponseAlreadyScored))
		f.responses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		f.locker.AssertCalled(t, "Unlock", mock.Anything, "response:lock:r-1", "lock-token")
	})

	t.Run("question of another questionnaire", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), nil)
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.RecordAnswer(ctx, &requests.RecordAnswer{
			ResponseID: testResponseID,
			QuestionID: "q-foreign",
			Value:      json.RawMessage(`1`),
		})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeQuestionNotInQuestionnaire))
	})

	t.Run("value outside the options", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), nil)
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.RecordAnswer(ctx, &requests.RecordAnswer{
			ResponseID: testResponseID,
			QuestionID: "q-1",
			Value:      json.RawMessage(`7`),
		})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidAnswerValue))
	})

	t.Run("locked by another writer", func(t *testing.T) {
		f := newResponseFixture()
		f.locker.On("TryLock", mock.Anything, "response:lock:r-1", mock.Anything).Return(false, "", nil)

		_, err := f.usecase.RecordAnswer(ctx, &requests.RecordAnswer{
			ResponseID: testResponseID,
			QuestionID: "q-1",
			Value:      json.RawMessage(`1`),
		})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeResponseLocked))
		f.responses.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateDraft), nil)
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(exceptions.ErrResponseVersionConflict(testResponseID, 3))

		_, err := f.usecase.RecordAnswer(ctx, &requests.RecordAnswer{
			ResponseID: testResponseID,
			QuestionID: "q-1",
			Value:      json.RawMessage(`1`),
		})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeResponseVersionConflict))
	})
}

func TestResponseUsecase_SubmitResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("auto scoring flags high risk and notifies reviewers", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(3, 2))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.expectEvents()
		f.mailer.On("SendEmail", ctx, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
			return payload.To[0] == "reviewer@mindscreen.example" && payload.Subject == constvars.EmailReviewerFlaggedSubject
		})).Return(nil)

		result, err := f.usecase.SubmitResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "scored", result.State)
		require.NotNil(t, result.Score)
		assert.Equal(t, 5.0, *result.Score)
		assert.Equal(t, "high", *result.RiskLevel)
		assert.True(t, result.FlaggedForReview)
		assert.Equal(t, 5, result.Version)

		f.publisher.AssertCalled(t, "PublishResponseEvent", mock.Anything, eventOfType(constvars.EventResponseSubmitted))
		f.publisher.AssertCalled(t, "PublishResponseEvent", mock.Anything, eventOfType(constvars.EventResponseScored))
		f.publisher.AssertCalled(t, "PublishResponseEvent", mock.Anything, eventOfType(constvars.EventResponseFlagged))
		f.publisher.AssertCalled(t, "PublishAnalysisRequest", mock.Anything, mock.MatchedBy(func(request models.AnalysisRequest) bool {
			return request.ResponseID == testResponseID && request.RiskLevel == "high"
		}))
		f.mailer.AssertExpectations(t)
	})

	t.Run("low risk is scored without a flag", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(1, 0))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.expectEvents()

		result, err := f.usecase.SubmitResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "low", *result.RiskLevel)
		assert.False(t, result.FlaggedForReview)
		f.mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "PublishResponseEvent", mock.Anything, eventOfType(constvars.EventResponseFlagged))
	})

	t.Run("scoring failure leaves the response completed", func(t *testing.T) {
		f := newResponseFixture()
		questionnaire := testQuestionnaire()
		questionnaire.ScoringMethod = models.ScoringMethodCustom
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(1, 1))
		f.expectQuestionnaire(questionnaire)
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		f.expectEvents()

		result, err := f.usecase.SubmitResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "completed", result.State)
		assert.Nil(t, result.Score)
		f.publisher.AssertNotCalled(t, "PublishAnalysisRequest", mock.Anything, mock.Anything)
	})

	t.Run("auto scoring disabled", func(t *testing.T) {
		f := newResponseFixture()
		f.config.Scoring.AutoScoreOnSubmit = false
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(3, 3))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.expectEvents()

		result, err := f.usecase.SubmitResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "completed", result.State)
		require.NotNil(t, result.CompletedAt)
		f.responses.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("missing required answer", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(1, 1)[:1])
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.SubmitResponse(ctx, testResponseID)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeMissingRequiredAnswer))
		assert.Contains(t, err.Error(), "q-2")
	})

	t.Run("event publish failure does not fail the submit", func(t *testing.T) {
		f := newResponseFixture()
		f.config.Scoring.AutoScoreOnSubmit = false
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(1, 1))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("PublishResponseEvent", mock.Anything, mock.Anything).Return(fmt.Errorf("channel closed"))

		result, err := f.usecase.SubmitResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "completed", result.State)
	})
}

func TestResponseUsecase_ScoreResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("scoring twice is refused", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateScored), testAnswers(1, 1))
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.ScoreResponse(ctx, testResponseID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeResponseAlreadyScored))
	})

	t.Run("draft cannot be scored", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateDraft), nil)
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.ScoreResponse(ctx, testResponseID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidTransition))
	})

	t.Run("manual flag survives scoring", func(t *testing.T) {
		f := newResponseFixture()
		completed := testResponse(models.ResponseStateCompleted)
		completed.FlaggedForReview = true
		f.expectLock(testResponseID)
		f.expectResponse(completed, testAnswers(0, 0))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.expectEvents()

		result, err := f.usecase.ScoreResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "low", *result.RiskLevel)
		assert.True(t, result.FlaggedForReview)
		f.mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})
}

func TestResponseUsecase_SetFlag(t *testing.T) {
	ctx := context.Background()
	flagged := true

	t.Run("flags a completed response", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateCompleted), testAnswers(1, 1))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("PublishResponseEvent", mock.Anything, eventOfType(constvars.EventResponseFlagged)).Return(nil)

		result, err := f.usecase.SetFlag(ctx, &requests.SetFlag{ResponseID: testResponseID, Flagged: &flagged})
		require.NoError(t, err)
		assert.True(t, result.FlaggedForReview)
		assert.Equal(t, "completed", result.State)
		f.publisher.AssertExpectations(t)
	})

	t.Run("draft cannot be flagged", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateDraft), nil)
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.SetFlag(ctx, &requests.SetFlag{ResponseID: testResponseID, Flagged: &flagged})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidTransition))
	})

	t.Run("flag is required", func(t *testing.T) {
		_, err := newResponseFixture().usecase.SetFlag(ctx, &requests.SetFlag{ResponseID: testResponseID})
		assert.Error(t, err)
	})
}

func TestResponseUsecase_ReopenResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("scored response drops its score", func(t *testing.T) {
		f := newResponseFixture()
		scored := testResponse(models.ResponseStateScored)
		score, risk := 5.0, "high"
		scored.Score, scored.RiskLevel, scored.ScoredAt = &score, &risk, &testNow
		f.expectLock(testResponseID)
		f.expectResponse(scored, testAnswers(3, 2))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("PublishResponseEvent", mock.Anything, eventOfType(constvars.EventResponseReopened)).Return(nil)

		result, err := f.usecase.ReopenResponse(ctx, testResponseID)
		require.NoError(t, err)
		assert.Equal(t, "in_progress", result.State)
		assert.Nil(t, result.Score)
		assert.Nil(t, result.RiskLevel)
		assert.Len(t, result.Answers, 2)
	})

	t.Run("in progress cannot be reopened", func(t *testing.T) {
		f := newResponseFixture()
		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateInProgress), nil)
		f.expectQuestionnaire(testQuestionnaire())

		_, err := f.usecase.ReopenResponse(ctx, testResponseID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidTransition))
	})
}

func TestResponseUsecase_FindPublicResponseByUniqueCode(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the code from the cache", func(t *testing.T) {
		f := newResponseFixture()
		f.redis.On("Get", ctx, "response:code:ABCDEFGH23").Return(`"r-1"`, nil)
		scored := testResponse(models.ResponseStateScored)
		score := 5.0
		scored.Score = &score
		f.expectResponse(scored, testAnswers(3, 2))
		f.expectQuestionnaire(testQuestionnaire())

		result, err := f.usecase.FindPublicResponseByUniqueCode(ctx, "ABCDEFGH23")
		require.NoError(t, err)
		assert.Equal(t, "scored", result.State)

		body, err := json.Marshal(result)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "score\"")
		f.responses.AssertNotCalled(t, "FindByUniqueCode", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the database and caches", func(t *testing.T) {
		f := newResponseFixture()
		f.redis.On("Get", ctx, "response:code:ABCDEFGH23").Return("", nil)
		f.responses.On("FindByUniqueCode", ctx, "ABCDEFGH23").Return(testResponse(models.ResponseStateDraft), nil)
		f.redis.On("Set", ctx, "response:code:ABCDEFGH23", testResponseID, time.Hour).Return(nil)
		f.expectResponse(testResponse(models.ResponseStateDraft), nil)
		f.expectQuestionnaire(testQuestionnaire())

		result, err := f.usecase.FindPublicResponseByUniqueCode(ctx, "ABCDEFGH23")
		require.NoError(t, err)
		assert.Equal(t, "draft", result.State)
		f.redis.AssertExpectations(t)
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newResponseFixture()
		f.redis.On("Get", ctx, "response:code:NOPE234567").Return("", nil)
		f.responses.On("FindByUniqueCode", ctx, "NOPE234567").Return(nil, nil)

		_, err := f.usecase.FindPublicResponseByUniqueCode(ctx, "NOPE234567")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}

func TestResponseUsecase_RecordPublicAnswer(t *testing.T) {
	ctx := context.Background()
	f := newResponseFixture()
	f.config.Scoring.AutoScoreOnSubmit = false
	f.redis.On("Get", ctx, "response:code:ABCDEFGH23").Return(`"r-1"`, nil)
	f.expectLock(testResponseID)
	f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(1, 2)[:1])
	f.expectQuestionnaire(testQuestionnaire())
	f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishResponseEvent", mock.Anything, mock.Anything).Return(nil)

	recorded, err := f.usecase.RecordPublicAnswer(ctx, "ABCDEFGH23", &requests.RecordAnswer{QuestionID: "q-2", Value: json.RawMessage(`2`)})
	require.NoError(t, err)
	assert.Len(t, recorded.Answers, 2)
	assert.Equal(t, "in_progress", recorded.State)
}

func TestResponseUsecase_SubmitPublicResponse(t *testing.T) {
	ctx := context.Background()
	f := newResponseFixture()
	f.redis.On("Get", ctx, "response:code:ABCDEFGH23").Return(`"r-1"`, nil)
	f.expectLock(testResponseID)
	f.expectResponse(testResponse(models.ResponseStateInProgress), testAnswers(3, 3))
	f.expectQuestionnaire(testQuestionnaire())
	f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
	f.expectEvents()
	f.mailer.On("SendEmail", ctx, mock.Anything).Return(nil)

	submitted, err := f.usecase.SubmitPublicResponse(ctx, "ABCDEFGH23")
	require.NoError(t, err)
	assert.Equal(t, "scored", submitted.State)
	assert.NotNil(t, submitted.CompletedAt)
}

func TestResponseUsecase_FindAllResponses(t *testing.T) {
	ctx := context.Background()
	f := newResponseFixture()
	f.responses.On("FindAll", ctx, models.ResponseFilter{
		QuestionnaireID: testQuestionnaireID,
		State:           models.ResponseStateScored,
		Limit:           20,
		Offset:          0,
	}).Return([]models.Response{*testResponse(models.ResponseStateScored), {ID: "r-2", QuestionnaireID: testQuestionnaireID}}, 2, nil)
	f.answers.On("FindByResponseIDs", ctx, []string{testResponseID, "r-2"}).Return(map[string][]models.Answer{
		testResponseID: testAnswers(1, 1),
	}, nil)

	result, total, err := f.usecase.FindAllResponses(ctx, &requests.FindAllResponses{
		QuestionnaireID: testQuestionnaireID,
		State:           "scored",
		Pagination:      requests.Pagination{Page: 1, PageSize: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, result[0].Answers, 2)
	assert.Empty(t, result[1].Answers)
}

func TestResponseUsecase_RescoreCompletedResponses(t *testing.T) {
	ctx := context.Background()

	t.Run("skips locked responses", func(t *testing.T) {
		f := newResponseFixture()
		f.responses.On("FindByState", ctx, models.ResponseStateCompleted, models.ResponseCursor{}, 50).Return([]models.Response{
			*testResponse(models.ResponseStateCompleted),
			{ID: "r-busy", QuestionnaireID: testQuestionnaireID, State: models.ResponseStateCompleted},
		}, nil)
		f.expectLock(testResponseID)
		f.locker.On("TryLock", mock.Anything, "response:lock:r-busy", mock.Anything).Return(false, "", nil)
		f.expectResponse(testResponse(models.ResponseStateCompleted), testAnswers(1, 1))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.Anything, mock.Anything).Return(nil)
		f.expectEvents()

		scored, err := f.usecase.RescoreCompletedResponses(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, 1, scored)
		f.responses.AssertNotCalled(t, "FindByID", mock.Anything, "r-busy")
	})

	t.Run("unscorable responses do not block later pages", func(t *testing.T) {
		f := newResponseFixture()
		stuckAt := testNow.Add(-48 * time.Hour)
		stuck := []models.Response{
			{ID: "r-stuck-1", QuestionnaireID: "qn-unbanded", State: models.ResponseStateCompleted, TimeModel: models.TimeModel{UpdatedAt: stuckAt}},
			{ID: "r-stuck-2", QuestionnaireID: "qn-unbanded", State: models.ResponseStateCompleted, TimeModel: models.TimeModel{UpdatedAt: stuckAt}},
		}
		fresh := *testResponse(models.ResponseStateCompleted)
		fresh.UpdatedAt = testNow.Add(-time.Hour)

		f.responses.On("FindByState", ctx, models.ResponseStateCompleted, models.ResponseCursor{}, 2).Return(stuck, nil).Once()
		f.responses.On("FindByState", ctx, models.ResponseStateCompleted, models.ResponseCursor{UpdatedAt: stuckAt, ID: "r-stuck-2"}, 2).Return([]models.Response{fresh}, nil).Once()

		// a questionnaire without risk levels can never classify a score
		unbanded := &models.Questionnaire{ID: "qn-unbanded", ScoringMethod: models.ScoringMethodSum, ScorePrecision: 2}
		unbandedQuestions := testQuestions()
		for i := range unbandedQuestions {
			unbandedQuestions[i].QuestionnaireID = unbanded.ID
		}
		f.questionnaires.On("FindByID", mock.Anything, unbanded.ID).Return(unbanded, nil)
		f.questions.On("FindByQuestionnaireID", mock.Anything, unbanded.ID).Return(unbandedQuestions, nil)
		for _, response := range stuck {
			response := response
			f.expectLock(response.ID)
			f.responses.On("FindByID", mock.Anything, response.ID).Return(&response, nil)
			f.answers.On("FindByResponseID", mock.Anything, response.ID).Return([]models.Answer{
				{QuestionID: "q-1", Value: models.ChoiceValue(1)},
				{QuestionID: "q-2", Value: models.ChoiceValue(1)},
			}, nil)
		}

		f.expectLock(testResponseID)
		f.expectResponse(testResponse(models.ResponseStateCompleted), testAnswers(1, 1))
		f.expectQuestionnaire(testQuestionnaire())
		f.responses.On("Save", ctx, mock.MatchedBy(func(r *models.Response) bool {
			return r.ID == testResponseID
		}), mock.Anything).Return(nil)
		f.expectEvents()

		scored, err := f.usecase.RescoreCompletedResponses(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, scored)
		f.responses.AssertNumberOfCalls(t, "FindByState", 2)
		f.responses.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("repository failure stops the run", func(t *testing.T) {
		f := newResponseFixture()
		f.responses.On("FindByState", ctx, models.ResponseStateCompleted, models.ResponseCursor{}, 10).Return(nil, exceptions.ErrPostgresDBFindData(errors.New("connection reset")))

		scored, err := f.usecase.RescoreCompletedResponses(ctx, 10)
		require.Error(t, err)
		assert.Zero(t, scored)
	})
}
