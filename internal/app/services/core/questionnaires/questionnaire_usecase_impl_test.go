package questionnaires

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts/mocks"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/app/services/core/presets"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

type usecaseFixture struct {
	questionnaires *mocks.QuestionnaireRepository
	questions      *mocks.QuestionRepository
	responses      *mocks.ResponseRepository
	usecase        *questionnaireUsecase
}

func newFixture() *usecaseFixture {
	f := &usecaseFixture{
		questionnaires: new(mocks.QuestionnaireRepository),
		questions:      new(mocks.QuestionRepository),
		responses:      new(mocks.ResponseRepository),
	}
	internalConfig := &config.InternalConfig{
		App: config.App{PublicBaseUrl: "https://screen.example.org/"},
		JWT: config.AppJWT{Secret: "distribution-secret", DistributionLinkExpTimeInHour: 48},
	}
	f.usecase = NewQuestionnaireUsecase(f.questionnaires, f.questions, f.responses, internalConfig, zap.NewNop()).(*questionnaireUsecase)
	f.usecase.now = func() time.Time { return fixedNow }

	sequence := 0
	f.usecase.newID = func() string {
		sequence++
		return fmt.Sprintf("id-%d", sequence)
	}
	return f
}

func float(value float64) *float64 {
	return &value
}

func validRequest() *requests.UpsertQuestionnaire {
	options := []requests.QuestionOption{
		{Value: float(0), Label: " Never "},
		{Value: float(1), Label: "Sometimes"},
		{Value: float(2), Label: "Often"},
	}
	return &requests.UpsertQuestionnaire{
		Title:         "  Sleep check ",
		Type:          "Screening",
		ScoringMethod: "sum",
		RiskLevels: []requests.RiskLevel{
			{Label: "low", MinScore: float(0)},
			{Label: "high", MinScore: float(3)},
		},
		FlagRiskLevel: "high",
		Questions: []requests.CreateQuestion{
			{Text: "Trouble falling asleep", Type: "single_choice", Required: true, Options: options},
			{Text: "Waking up at night", Type: "single_choice", Required: true, Options: options},
			{Text: "Anything else?", Type: "text"},
		},
	}
}

func TestQuestionnaireUsecase_CreateQuestionnaire(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and stores questions", func(t *testing.T) {
		f := newFixture()
		var stored []models.Question
		f.questionnaires.On("Create", ctx, mock.AnythingOfType("*models.Questionnaire"), mock.AnythingOfType("[]models.Question")).
			Run(func(args mock.Arguments) {
				stored = args.Get(2).([]models.Question)
			}).
			Return(nil)

		result, err := f.usecase.CreateQuestionnaire(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, "id-1", result.ID)
		assert.Equal(t, "Sleep check", result.Title)
		assert.Equal(t, "screening", result.Type)
		assert.Equal(t, models.DefaultScorePrecision, result.ScorePrecision)
		assert.Equal(t, fixedNow, result.CreatedAt)

		require.Len(t, stored, 3)
		for i, question := range stored {
			assert.Equal(t, "id-1", question.QuestionnaireID)
			assert.Equal(t, i+1, question.OrderNum)
		}
		assert.Equal(t, 1.0, stored[0].ScoringWeight)
		assert.Equal(t, 0.0, stored[2].ScoringWeight, "text questions default to weight zero")
		assert.Equal(t, "Never", stored[0].Options[0].Label)
	})

	t.Run("rejects descending thresholds before writing", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.RiskLevels = []requests.RiskLevel{
			{Label: "high", MinScore: float(3)},
			{Label: "low", MinScore: float(0)},
		}

		_, err := f.usecase.CreateQuestionnaire(ctx, request)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeThresholdsNotAscending))
		f.questionnaires.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a flag level that is not a risk level", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.FlagRiskLevel = "critical"

		_, err := f.usecase.CreateQuestionnaire(ctx, request)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidQuestionnaire))
	})

	t.Run("rejects a choice question without options", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.Questions[1].Options = nil

		_, err := f.usecase.CreateQuestionnaire(ctx, request)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidQuestionnaire))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.ScoringMethod = "median"

		_, err := f.usecase.CreateQuestionnaire(ctx, request)
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.questionnaires.On("Create", ctx, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := f.usecase.CreateQuestionnaire(ctx, validRequest())
		assert.EqualError(t, err, "connection reset")
	})
}

func TestQuestionnaireUsecase_UpdateQuestionnaire(t *testing.T) {
	ctx := context.Background()
	existing := &models.Questionnaire{ID: "q-1", TimeModel: models.TimeModel{CreatedAt: fixedNow.Add(-time.Hour)}}

	t.Run("replaces the definition", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.QuestionnaireID = "q-1"
		f.questionnaires.On("FindByID", ctx, "q-1").Return(existing, nil)
		f.responses.On("CountByQuestionnaireID", ctx, "q-1").Return(0, nil)
		f.questionnaires.On("Update", ctx, mock.MatchedBy(func(q *models.Questionnaire) bool {
			return q.ID == "q-1" && q.CreatedAt.Equal(existing.CreatedAt) && q.UpdatedAt.Equal(fixedNow)
		}), mock.Anything).Return(nil)

		result, err := f.usecase.UpdateQuestionnaire(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, "q-1", result.ID)
		assert.Len(t, result.Questions, 3)
	})

	t.Run("refused once responses exist", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.QuestionnaireID = "q-1"
		f.questionnaires.On("FindByID", ctx, "q-1").Return(existing, nil)
		f.responses.On("CountByQuestionnaireID", ctx, "q-1").Return(4, nil)

		_, err := f.usecase.UpdateQuestionnaire(ctx, request)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeQuestionnaireHasResponses))
		f.questionnaires.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown questionnaire", func(t *testing.T) {
		f := newFixture()
		request := validRequest()
		request.QuestionnaireID = "missing"
		f.questionnaires.On("FindByID", ctx, "missing").Return(nil, nil)

		_, err := f.usecase.UpdateQuestionnaire(ctx, request)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}

func TestQuestionnaireUsecase_FindQuestionnaireByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.questionnaires.On("FindByID", ctx, "q-1").Return(&models.Questionnaire{ID: "q-1", Title: "Mood"}, nil)
	f.questions.On("FindByQuestionnaireID", ctx, "q-1").Return([]models.Question{
		{ID: "qq-1", QuestionnaireID: "q-1", OrderNum: 1, Type: models.QuestionTypeYesNo},
	}, nil)

	result, err := f.usecase.FindQuestionnaireByID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, "Mood", result.Title)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "yes_no", result.Questions[0].Type)
}

func TestQuestionnaireUsecase_FindAllQuestionnaires(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.questionnaires.On("FindAll", ctx, models.QuestionnaireFilter{
		Type:   models.QuestionnaireTypeSurvey,
		Limit:  10,
		Offset: 10,
	}).Return([]models.Questionnaire{{ID: "q-1"}, {ID: "q-2"}}, 12, nil)

	result, total, err := f.usecase.FindAllQuestionnaires(ctx, &requests.FindAllQuestionnaires{
		Type:       "survey",
		Pagination: requests.Pagination{Page: 2, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, result, 2)
}

func TestQuestionnaireUsecase_DeleteQuestionnaireByID(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an unused questionnaire", func(t *testing.T) {
		f := newFixture()
		f.questionnaires.On("FindByID", ctx, "q-1").Return(&models.Questionnaire{ID: "q-1"}, nil)
		f.responses.On("CountByQuestionnaireID", ctx, "q-1").Return(0, nil)
		f.questionnaires.On("Delete", ctx, "q-1").Return(nil)

		require.NoError(t, f.usecase.DeleteQuestionnaireByID(ctx, "q-1"))
		f.questionnaires.AssertExpectations(t)
	})

	t.Run("refused once responses exist", func(t *testing.T) {
		f := newFixture()
		f.questionnaires.On("FindByID", ctx, "q-1").Return(&models.Questionnaire{ID: "q-1"}, nil)
		f.responses.On("CountByQuestionnaireID", ctx, "q-1").Return(1, nil)

		err := f.usecase.DeleteQuestionnaireByID(ctx, "q-1")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeQuestionnaireHasResponses))
		f.questionnaires.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestQuestionnaireUsecase_Presets(t *testing.T) {
	ctx := context.Background()

	t.Run("lists registered presets", func(t *testing.T) {
		result := newFixture().usecase.FindAllPresets(ctx)
		require.Len(t, result, 2)
		assert.Equal(t, presets.KeyGAD7, result[0].Key)
		assert.Equal(t, 7, result[0].QuestionCount)
		assert.Equal(t, presets.KeyPHQ9, result[1].Key)
		assert.Equal(t, 27.0, result[1].MaxScore)
	})

	t.Run("creates PHQ-9", func(t *testing.T) {
		f := newFixture()
		f.questionnaires.On("Create", ctx, mock.MatchedBy(func(q *models.Questionnaire) bool {
			return q.OrganizationID == "org-7" && q.FlagRiskLevel == "moderately severe"
		}), mock.Anything).Return(nil)

		result, err := f.usecase.CreateQuestionnaireFromPreset(ctx, &requests.CreateQuestionnaireFromPreset{
			PresetKey:      presets.KeyPHQ9,
			OrganizationID: "org-7",
		})
		require.NoError(t, err)
		assert.Len(t, result.Questions, 10)
		assert.Equal(t, 0.0, result.Questions[9].ScoringWeight)
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := newFixture().usecase.CreateQuestionnaireFromPreset(ctx, &requests.CreateQuestionnaireFromPreset{PresetKey: "bdi-2"})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}

func TestQuestionnaireUsecase_CreateDistributionLink(t *testing.T) {
	ctx := context.Background()

	t.Run("signs a token for the questionnaire", func(t *testing.T) {
		f := newFixture()
		f.usecase.now = time.Now
		f.questionnaires.On("FindByID", ctx, "q-1").Return(&models.Questionnaire{ID: "q-1"}, nil)

		link, err := f.usecase.CreateDistributionLink(ctx, &requests.CreateDistributionLink{QuestionnaireID: "q-1"})
		require.NoError(t, err)
		assert.Equal(t, "https://screen.example.org/r/"+link.Token, link.URL)
		assert.WithinDuration(t, time.Now().Add(48*time.Hour), link.ExpiresAt, time.Minute)

		questionnaireID, err := utils.ParseDistributionJWT(link.Token, "distribution-secret")
		require.NoError(t, err)
		assert.Equal(t, "q-1", questionnaireID)
	})

	t.Run("honours a requested expiry", func(t *testing.T) {
		f := newFixture()
		f.usecase.now = time.Now
		f.questionnaires.On("FindByID", ctx, "q-1").Return(&models.Questionnaire{ID: "q-1"}, nil)

		link, err := f.usecase.CreateDistributionLink(ctx, &requests.CreateDistributionLink{QuestionnaireID: "q-1", ExpiresInHours: 2})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(2*time.Hour), link.ExpiresAt, time.Minute)
	})

	t.Run("unknown questionnaire", func(t *testing.T) {
		f := newFixture()
		f.questionnaires.On("FindByID", ctx, "missing").Return(nil, nil)

		_, err := f.usecase.CreateDistributionLink(ctx, &requests.CreateDistributionLink{QuestionnaireID: "missing"})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}
