package seeding

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/app/services/core/lifecycle"
	"mindscreen-service/internal/app/services/core/presets"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// optionalAnswerRate is the share of optional questions a mock respondent answers.
const optionalAnswerRate = 0.7

// Seeder installs the built-in presets and fills them with mock responses
// that go through the same state machine and scoring as real ones.
type Seeder struct {
	QuestionnaireUsecase    contracts.QuestionnaireUsecase
	QuestionnaireRepository contracts.QuestionnaireRepository
	QuestionRepository      contracts.QuestionRepository
	ResponseRepository      contracts.ResponseRepository
	Lifecycle               *lifecycle.Controller
	Log                     *logrus.Logger
	random                  *rand.Rand
	now                     func() time.Time
	newID                   func() string
	newUniqueCode           func() (string, error)
}

type Result struct {
	PresetKey       string
	QuestionnaireID string
	Responses       int
	Scored          int
	Flagged         int
}

func NewSeeder(
	questionnaireUsecase contracts.QuestionnaireUsecase,
	questionnaireRepository contracts.QuestionnaireRepository,
	questionRepository contracts.QuestionRepository,
	responseRepository contracts.ResponseRepository,
	log *logrus.Logger,
	seed int64,
) *Seeder {
	return &Seeder{
		QuestionnaireUsecase:    questionnaireUsecase,
		QuestionnaireRepository: questionnaireRepository,
		QuestionRepository:      questionRepository,
		ResponseRepository:      responseRepository,
		Lifecycle:               lifecycle.NewController(),
		Log:                     log,
		random:                  rand.New(rand.NewSource(seed)),
		now:                     time.Now,
		newID:                   uuid.NewString,
		newUniqueCode:           utils.GenerateUniqueCode,
	}
}

// Seed creates one questionnaire per preset and responsesPerQuestionnaire
// mock responses for each.
func (s *Seeder) Seed(ctx context.Context, organizationID string, responsesPerQuestionnaire int) ([]Result, error) {
	var results []Result
	for _, preset := range presets.All() {
		created, err := s.QuestionnaireUsecase.CreateQuestionnaireFromPreset(ctx, &requests.CreateQuestionnaireFromPreset{
			PresetKey:      preset.Key,
			OrganizationID: organizationID,
		})
		if err != nil {
			return results, fmt.Errorf("seeding preset %s: %w", preset.Key, err)
		}
		s.Log.WithFields(logrus.Fields{
			"preset_key":       preset.Key,
			"questionnaire_id": created.ID,
		}).Info("Seeded questionnaire preset")

		result := Result{PresetKey: preset.Key, QuestionnaireID: created.ID}
		if responsesPerQuestionnaire > 0 {
			if err := s.seedResponses(ctx, created.ID, responsesPerQuestionnaire, &result); err != nil {
				return append(results, result), err
			}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Seeder) seedResponses(ctx context.Context, questionnaireID string, count int, result *Result) error {
	questionnaire, err := s.QuestionnaireRepository.FindByID(ctx, questionnaireID)
	if err != nil {
		return err
	}
	if questionnaire == nil {
		return exceptions.ErrResourceNotFound(constvars.ResourceQuestionnaires, questionnaireID)
	}
	questions, err := s.QuestionRepository.FindByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return err
	}

	for i := 0; i < count; i++ {
		response, err := s.seedResponse(ctx, questionnaire, questions, i)
		if err != nil {
			return fmt.Errorf("seeding response %d of questionnaire %s: %w", i+1, questionnaireID, err)
		}
		result.Responses++
		if response.State == models.ResponseStateScored {
			result.Scored++
		}
		if response.FlaggedForReview {
			result.Flagged++
		}
	}

	s.Log.WithFields(logrus.Fields{
		"questionnaire_id": questionnaireID,
		"responses":        result.Responses,
		"scored":           result.Scored,
		"flagged":          result.Flagged,
	}).Info("Seeded mock responses")
	return nil
}

func (s *Seeder) seedResponse(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question, index int) (*models.Response, error) {
	uniqueCode, err := s.newUniqueCode()
	if err != nil {
		return nil, exceptions.ErrGenerateUniqueCode(err)
	}

	age := 18 + s.random.Intn(60)
	response := &models.Response{
		ID:              s.newID(),
		QuestionnaireID: questionnaire.ID,
		Respondent: models.Respondent{
			Name: fmt.Sprintf("Mock respondent %d", index+1),
			Age:  &age,
		},
		UniqueCode: uniqueCode,
		State:      models.ResponseStateDraft,
		Version:    1,
	}
	response.SetCreatedAtUpdatedAt(s.now().UTC())

	if err := s.ResponseRepository.Create(ctx, response); err != nil {
		return nil, err
	}

	current := response
	for _, question := range questions {
		raw, ok := s.randomAnswer(question)
		if !ok {
			continue
		}
		current, err = s.Lifecycle.RecordAnswer(current, question, raw)
		if err != nil {
			return nil, err
		}
	}

	submitted, err := s.Lifecycle.Submit(current, questions)
	if err != nil {
		return nil, err
	}

	final := submitted
	scored, err := s.Lifecycle.Score(submitted, *questionnaire, questions, submitted.Answers)
	if err != nil {
		// left completed for the rescoring worker
		s.Log.WithError(err).WithField("response_id", response.ID).Warn("Mock response could not be scored")
	} else {
		final = scored
	}

	if err := s.ResponseRepository.Save(ctx, final, final.Answers...); err != nil {
		return nil, err
	}
	return final, nil
}

// randomAnswer returns a raw JSON answer for question. Optional questions are
// sometimes skipped.
func (s *Seeder) randomAnswer(question models.Question) ([]byte, bool) {
	if !question.Required && s.random.Float64() >= optionalAnswerRate {
		return nil, false
	}

	switch question.Type {
	case models.QuestionTypeSingleChoice, models.QuestionTypeRating, models.QuestionTypeScale:
		if len(question.Options) == 0 {
			return nil, false
		}
		return []byte(formatNumber(s.pickOption(question))), true
	case models.QuestionTypeMultipleChoice:
		if len(question.Options) == 0 {
			return nil, false
		}
		return []byte("[" + formatNumber(s.pickOption(question)) + "]"), true
	case models.QuestionTypeYesNo:
		return []byte(strconv.FormatBool(s.random.Intn(2) == 1)), true
	case models.QuestionTypeText:
		return []byte(`"mock answer"`), true
	case models.QuestionTypeDate:
		return []byte(strconv.Quote(s.now().UTC().Format(models.AnswerDateLayout))), true
	}
	return nil, false
}

func (s *Seeder) pickOption(question models.Question) float64 {
	return question.Options[s.random.Intn(len(question.Options))].Value
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
