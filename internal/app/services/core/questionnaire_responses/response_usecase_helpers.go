package questionnaireResponses

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxUniqueCodeAttempts = 5

// responseAggregate is a response with its answers next to the questionnaire
// it answers, questions included.
type responseAggregate struct {
	response      *models.Response
	questionnaire *models.Questionnaire
}

func (uc *responseUsecase) start(ctx context.Context, requestID, questionnaireID string, respondent requests.Respondent) (*responseAggregate, error) {
	questionnaire, err := uc.findQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	uniqueCode, err := uc.generateUniqueCode(ctx)
	if err != nil {
		uc.Log.Error("responseUsecase.start error generating unique code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := &models.Response{
		ID:              uc.newID(),
		QuestionnaireID: questionnaire.ID,
		Respondent: models.Respondent{
			Name:   respondent.Name,
			Email:  respondent.Email,
			Age:    respondent.Age,
			Gender: respondent.Gender,
		},
		UniqueCode: uniqueCode,
		State:      models.ResponseStateDraft,
		Version:    1,
	}
	response.SetCreatedAtUpdatedAt(uc.now().UTC())

	if err := uc.ResponseRepository.Create(ctx, response); err != nil {
		uc.Log.Error("responseUsecase.start error calling ResponseRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.cacheUniqueCode(ctx, requestID, response)
	uc.invalidateSummary(ctx, requestID, response.QuestionnaireID)

	uc.Log.Info("responseUsecase.start succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
		zap.String(constvars.LoggingQuestionnaireIDKey, response.QuestionnaireID),
	)
	return &responseAggregate{response: response, questionnaire: questionnaire}, nil
}

func (uc *responseUsecase) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxUniqueCodeAttempts; attempt++ {
		code, err := uc.newUniqueCode()
		if err != nil {
			return "", exceptions.ErrGenerateUniqueCode(err)
		}

		existing, err := uc.ResponseRepository.FindByUniqueCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", exceptions.ErrGenerateUniqueCode(fmt.Errorf("no free code after %d attempts", maxUniqueCodeAttempts))
}

func (uc *responseUsecase) cacheUniqueCode(ctx context.Context, requestID string, response *models.Response) {
	key := fmt.Sprintf(constvars.RedisKeyResponseUniqueCode, response.UniqueCode)
	ttl := time.Duration(uc.InternalConfig.Scoring.UniqueCodeCacheTTLInMinutes) * time.Minute
	if err := uc.RedisRepository.Set(ctx, key, response.ID, ttl); err != nil {
		uc.Log.Warn("responseUsecase failed to cache unique code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

// resolveUniqueCode maps a respondent code to a response id, Redis first.
func (uc *responseUsecase) resolveUniqueCode(ctx context.Context, requestID, uniqueCode string) (string, error) {
	key := fmt.Sprintf(constvars.RedisKeyResponseUniqueCode, uniqueCode)

	cached, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("responseUsecase.resolveUniqueCode cache lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	if cached != "" {
		var responseID string
		if err := json.Unmarshal([]byte(cached), &responseID); err == nil && responseID != "" {
			return responseID, nil
		}
	}

	response, err := uc.ResponseRepository.FindByUniqueCode(ctx, uniqueCode)
	if err != nil {
		return "", err
	}
	if response == nil {
		return "", exceptions.ErrResourceNotFoundByCode(constvars.ResourceResponses, uniqueCode)
	}

	uc.cacheUniqueCode(ctx, requestID, response)
	return response.ID, nil
}

func (uc *responseUsecase) findQuestionnaire(ctx context.Context, questionnaireID string) (*models.Questionnaire, error) {
	questionnaire, err := uc.QuestionnaireRepository.FindByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if questionnaire == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceQuestionnaires, questionnaireID)
	}

	questions, err := uc.QuestionRepository.FindByQuestionnaireID(ctx, questionnaire.ID)
	if err != nil {
		return nil, err
	}
	questionnaire.Questions = questions
	return questionnaire, nil
}

func (uc *responseUsecase) findResponse(ctx context.Context, responseID string) (*models.Response, error) {
	response, err := uc.ResponseRepository.FindByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceResponses, responseID)
	}

	answers, err := uc.AnswerRepository.FindByResponseID(ctx, response.ID)
	if err != nil {
		return nil, err
	}
	response.Answers = answers
	return response, nil
}

func (uc *responseUsecase) load(ctx context.Context, responseID string) (*responseAggregate, error) {
	response, err := uc.findResponse(ctx, responseID)
	if err != nil {
		return nil, err
	}

	questionnaire, err := uc.findQuestionnaire(ctx, response.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	return &responseAggregate{response: response, questionnaire: questionnaire}, nil
}

// withLock runs fn while holding the per-response Redis lock. A response
// already locked by another writer fails fast with ErrResponseLocked.
func (uc *responseUsecase) withLock(ctx context.Context, requestID, responseID string, fn func() error) error {
	key := fmt.Sprintf(constvars.RedisKeyResponseLock, responseID)
	ttl := time.Duration(uc.InternalConfig.Scoring.ResponseLockTTLInSeconds) * time.Second

	acquired, token, err := uc.LockerService.TryLock(ctx, key, ttl)
	if err != nil {
		return err
	}
	if !acquired {
		uc.Log.Info("responseUsecase response is locked by another writer",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseIDKey, responseID),
		)
		return exceptions.ErrResponseLocked(responseID)
	}
	defer func() {
		if err := uc.LockerService.Unlock(ctx, key, token); err != nil {
			uc.Log.Warn("responseUsecase failed to release response lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}()

	return fn()
}

func (uc *responseUsecase) save(ctx context.Context, requestID string, response *models.Response, answers ...models.Answer) error {
	if err := uc.ResponseRepository.Save(ctx, response, answers...); err != nil {
		uc.Log.Error("responseUsecase error calling ResponseRepository.Save",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseIDKey, response.ID),
			zap.Int(constvars.LoggingVersionKey, response.Version),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("responseUsecase response saved",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
		zap.String(constvars.LoggingResponseStateKey, string(response.State)),
		zap.Int(constvars.LoggingVersionKey, response.Version),
	)
	uc.invalidateSummary(ctx, requestID, response.QuestionnaireID)
	return nil
}

func (uc *responseUsecase) recordAnswer(ctx context.Context, requestID string, request *requests.RecordAnswer) (*responseAggregate, error) {
	utils.SanitizeRecordAnswerRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	var result *responseAggregate
	err := uc.withLock(ctx, requestID, request.ResponseID, func() error {
		aggregate, err := uc.load(ctx, request.ResponseID)
		if err != nil {
			return err
		}

		question, ok := findQuestion(aggregate.questionnaire.Questions, request.QuestionID)
		if !ok {
			return exceptions.ErrQuestionNotInQuestionnaire(request.QuestionID, aggregate.questionnaire.ID)
		}

		updated, err := uc.Lifecycle.RecordAnswer(aggregate.response, question, request.Value)
		if err != nil {
			return err
		}
		answer, _ := updated.AnswerFor(question.ID)
		if err := uc.save(ctx, requestID, updated, *answer); err != nil {
			return err
		}

		result = &responseAggregate{response: updated, questionnaire: aggregate.questionnaire}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// submit completes the response and, with auto scoring enabled, scores it
// under the same lock. A scoring failure leaves the response completed.
func (uc *responseUsecase) submit(ctx context.Context, requestID, responseID string) (*responseAggregate, error) {
	var result *responseAggregate
	err := uc.withLock(ctx, requestID, responseID, func() error {
		aggregate, err := uc.load(ctx, responseID)
		if err != nil {
			return err
		}

		completed, err := uc.Lifecycle.Submit(aggregate.response, aggregate.questionnaire.Questions)
		if err != nil {
			return err
		}
		if err := uc.save(ctx, requestID, completed); err != nil {
			return err
		}
		uc.publishEvent(ctx, requestID, constvars.EventResponseSubmitted, completed)

		result = &responseAggregate{response: completed, questionnaire: aggregate.questionnaire}
		if !uc.InternalConfig.Scoring.AutoScoreOnSubmit {
			return nil
		}

		scored, err := uc.score(ctx, requestID, result)
		if err != nil {
			uc.Log.Warn("responseUsecase.submit automatic scoring failed, response stays completed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingResponseIDKey, responseID),
				zap.Error(err),
			)
			return nil
		}
		result.response = scored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// score must be called with the response lock held.
func (uc *responseUsecase) score(ctx context.Context, requestID string, aggregate *responseAggregate) (*models.Response, error) {
	previous := aggregate.response
	scored, err := uc.Lifecycle.Score(previous, *aggregate.questionnaire, aggregate.questionnaire.Questions, previous.Answers)
	if err != nil {
		return nil, err
	}
	if err := uc.save(ctx, requestID, scored); err != nil {
		return nil, err
	}

	uc.Log.Info("responseUsecase response scored",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, scored.ID),
		zap.Float64(constvars.LoggingScoreKey, *scored.Score),
		zap.String(constvars.LoggingRiskLevelKey, *scored.RiskLevel),
	)

	uc.publishEvent(ctx, requestID, constvars.EventResponseScored, scored)
	uc.requestAnalysis(ctx, requestID, scored)
	if !previous.FlaggedForReview && scored.FlaggedForReview {
		uc.publishEvent(ctx, requestID, constvars.EventResponseFlagged, scored)
		uc.notifyReviewers(ctx, requestID, scored, aggregate.questionnaire)
	}
	return scored, nil
}

func (uc *responseUsecase) publishEvent(ctx context.Context, requestID, eventType string, response *models.Response) {
	event := models.ResponseEvent{
		ID:               uc.newID(),
		Type:             eventType,
		ResponseID:       response.ID,
		QuestionnaireID:  response.QuestionnaireID,
		State:            response.State,
		Score:            response.Score,
		RiskLevel:        response.RiskLevel,
		FlaggedForReview: response.FlaggedForReview,
		OccurredAt:       uc.now().UTC(),
	}
	if err := uc.EventPublisher.PublishResponseEvent(ctx, event); err != nil {
		uc.Log.Error("responseUsecase failed to publish response event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.String(constvars.LoggingResponseIDKey, response.ID),
			zap.Error(err),
		)
		return
	}
	utils.LogBusinessEvent(uc.Log, eventType, requestID,
		zap.String(constvars.LoggingResponseIDKey, response.ID),
	)
}

func (uc *responseUsecase) requestAnalysis(ctx context.Context, requestID string, response *models.Response) {
	request := models.AnalysisRequest{
		ResponseID:      response.ID,
		QuestionnaireID: response.QuestionnaireID,
		Score:           *response.Score,
		RiskLevel:       *response.RiskLevel,
		RequestedAt:     uc.now().UTC(),
	}
	if err := uc.EventPublisher.PublishAnalysisRequest(ctx, request); err != nil {
		uc.Log.Error("responseUsecase failed to publish analysis request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseIDKey, response.ID),
			zap.Error(err),
		)
	}
}

func (uc *responseUsecase) notifyReviewers(ctx context.Context, requestID string, response *models.Response, questionnaire *models.Questionnaire) {
	if len(uc.InternalConfig.Mailer.ReviewerEmails) == 0 {
		return
	}

	payload := &requests.EmailPayload{
		Subject: constvars.EmailReviewerFlaggedSubject,
		From:    uc.InternalConfig.Mailer.EmailSender,
		To:      uc.InternalConfig.Mailer.ReviewerEmails,
		HTMLCode: fmt.Sprintf(constvars.EmailReviewerFlaggedBody,
			response.ID,
			questionnaire.Title,
			*response.RiskLevel,
			strconv.FormatFloat(*response.Score, 'f', -1, 64),
		),
	}
	if err := uc.MailerService.SendEmail(ctx, payload); err != nil {
		uc.Log.Error("responseUsecase failed to enqueue reviewer email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseIDKey, response.ID),
			zap.Error(err),
		)
	}
}

func (uc *responseUsecase) invalidateSummary(ctx context.Context, requestID, questionnaireID string) {
	key := fmt.Sprintf(constvars.RedisKeyQuestionnaireSummary, questionnaireID)
	if err := uc.RedisRepository.Delete(ctx, key); err != nil {
		uc.Log.Warn("responseUsecase failed to invalidate questionnaire summary",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

func findQuestion(questions []models.Question, questionID string) (models.Question, bool) {
	for _, question := range questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return models.Question{}, false
}
