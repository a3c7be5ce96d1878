package questionnaireResponses

import (
	"context"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/app/services/core/lifecycle"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/dto/responses"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type responseUsecase struct {
	QuestionnaireRepository contracts.QuestionnaireRepository
	QuestionRepository      contracts.QuestionRepository
	ResponseRepository      contracts.ResponseRepository
	AnswerRepository        contracts.AnswerRepository
	RedisRepository         contracts.RedisRepository
	LockerService           contracts.LockerService
	EventPublisher          contracts.EventPublisher
	MailerService           contracts.MailerService
	Lifecycle               *lifecycle.Controller
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
	now                     func() time.Time
	newID                   func() string
	newUniqueCode           func() (string, error)
}

func NewResponseUsecase(
	questionnaireRepository contracts.QuestionnaireRepository,
	questionRepository contracts.QuestionRepository,
	responseRepository contracts.ResponseRepository,
	answerRepository contracts.AnswerRepository,
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	mailerService contracts.MailerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ResponseUsecase {
	return &responseUsecase{
		QuestionnaireRepository: questionnaireRepository,
		QuestionRepository:      questionRepository,
		ResponseRepository:      responseRepository,
		AnswerRepository:        answerRepository,
		RedisRepository:         redisRepository,
		LockerService:           lockerService,
		EventPublisher:          eventPublisher,
		MailerService:           mailerService,
		Lifecycle:               lifecycle.NewController(),
		InternalConfig:          internalConfig,
		Log:                     logger,
		now:                     time.Now,
		newID:                   uuid.NewString,
		newUniqueCode:           utils.GenerateUniqueCode,
	}
}

func (uc *responseUsecase) StartResponse(ctx context.Context, request *requests.StartResponse) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.StartResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, request.QuestionnaireID),
	)

	utils.SanitizeRespondent(&request.Respondent)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	aggregate, err := uc.start(ctx, requestID, request.QuestionnaireID, request.Respondent)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoResponse()
	return &result, nil
}

// StartPublicResponse opens a response for an anonymous respondent holding a
// distribution token.
func (uc *responseUsecase) StartPublicResponse(ctx context.Context, request *requests.StartPublicResponse) (*responses.PublicResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.StartPublicResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	utils.SanitizeRespondent(&request.Respondent)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	questionnaireID, err := utils.ParseDistributionJWT(request.Token, uc.InternalConfig.JWT.Secret)
	if err != nil {
		uc.Log.Info("responseUsecase.StartPublicResponse rejected distribution token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInvalidDistributionLink(err)
	}

	aggregate, err := uc.start(ctx, requestID, questionnaireID, request.Respondent)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoPublicResponse(*aggregate.questionnaire)
	return &result, nil
}

func (uc *responseUsecase) FindPublicResponseByUniqueCode(ctx context.Context, uniqueCode string) (*responses.PublicResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.FindPublicResponseByUniqueCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUniqueCodeKey, uniqueCode),
	)

	responseID, err := uc.resolveUniqueCode(ctx, requestID, uniqueCode)
	if err != nil {
		return nil, err
	}

	aggregate, err := uc.load(ctx, responseID)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoPublicResponse(*aggregate.questionnaire)
	return &result, nil
}

func (uc *responseUsecase) RecordPublicAnswer(ctx context.Context, uniqueCode string, request *requests.RecordAnswer) (*responses.PublicResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.RecordPublicAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUniqueCodeKey, uniqueCode),
	)

	responseID, err := uc.resolveUniqueCode(ctx, requestID, uniqueCode)
	if err != nil {
		return nil, err
	}
	request.ResponseID = responseID

	aggregate, err := uc.recordAnswer(ctx, requestID, request)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoPublicResponse(*aggregate.questionnaire)
	return &result, nil
}

func (uc *responseUsecase) SubmitPublicResponse(ctx context.Context, uniqueCode string) (*responses.PublicResponse, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.SubmitPublicResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUniqueCodeKey, uniqueCode),
	)

	responseID, err := uc.resolveUniqueCode(ctx, requestID, uniqueCode)
	if err != nil {
		return nil, err
	}

	aggregate, err := uc.submit(ctx, requestID, responseID)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoPublicResponse(*aggregate.questionnaire)
	return &result, nil
}

func (uc *responseUsecase) RecordAnswer(ctx context.Context, request *requests.RecordAnswer) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.RecordAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, request.ResponseID),
	)

	aggregate, err := uc.recordAnswer(ctx, requestID, request)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoResponse()
	return &result, nil
}

func (uc *responseUsecase) SubmitResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.SubmitResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	aggregate, err := uc.submit(ctx, requestID, responseID)
	if err != nil {
		return nil, err
	}

	result := aggregate.response.ConvertIntoResponse()
	return &result, nil
}

func (uc *responseUsecase) ScoreResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.ScoreResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	var scored *models.Response
	err := uc.withLock(ctx, requestID, responseID, func() error {
		aggregate, err := uc.load(ctx, responseID)
		if err != nil {
			return err
		}
		scored, err = uc.score(ctx, requestID, aggregate)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := scored.ConvertIntoResponse()
	return &result, nil
}

func (uc *responseUsecase) SetFlag(ctx context.Context, request *requests.SetFlag) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.SetFlag called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, request.ResponseID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	var updated *models.Response
	err := uc.withLock(ctx, requestID, request.ResponseID, func() error {
		aggregate, err := uc.load(ctx, request.ResponseID)
		if err != nil {
			return err
		}

		updated, err = uc.Lifecycle.SetFlag(aggregate.response, *request.Flagged)
		if err != nil {
			return err
		}
		if err := uc.save(ctx, requestID, updated); err != nil {
			return err
		}

		if aggregate.response.FlaggedForReview != updated.FlaggedForReview {
			uc.publishEvent(ctx, requestID, constvars.EventResponseFlagged, updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("responseUsecase.SetFlag succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, updated.ID),
		zap.Bool(constvars.LoggingFlaggedKey, updated.FlaggedForReview),
	)
	result := updated.ConvertIntoResponse()
	return &result, nil
}

func (uc *responseUsecase) ReopenResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.ReopenResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	var reopened *models.Response
	err := uc.withLock(ctx, requestID, responseID, func() error {
		aggregate, err := uc.load(ctx, responseID)
		if err != nil {
			return err
		}

		reopened, err = uc.Lifecycle.Reopen(aggregate.response)
		if err != nil {
			return err
		}
		if err := uc.save(ctx, requestID, reopened); err != nil {
			return err
		}

		uc.publishEvent(ctx, requestID, constvars.EventResponseReopened, reopened)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := reopened.ConvertIntoResponse()
	return &result, nil
}

func (uc *responseUsecase) FindResponseByID(ctx context.Context, responseID string) (*responses.Response, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.FindResponseByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	response, err := uc.findResponse(ctx, responseID)
	if err != nil {
		return nil, err
	}

	result := response.ConvertIntoResponse()
	return &result, nil
}

func (uc *responseUsecase) FindAllResponses(ctx context.Context, request *requests.FindAllResponses) ([]responses.Response, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.FindAllResponses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, request),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, 0, exceptions.ErrInputValidation(err)
	}

	found, total, err := uc.ResponseRepository.FindAll(ctx, models.ResponseFilter{
		QuestionnaireID: request.QuestionnaireID,
		State:           models.ResponseState(request.State),
		Flagged:         request.Flagged,
		Limit:           request.PageSize,
		Offset:          request.Offset(),
	})
	if err != nil {
		return nil, 0, err
	}

	responseIDs := make([]string, len(found))
	for i, response := range found {
		responseIDs[i] = response.ID
	}
	answers, err := uc.AnswerRepository.FindByResponseIDs(ctx, responseIDs)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Response, len(found))
	for i, response := range found {
		response.Answers = answers[response.ID]
		result[i] = response.ConvertIntoResponse()
	}

	uc.Log.Info("responseUsecase.FindAllResponses succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(result)),
	)
	return result, total, nil
}

// RescoreCompletedResponses retries scoring for up to limit responses stuck in
// completed. Failures are logged and left for the next run.
// RescoreCompletedResponses walks every completed response in pages of
// pageSize. A response that fails to score is logged and left behind the
// cursor so the rest of the set is still reached.
func (uc *responseUsecase) RescoreCompletedResponses(ctx context.Context, pageSize int) (int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("responseUsecase.RescoreCompletedResponses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if pageSize <= 0 {
		pageSize = constvars.DefaultRescoreBatchSize
	}

	scored, failed := 0, 0
	var cursor models.ResponseCursor
	for {
		page, err := uc.ResponseRepository.FindByState(ctx, models.ResponseStateCompleted, cursor, pageSize)
		if err != nil {
			return scored, err
		}

		for _, candidate := range page {
			if ctx.Err() != nil {
				return scored, ctx.Err()
			}
			if uc.rescore(ctx, requestID, candidate.ID) {
				scored++
			} else {
				failed++
			}
		}

		if len(page) < pageSize {
			break
		}
		last := page[len(page)-1]
		cursor = models.ResponseCursor{UpdatedAt: last.UpdatedAt, ID: last.ID}
	}

	uc.Log.Info("responseUsecase.RescoreCompletedResponses succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, scored),
		zap.Int(constvars.LoggingFailedCountKey, failed),
	)
	return scored, nil
}

func (uc *responseUsecase) rescore(ctx context.Context, requestID, responseID string) bool {
	scored := false
	err := uc.withLock(ctx, requestID, responseID, func() error {
		aggregate, err := uc.load(ctx, responseID)
		if err != nil {
			return err
		}
		if aggregate.response.State != models.ResponseStateCompleted {
			return nil
		}
		if _, err := uc.score(ctx, requestID, aggregate); err != nil {
			return err
		}
		scored = true
		return nil
	})
	if err != nil {
		uc.Log.Warn("responseUsecase.RescoreCompletedResponses could not score response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseIDKey, responseID),
			zap.Error(err),
		)
	}
	return scored
}
