package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/responses"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type reportUsecase struct {
	QuestionnaireRepository contracts.QuestionnaireRepository
	QuestionRepository      contracts.QuestionRepository
	ResponseRepository      contracts.ResponseRepository
	AnswerRepository        contracts.AnswerRepository
	RedisRepository         contracts.RedisRepository
	Storage                 contracts.Storage
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
	now                     func() time.Time
}

func NewReportUsecase(
	questionnaireRepository contracts.QuestionnaireRepository,
	questionRepository contracts.QuestionRepository,
	responseRepository contracts.ResponseRepository,
	answerRepository contracts.AnswerRepository,
	redisRepository contracts.RedisRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReportUsecase {
	return &reportUsecase{
		QuestionnaireRepository: questionnaireRepository,
		QuestionRepository:      questionRepository,
		ResponseRepository:      responseRepository,
		AnswerRepository:        answerRepository,
		RedisRepository:         redisRepository,
		Storage:                 storage,
		InternalConfig:          internalConfig,
		Log:                     logger,
		now:                     time.Now,
	}
}

// GetQuestionnaireSummary serves from Redis while the cached copy is fresh.
// Response writes drop the cached copy.
func (uc *reportUsecase) GetQuestionnaireSummary(ctx context.Context, questionnaireID string) (*responses.QuestionnaireSummary, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reportUsecase.GetQuestionnaireSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	key := fmt.Sprintf(constvars.RedisKeyQuestionnaireSummary, questionnaireID)
	cached, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("reportUsecase.GetQuestionnaireSummary cache lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	if cached != "" {
		summary := new(responses.QuestionnaireSummary)
		if err := json.Unmarshal([]byte(cached), summary); err == nil {
			uc.Log.Info("reportUsecase.GetQuestionnaireSummary served from cache",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
			)
			return summary, nil
		}
	}

	questionnaire, err := uc.findQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	all, err := uc.ResponseRepository.FindByQuestionnaireID(ctx, questionnaire.ID)
	if err != nil {
		return nil, err
	}

	result := summarize(*questionnaire, all, uc.now().UTC()).ConvertIntoResponse()

	ttl := time.Duration(uc.InternalConfig.Cache.AnalyticsCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, key, result, ttl); err != nil {
		uc.Log.Warn("reportUsecase.GetQuestionnaireSummary failed to cache summary",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}

	uc.Log.Info("reportUsecase.GetQuestionnaireSummary succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, result.TotalResponses),
	)
	return &result, nil
}

func (uc *reportUsecase) ExportResponses(ctx context.Context, questionnaireID string) (*responses.ResponseExport, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("reportUsecase.ExportResponses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	questionnaire, err := uc.findQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.QuestionRepository.FindByQuestionnaireID(ctx, questionnaire.ID)
	if err != nil {
		return nil, err
	}

	all, err := uc.ResponseRepository.FindByQuestionnaireID(ctx, questionnaire.ID)
	if err != nil {
		return nil, err
	}

	responseIDs := make([]string, len(all))
	for i, response := range all {
		responseIDs[i] = response.ID
	}
	answers, err := uc.AnswerRepository.FindByResponseIDs(ctx, responseIDs)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	if err := writeResponsesCSV(&buffer, questions, all, answers); err != nil {
		uc.Log.Error("reportUsecase.ExportResponses error writing CSV",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCSVWrite(err)
	}

	now := uc.now().UTC()
	bucketName := uc.InternalConfig.Minio.ExportBucketName
	objectName := utils.GenerateExportObjectName(questionnaire.ID, now)
	size := int64(buffer.Len())

	objectName, err = uc.Storage.UploadObject(ctx, &buffer, size, bucketName, objectName, constvars.MIMETextCSV)
	if err != nil {
		uc.Log.Error("reportUsecase.ExportResponses error calling Storage.UploadObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, bucketName),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHours) * time.Hour
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		uc.Log.Error("reportUsecase.ExportResponses error calling Storage.GetObjectUrlWithExpiryTime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("reportUsecase.ExportResponses succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, bucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingResponseCountKey, len(all)),
	)
	return &responses.ResponseExport{
		QuestionnaireID: questionnaire.ID,
		ObjectName:      objectName,
		RowCount:        len(all),
		URL:             url,
		ExpiresAt:       now.Add(expiry),
	}, nil
}

func (uc *reportUsecase) findQuestionnaire(ctx context.Context, questionnaireID string) (*models.Questionnaire, error) {
	questionnaire, err := uc.QuestionnaireRepository.FindByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if questionnaire == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceQuestionnaires, questionnaireID)
	}
	return questionnaire, nil
}
