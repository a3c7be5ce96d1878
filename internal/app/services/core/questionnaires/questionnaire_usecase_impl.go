package questionnaires

import (
	"context"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/app/services/core/presets"
	"mindscreen-service/internal/app/services/core/scoring"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/dto/responses"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type questionnaireUsecase struct {
	QuestionnaireRepository contracts.QuestionnaireRepository
	QuestionRepository      contracts.QuestionRepository
	ResponseRepository      contracts.ResponseRepository
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
	now                     func() time.Time
	newID                   func() string
}

func NewQuestionnaireUsecase(
	questionnaireRepository contracts.QuestionnaireRepository,
	questionRepository contracts.QuestionRepository,
	responseRepository contracts.ResponseRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.QuestionnaireUsecase {
	return &questionnaireUsecase{
		QuestionnaireRepository: questionnaireRepository,
		QuestionRepository:      questionRepository,
		ResponseRepository:      responseRepository,
		InternalConfig:          internalConfig,
		Log:                     logger,
		now:                     time.Now,
		newID:                   uuid.NewString,
	}
}

func (uc *questionnaireUsecase) CreateQuestionnaire(ctx context.Context, request *requests.UpsertQuestionnaire) (*responses.Questionnaire, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.CreateQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	utils.SanitizeUpsertQuestionnaireRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	questionnaire, questions := uc.buildQuestionnaire(request)
	questionnaire.ID = uc.newID()
	questionnaire.SetCreatedAtUpdatedAt(uc.now().UTC())

	return uc.store(ctx, requestID, questionnaire, questions, uc.QuestionnaireRepository.Create)
}

// UpdateQuestionnaire replaces metadata and the whole question list. It is
// refused once any response references the questionnaire.
func (uc *questionnaireUsecase) UpdateQuestionnaire(ctx context.Context, request *requests.UpsertQuestionnaire) (*responses.Questionnaire, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.UpdateQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, request.QuestionnaireID),
	)

	utils.SanitizeUpsertQuestionnaireRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	existing, err := uc.QuestionnaireRepository.FindByID(ctx, request.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceQuestionnaires, request.QuestionnaireID)
	}
	if err := uc.ensureNoResponses(ctx, existing.ID); err != nil {
		return nil, err
	}

	questionnaire, questions := uc.buildQuestionnaire(request)
	questionnaire.ID = existing.ID
	questionnaire.CreatedAt = existing.CreatedAt
	questionnaire.SetUpdatedAt(uc.now().UTC())

	return uc.store(ctx, requestID, questionnaire, questions, uc.QuestionnaireRepository.Update)
}

func (uc *questionnaireUsecase) FindQuestionnaireByID(ctx context.Context, questionnaireID string) (*responses.Questionnaire, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.FindQuestionnaireByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

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

	result := questionnaire.ConvertIntoResponse()
	return &result, nil
}

func (uc *questionnaireUsecase) FindAllQuestionnaires(ctx context.Context, request *requests.FindAllQuestionnaires) ([]responses.Questionnaire, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.FindAllQuestionnaires called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, request),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, 0, exceptions.ErrInputValidation(err)
	}

	questionnaires, total, err := uc.QuestionnaireRepository.FindAll(ctx, models.QuestionnaireFilter{
		Type:           models.QuestionnaireType(request.Type),
		OrganizationID: request.OrganizationID,
		Limit:          request.PageSize,
		Offset:         request.Offset(),
	})
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Questionnaire, len(questionnaires))
	for i, questionnaire := range questionnaires {
		result[i] = questionnaire.ConvertIntoResponse()
	}

	uc.Log.Info("questionnaireUsecase.FindAllQuestionnaires succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(result)),
	)
	return result, total, nil
}

func (uc *questionnaireUsecase) DeleteQuestionnaireByID(ctx context.Context, questionnaireID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.DeleteQuestionnaireByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	questionnaire, err := uc.QuestionnaireRepository.FindByID(ctx, questionnaireID)
	if err != nil {
		return err
	}
	if questionnaire == nil {
		return exceptions.ErrResourceNotFound(constvars.ResourceQuestionnaires, questionnaireID)
	}
	if err := uc.ensureNoResponses(ctx, questionnaire.ID); err != nil {
		return err
	}

	if err := uc.QuestionnaireRepository.Delete(ctx, questionnaire.ID); err != nil {
		uc.Log.Error("questionnaireUsecase.DeleteQuestionnaireByID error calling QuestionnaireRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("questionnaireUsecase.DeleteQuestionnaireByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return nil
}

func (uc *questionnaireUsecase) FindAllPresets(ctx context.Context) []responses.QuestionnairePreset {
	all := presets.All()
	result := make([]responses.QuestionnairePreset, len(all))
	for i, preset := range all {
		riskLevels := make([]responses.RiskLevel, len(preset.RiskLevels))
		for j, threshold := range preset.RiskLevels {
			riskLevels[j] = responses.RiskLevel{Label: threshold.Label, MinScore: threshold.MinScore}
		}
		result[i] = responses.QuestionnairePreset{
			Key:           preset.Key,
			Title:         preset.Title,
			Description:   preset.Description,
			ScoringMethod: string(preset.ScoringMethod),
			MaxScore:      preset.MaxScore,
			QuestionCount: len(preset.Questions),
			RiskLevels:    riskLevels,
		}
	}
	return result
}

func (uc *questionnaireUsecase) CreateQuestionnaireFromPreset(ctx context.Context, request *requests.CreateQuestionnaireFromPreset) (*responses.Questionnaire, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.CreateQuestionnaireFromPreset called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPresetKey, request.PresetKey),
	)

	preset, ok := presets.Find(request.PresetKey)
	if !ok {
		return nil, exceptions.ErrUnknownPreset(request.PresetKey)
	}

	questionnaire, questions := preset.Build(request.OrganizationID)
	questionnaire.ID = uc.newID()
	questionnaire.SetCreatedAtUpdatedAt(uc.now().UTC())

	return uc.store(ctx, requestID, questionnaire, questions, uc.QuestionnaireRepository.Create)
}

func (uc *questionnaireUsecase) CreateDistributionLink(ctx context.Context, request *requests.CreateDistributionLink) (*responses.DistributionLink, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("questionnaireUsecase.CreateDistributionLink called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, request.QuestionnaireID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	questionnaire, err := uc.QuestionnaireRepository.FindByID(ctx, request.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	if questionnaire == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceQuestionnaires, request.QuestionnaireID)
	}

	hours := request.ExpiresInHours
	if hours == 0 {
		hours = uc.InternalConfig.JWT.DistributionLinkExpTimeInHour
	}
	expiresAt := uc.now().UTC().Add(time.Duration(hours) * time.Hour)

	token, err := utils.GenerateDistributionJWT(questionnaire.ID, uc.InternalConfig.JWT.Secret, expiresAt)
	if err != nil {
		uc.Log.Error("questionnaireUsecase.CreateDistributionLink error signing token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGenerateDistributionToken(err)
	}

	uc.Log.Info("questionnaireUsecase.CreateDistributionLink succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return &responses.DistributionLink{
		QuestionnaireID: questionnaire.ID,
		Token:           token,
		URL:             utils.GenerateDistributionLink(uc.InternalConfig.App.PublicBaseUrl, token),
		ExpiresAt:       expiresAt,
	}, nil
}

func (uc *questionnaireUsecase) ensureNoResponses(ctx context.Context, questionnaireID string) error {
	count, err := uc.ResponseRepository.CountByQuestionnaireID(ctx, questionnaireID)
	if err != nil {
		return err
	}
	if count > 0 {
		return exceptions.ErrQuestionnaireHasResponses(questionnaireID, count)
	}
	return nil
}

type writeFunc func(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error

func (uc *questionnaireUsecase) store(ctx context.Context, requestID string, questionnaire models.Questionnaire, questions []models.Question, write writeFunc) (*responses.Questionnaire, error) {
	for i := range questions {
		questions[i].ID = uc.newID()
		questions[i].QuestionnaireID = questionnaire.ID
		questions[i].CreatedAt = questionnaire.UpdatedAt
		questions[i].UpdatedAt = questionnaire.UpdatedAt
	}

	if err := scoring.ValidateQuestionnaire(questionnaire, questions); err != nil {
		uc.Log.Info("questionnaireUsecase rejected questionnaire definition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := write(ctx, &questionnaire, questions); err != nil {
		uc.Log.Error("questionnaireUsecase error writing questionnaire",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("questionnaireUsecase questionnaire stored",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	questionnaire.Questions = questions
	result := questionnaire.ConvertIntoResponse()
	return &result, nil
}

func (uc *questionnaireUsecase) buildQuestionnaire(request *requests.UpsertQuestionnaire) (models.Questionnaire, []models.Question) {
	riskLevels := make(models.RiskThresholds, len(request.RiskLevels))
	for i, level := range request.RiskLevels {
		riskLevels[i] = models.RiskThreshold{Label: level.Label, MinScore: *level.MinScore}
	}

	precision := models.DefaultScorePrecision
	if request.ScorePrecision != nil {
		precision = *request.ScorePrecision
	}

	questionnaire := models.Questionnaire{
		Title:          request.Title,
		Description:    request.Description,
		Type:           models.QuestionnaireType(request.Type),
		ScoringMethod:  models.ScoringMethod(request.ScoringMethod),
		RiskLevels:     riskLevels,
		MaxScore:       request.MaxScore,
		PassingScore:   request.PassingScore,
		FlagRiskLevel:  request.FlagRiskLevel,
		ScorePrecision: precision,
		OrganizationID: request.OrganizationID,
	}

	questions := make([]models.Question, len(request.Questions))
	for i, item := range request.Questions {
		questionType := models.QuestionType(item.Type)

		options := make(models.QuestionOptions, len(item.Options))
		for j, option := range item.Options {
			options[j] = models.QuestionOption{Value: *option.Value, Label: option.Label}
		}

		weight := questionType.DefaultScoringWeight()
		if item.ScoringWeight != nil {
			weight = *item.ScoringWeight
		}

		orderNum := item.OrderNum
		if orderNum == 0 {
			orderNum = i + 1
		}

		questions[i] = models.Question{
			Text:          item.Text,
			Type:          questionType,
			Required:      item.Required,
			OrderNum:      orderNum,
			Options:       options,
			ScoringWeight: weight,
		}
	}
	return questionnaire, questions
}
