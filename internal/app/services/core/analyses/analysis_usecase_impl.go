package analyses

import (
	"context"
	"fmt"
	"time"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/responses"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type analysisUsecase struct {
	AnalysisRepository contracts.AnalysisRepository
	ResponseRepository contracts.ResponseRepository
	Log                *zap.Logger
	now                func() time.Time
}

func NewAnalysisUsecase(
	analysisRepository contracts.AnalysisRepository,
	responseRepository contracts.ResponseRepository,
	logger *zap.Logger,
) contracts.AnalysisUsecase {
	return &analysisUsecase{
		AnalysisRepository: analysisRepository,
		ResponseRepository: responseRepository,
		Log:                logger,
		now:                time.Now,
	}
}

// SaveAnalysis stores the payload verbatim. Only its presence is checked.
func (uc *analysisUsecase) SaveAnalysis(ctx context.Context, responseID string, payload map[string]interface{}) (*responses.Analysis, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("analysisUsecase.SaveAnalysis called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	if payload == nil {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("analysis payload must be a JSON object"))
	}

	response, err := uc.ResponseRepository.FindByID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourceResponses, responseID)
	}

	now := uc.now().UTC()
	analysis := &models.Analysis{
		ResponseID: response.ID,
		Payload:    payload,
		ReceivedAt: now,
		UpdatedAt:  now,
	}
	if err := uc.AnalysisRepository.Upsert(ctx, analysis); err != nil {
		uc.Log.Error("analysisUsecase.SaveAnalysis error calling AnalysisRepository.Upsert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	stored, err := uc.AnalysisRepository.FindByResponseID(ctx, response.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = analysis
	}

	uc.Log.Info("analysisUsecase.SaveAnalysis succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
	)
	result := stored.ConvertIntoResponse()
	return &result, nil
}

func (uc *analysisUsecase) FindAnalysisByResponseID(ctx context.Context, responseID string) (*responses.Analysis, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("analysisUsecase.FindAnalysisByResponseID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	analysis, err := uc.AnalysisRepository.FindByResponseID(ctx, responseID)
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, exceptions.ErrResourceNotFound("analysis", responseID)
	}

	result := analysis.ConvertIntoResponse()
	return &result, nil
}
