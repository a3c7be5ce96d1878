package contracts

import (
	"context"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/dto/responses"
)

type AnalysisRepository interface {
	Upsert(ctx context.Context, analysis *models.Analysis) error
	FindByResponseID(ctx context.Context, responseID string) (*models.Analysis, error)
}

type AnalysisUsecase interface {
	SaveAnalysis(ctx context.Context, responseID string, payload map[string]interface{}) (*responses.Analysis, error)
	FindAnalysisByResponseID(ctx context.Context, responseID string) (*responses.Analysis, error)
}
