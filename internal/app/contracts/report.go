package contracts

import (
	"context"

	"mindscreen-service/internal/pkg/dto/responses"
)

type ReportUsecase interface {
	GetQuestionnaireSummary(ctx context.Context, questionnaireID string) (*responses.QuestionnaireSummary, error)
	ExportResponses(ctx context.Context, questionnaireID string) (*responses.ResponseExport, error)
}
