package controllers

import (
	"net/http"
	"sync"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReportController struct {
	Log           *zap.Logger
	ReportUsecase contracts.ReportUsecase
}

var (
	reportControllerInstance *ReportController
	onceReportController     sync.Once
)

func NewReportController(logger *zap.Logger, reportUsecase contracts.ReportUsecase) *ReportController {
	onceReportController.Do(func() {
		reportControllerInstance = &ReportController{
			Log:           logger,
			ReportUsecase: reportUsecase,
		}
	})
	return reportControllerInstance
}

func (ctrl *ReportController) GetQuestionnaireSummary(w http.ResponseWriter, r *http.Request) {
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)

	result, err := ctrl.ReportUsecase.GetQuestionnaireSummary(r.Context(), questionnaireID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetQuestionnaireSummarySuccessMessage, result)
}

func (ctrl *ReportController) ExportResponses(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)
	ctrl.Log.Info("ReportController.ExportResponses called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	result, err := ctrl.ReportUsecase.ExportResponses(r.Context(), questionnaireID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ReportController.ExportResponses succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, result.ObjectName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateExportSuccessMessage, result)
}
