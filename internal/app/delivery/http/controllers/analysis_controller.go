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

type AnalysisController struct {
	Log             *zap.Logger
	AnalysisUsecase contracts.AnalysisUsecase
}

var (
	analysisControllerInstance *AnalysisController
	onceAnalysisController     sync.Once
)

func NewAnalysisController(logger *zap.Logger, analysisUsecase contracts.AnalysisUsecase) *AnalysisController {
	onceAnalysisController.Do(func() {
		analysisControllerInstance = &AnalysisController{
			Log:             logger,
			AnalysisUsecase: analysisUsecase,
		}
	})
	return analysisControllerInstance
}

// SaveAnalysis accepts any JSON object and stores it as is.
func (ctrl *AnalysisController) SaveAnalysis(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, constvars.URLParamResponseID)
	ctrl.Log.Info("AnalysisController.SaveAnalysis called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	var payload map[string]interface{}
	if err := decodeRequestBody(r, &payload, false); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.AnalysisUsecase.SaveAnalysis(r.Context(), responseID, payload)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SaveAnalysisSuccessMessage, result)
}

func (ctrl *AnalysisController) FindAnalysis(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, constvars.URLParamResponseID)

	result, err := ctrl.AnalysisUsecase.FindAnalysisByResponseID(r.Context(), responseID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAnalysisSuccessMessage, result)
}
