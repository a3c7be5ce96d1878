package controllers

import (
	"net/http"
	"sync"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/dto/requests"
	"mindscreen-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ResponseController struct {
	Log             *zap.Logger
	ResponseUsecase contracts.ResponseUsecase
}

var (
	responseControllerInstance *ResponseController
	onceResponseController     sync.Once
)

func NewResponseController(logger *zap.Logger, responseUsecase contracts.ResponseUsecase) *ResponseController {
	onceResponseController.Do(func() {
		responseControllerInstance = &ResponseController{
			Log:             logger,
			ResponseUsecase: responseUsecase,
		}
	})
	return responseControllerInstance
}

func (ctrl *ResponseController) StartResponse(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	ctrl.Log.Info("ResponseController.StartResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.StartResponse)
	if err := decodeRequestBody(r, request, false); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.ResponseUsecase.StartResponse(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ResponseController.StartResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.StartResponseSuccessMessage, result)
}

func (ctrl *ResponseController) FindAllResponses(w http.ResponseWriter, r *http.Request) {
	request, err := utils.BuildFindAllResponsesRequest(r)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, total, err := ctrl.ResponseUsecase.FindAllResponses(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetResponsesSuccessMessage, pagination, result)
}

func (ctrl *ResponseController) FindResponseByID(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, constvars.URLParamResponseID)

	result, err := ctrl.ResponseUsecase.FindResponseByID(r.Context(), responseID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetResponseSuccessMessage, result)
}

func (ctrl *ResponseController) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	responseID := chi.URLParam(r, constvars.URLParamResponseID)
	ctrl.Log.Info("ResponseController.RecordAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	request := new(requests.RecordAnswer)
	if err := decodeRequestBody(r, request, false); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.ResponseID = responseID

	result, err := ctrl.ResponseUsecase.RecordAnswer(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordAnswerSuccessMessage, result)
}

func (ctrl *ResponseController) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, constvars.URLParamResponseID)
	ctrl.Log.Info("ResponseController.SubmitResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	result, err := ctrl.ResponseUsecase.SubmitResponse(r.Context(), responseID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitResponseSuccessMessage, result)
}

func (ctrl *ResponseController) ScoreResponse(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, constvars.URLParamResponseID)
	ctrl.Log.Info("ResponseController.ScoreResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	result, err := ctrl.ResponseUsecase.ScoreResponse(r.Context(), responseID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ScoreResponseSuccessMessage, result)
}

func (ctrl *ResponseController) SetFlag(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SetFlag)
	if err := decodeRequestBody(r, request, false); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.ResponseID = chi.URLParam(r, constvars.URLParamResponseID)

	result, err := ctrl.ResponseUsecase.SetFlag(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FlagResponseSuccessMessage, result)
}

func (ctrl *ResponseController) ReopenResponse(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, constvars.URLParamResponseID)
	ctrl.Log.Info("ResponseController.ReopenResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	result, err := ctrl.ResponseUsecase.ReopenResponse(r.Context(), responseID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReopenResponseSuccessMessage, result)
}
