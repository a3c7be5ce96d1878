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

// PublicController serves respondents who only hold a distribution link or
// a unique code.
type PublicController struct {
	Log             *zap.Logger
	ResponseUsecase contracts.ResponseUsecase
}

var (
	publicControllerInstance *PublicController
	oncePublicController     sync.Once
)

func NewPublicController(logger *zap.Logger, responseUsecase contracts.ResponseUsecase) *PublicController {
	oncePublicController.Do(func() {
		publicControllerInstance = &PublicController{
			Log:             logger,
			ResponseUsecase: responseUsecase,
		}
	})
	return publicControllerInstance
}

func (ctrl *PublicController) StartResponse(w http.ResponseWriter, r *http.Request) {
	ctrl.Log.Info("PublicController.StartResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
	)

	request := new(requests.StartPublicResponse)
	if err := decodeRequestBody(r, request, true); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.Token = chi.URLParam(r, constvars.URLParamToken)

	result, err := ctrl.ResponseUsecase.StartPublicResponse(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.StartResponseSuccessMessage, result)
}

func (ctrl *PublicController) FindResponse(w http.ResponseWriter, r *http.Request) {
	uniqueCode := chi.URLParam(r, constvars.URLParamUniqueCode)

	result, err := ctrl.ResponseUsecase.FindPublicResponseByUniqueCode(r.Context(), uniqueCode)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetResponseSuccessMessage, result)
}

func (ctrl *PublicController) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	uniqueCode := chi.URLParam(r, constvars.URLParamUniqueCode)
	ctrl.Log.Info("PublicController.RecordAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
		zap.String(constvars.LoggingUniqueCodeKey, uniqueCode),
	)

	request := new(requests.RecordAnswer)
	if err := decodeRequestBody(r, request, false); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.ResponseUsecase.RecordPublicAnswer(r.Context(), uniqueCode, request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordAnswerSuccessMessage, result)
}

func (ctrl *PublicController) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	uniqueCode := chi.URLParam(r, constvars.URLParamUniqueCode)
	ctrl.Log.Info("PublicController.SubmitResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestIDFrom(r)),
		zap.String(constvars.LoggingUniqueCodeKey, uniqueCode),
	)

	result, err := ctrl.ResponseUsecase.SubmitPublicResponse(r.Context(), uniqueCode)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitResponseSuccessMessage, result)
}
