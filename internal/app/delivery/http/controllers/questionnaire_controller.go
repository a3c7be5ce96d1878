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

type QuestionnaireController struct {
	Log                  *zap.Logger
	QuestionnaireUsecase contracts.QuestionnaireUsecase
}

var (
	questionnaireControllerInstance *QuestionnaireController
	onceQuestionnaireController     sync.Once
)

func NewQuestionnaireController(logger *zap.Logger, questionnaireUsecase contracts.QuestionnaireUsecase) *QuestionnaireController {
	onceQuestionnaireController.Do(func() {
		questionnaireControllerInstance = &QuestionnaireController{
			Log:                  logger,
			QuestionnaireUsecase: questionnaireUsecase,
		}
	})
	return questionnaireControllerInstance
}

func (ctrl *QuestionnaireController) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	ctrl.Log.Info("QuestionnaireController.CreateQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UpsertQuestionnaire)
	if err := decodeRequestBody(r, request, false); err != nil {
		ctrl.Log.Error("QuestionnaireController.CreateQuestionnaire error parsing request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.QuestionnaireUsecase.CreateQuestionnaire(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("QuestionnaireController.CreateQuestionnaire succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateQuestionnaireSuccessMessage, result)
}

func (ctrl *QuestionnaireController) UpdateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)
	ctrl.Log.Info("QuestionnaireController.UpdateQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	request := new(requests.UpsertQuestionnaire)
	if err := decodeRequestBody(r, request, false); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.QuestionnaireID = questionnaireID

	result, err := ctrl.QuestionnaireUsecase.UpdateQuestionnaire(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateQuestionnaireSuccessMessage, result)
}

func (ctrl *QuestionnaireController) FindQuestionnaireByID(w http.ResponseWriter, r *http.Request) {
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)

	result, err := ctrl.QuestionnaireUsecase.FindQuestionnaireByID(r.Context(), questionnaireID)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetQuestionnaireSuccessMessage, result)
}

func (ctrl *QuestionnaireController) FindAllQuestionnaires(w http.ResponseWriter, r *http.Request) {
	request := utils.BuildFindAllQuestionnairesRequest(r)

	result, total, err := ctrl.QuestionnaireUsecase.FindAllQuestionnaires(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetQuestionnairesSuccessMessage, pagination, result)
}

func (ctrl *QuestionnaireController) DeleteQuestionnaire(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	questionnaireID := chi.URLParam(r, constvars.URLParamQuestionnaireID)
	ctrl.Log.Info("QuestionnaireController.DeleteQuestionnaire called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	if err := ctrl.QuestionnaireUsecase.DeleteQuestionnaireByID(r.Context(), questionnaireID); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteQuestionnaireSuccessMessage, nil)
}

func (ctrl *QuestionnaireController) FindAllPresets(w http.ResponseWriter, r *http.Request) {
	result := ctrl.QuestionnaireUsecase.FindAllPresets(r.Context())
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetQuestionnairePresetsMessage, result)
}

func (ctrl *QuestionnaireController) CreateQuestionnaireFromPreset(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r)
	presetKey := chi.URLParam(r, constvars.URLParamPresetKey)
	ctrl.Log.Info("QuestionnaireController.CreateQuestionnaireFromPreset called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPresetKey, presetKey),
	)

	request := new(requests.CreateQuestionnaireFromPreset)
	if err := decodeRequestBody(r, request, true); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.PresetKey = presetKey

	result, err := ctrl.QuestionnaireUsecase.CreateQuestionnaireFromPreset(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateQuestionnaireSuccessMessage, result)
}

func (ctrl *QuestionnaireController) CreateDistributionLink(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateDistributionLink)
	if err := decodeRequestBody(r, request, true); err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.QuestionnaireID = chi.URLParam(r, constvars.URLParamQuestionnaireID)

	result, err := ctrl.QuestionnaireUsecase.CreateDistributionLink(r.Context(), request)
	if err != nil {
		buildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateDistributionLinkSuccessMessage, result)
}
