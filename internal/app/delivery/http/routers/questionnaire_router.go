package routers

import (
	"mindscreen-service/internal/app/delivery/http/controllers"
	"mindscreen-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachQuestionnaireRoutes(router chi.Router, middlewares *middlewares.Middlewares, questionnaireController *controllers.QuestionnaireController, reportController *controllers.ReportController) {
	router.Post("/", questionnaireController.CreateQuestionnaire)
	router.Get("/", questionnaireController.FindAllQuestionnaires)
	router.Post("/presets/{preset_key}", questionnaireController.CreateQuestionnaireFromPreset)

	router.Route("/{questionnaire_id}", func(r chi.Router) {
		r.Get("/", questionnaireController.FindQuestionnaireByID)
		r.Put("/", questionnaireController.UpdateQuestionnaire)
		r.Delete("/", questionnaireController.DeleteQuestionnaire)
		r.Post("/links", questionnaireController.CreateDistributionLink)
		r.Get("/summary", reportController.GetQuestionnaireSummary)
		r.Post("/exports", reportController.ExportResponses)
	})
}

func attachQuestionnairePresetRoutes(router chi.Router, middlewares *middlewares.Middlewares, questionnaireController *controllers.QuestionnaireController) {
	router.Get("/", questionnaireController.FindAllPresets)
}
