package routers

import (
	"mindscreen-service/internal/app/delivery/http/controllers"
	"mindscreen-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachResponseRoutes(router chi.Router, middlewares *middlewares.Middlewares, responseController *controllers.ResponseController, analysisController *controllers.AnalysisController) {
	router.Post("/", responseController.StartResponse)
	router.Get("/", responseController.FindAllResponses)

	router.Route("/{response_id}", func(r chi.Router) {
		r.Get("/", responseController.FindResponseByID)
		r.Post("/answers", responseController.RecordAnswer)
		r.Post("/submit", responseController.SubmitResponse)
		r.Post("/score", responseController.ScoreResponse)
		r.Put("/flag", responseController.SetFlag)
		r.Post("/reopen", responseController.ReopenResponse)
		r.Put("/analysis", analysisController.SaveAnalysis)
		r.Get("/analysis", analysisController.FindAnalysis)
	})
}
