package routers

import (
	"mindscreen-service/internal/app/delivery/http/controllers"
	"mindscreen-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPublicRoutes(router chi.Router, middlewares *middlewares.Middlewares, publicController *controllers.PublicController) {
	router.Use(middlewares.NewPublicRateLimiter().Limit)

	router.Post("/links/{token}/responses", publicController.StartResponse)

	router.Route("/responses/{unique_code}", func(r chi.Router) {
		r.Get("/", publicController.FindResponse)
		r.Post("/answers", publicController.RecordAnswer)
		r.Post("/submit", publicController.SubmitResponse)
	})
}
