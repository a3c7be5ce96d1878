package routers

import (
	"fmt"
	"strings"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/delivery/http/controllers"
	"mindscreen-service/internal/app/delivery/http/middlewares"
	"mindscreen-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	questionnaireController *controllers.QuestionnaireController,
	reportController *controllers.ReportController,
	responseController *controllers.ResponseController,
	publicController *controllers.PublicController,
	analysisController *controllers.AnalysisController,
) {
	corsOptions := cors.Options{
		AllowedOrigins: strings.Split(internalConfig.App.CORSAllowedOrigins, ","),
		AllowedMethods: []string{
			constvars.MethodGet,
			constvars.MethodPost,
			constvars.MethodPut,
			constvars.MethodDelete,
			constvars.MethodOptions,
		},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXCSRFToken,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)
	if internalConfig.App.RequestTimeoutInSeconds > 0 {
		router.Use(chimiddleware.Timeout(time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second))
	}

	router.NotFound(middlewares.NotFound)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourceQuestionnaires, func(r chi.Router) {
				attachQuestionnaireRoutes(r, middlewares, questionnaireController, reportController)
			})

			r.Route("/"+constvars.ResourceQuestionnairePresets, func(r chi.Router) {
				attachQuestionnairePresetRoutes(r, middlewares, questionnaireController)
			})

			r.Route("/"+constvars.ResourceResponses, func(r chi.Router) {
				attachResponseRoutes(r, middlewares, responseController, analysisController)
			})

			r.Route("/"+constvars.ResourcePublic, func(r chi.Router) {
				attachPublicRoutes(r, middlewares, publicController)
			})
		})
	})
}
