package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/delivery/http/controllers"
	"mindscreen-service/internal/app/delivery/http/middlewares"
	"mindscreen-service/internal/app/delivery/http/routers"
	"mindscreen-service/internal/app/drivers/database"
	"mindscreen-service/internal/app/drivers/logger"
	"mindscreen-service/internal/app/drivers/messaging"
	"mindscreen-service/internal/app/drivers/storage"
	"mindscreen-service/internal/app/services/core/analyses"
	questionnaireResponses "mindscreen-service/internal/app/services/core/questionnaire_responses"
	"mindscreen-service/internal/app/services/core/questionnaires"
	"mindscreen-service/internal/app/services/core/reports"
	"mindscreen-service/internal/app/services/core/rescoring"
	"mindscreen-service/internal/app/services/shared/eventqueue"
	"mindscreen-service/internal/app/services/shared/locker"
	"mindscreen-service/internal/app/services/shared/mailer"
	"mindscreen-service/internal/app/services/shared/redis"
	minioStorage "mindscreen-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		PostgresDB:     database.NewPostgresDB(driverConfig, log),
		MongoDB:        database.NewMongoDB(driverConfig, log),
		Redis:          database.NewRedisClient(driverConfig, log),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig, log),
		Minio:          storage.NewMinio(driverConfig, internalConfig, log),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", internalConfig.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	storageService := minioStorage.NewMinioStorage(bootstrap.Minio)

	eventPublisher, err := eventqueue.NewService(
		bootstrap.RabbitMQ,
		log,
		internalConfig.RabbitMQ.EventsQueue,
		internalConfig.RabbitMQ.AnalysisQueue,
	)
	if err != nil {
		return err
	}
	bootstrap.PublisherClose = eventPublisher.Close

	mailerService, err := mailer.NewMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue, log)
	if err != nil {
		return err
	}

	// Repositories
	questionnaireRepository := questionnaires.NewQuestionnairePostgresRepository(bootstrap.PostgresDB, log)
	questionRepository := questionnaires.NewQuestionPostgresRepository(bootstrap.PostgresDB, log)
	responseRepository := questionnaireResponses.NewResponsePostgresRepository(bootstrap.PostgresDB, log)
	answerRepository := questionnaireResponses.NewAnswerPostgresRepository(bootstrap.PostgresDB, log)
	analysisRepository := analyses.NewAnalysisMongoRepository(
		bootstrap.MongoDB.Database(bootstrap.DriverConfig.MongoDB.DBName),
		log,
	)

	// Usecases
	questionnaireUsecase := questionnaires.NewQuestionnaireUsecase(
		questionnaireRepository,
		questionRepository,
		responseRepository,
		internalConfig,
		log,
	)
	responseUsecase := questionnaireResponses.NewResponseUsecase(
		questionnaireRepository,
		questionRepository,
		responseRepository,
		answerRepository,
		redisRepository,
		lockerService,
		eventPublisher,
		mailerService,
		internalConfig,
		log,
	)
	reportUsecase := reports.NewReportUsecase(
		questionnaireRepository,
		questionRepository,
		responseRepository,
		answerRepository,
		redisRepository,
		storageService,
		internalConfig,
		log,
	)
	analysisUsecase := analyses.NewAnalysisUsecase(analysisRepository, responseRepository, log)

	// Rescoring worker
	worker := rescoring.NewWorker(log, internalConfig, lockerService, responseUsecase)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, internalConfig)
	questionnaireController := controllers.NewQuestionnaireController(log, questionnaireUsecase)
	reportController := controllers.NewReportController(log, reportUsecase)
	responseController := controllers.NewResponseController(log, responseUsecase)
	publicController := controllers.NewPublicController(log, responseUsecase)
	analysisController := controllers.NewAnalysisController(log, analysisUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		questionnaireController,
		reportController,
		responseController,
		publicController,
		analysisController,
	)
	return nil
}
