package config

import (
	"strings"

	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:         utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:         utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:     utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:     utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:       utils.GetEnvString("POSTGRES_DB_NAME", "mindscreen"),
			SSLMode:      utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DBName:   utils.GetEnvString("MONGODB_DB_NAME", "mindscreen"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			PublicBaseUrl:              utils.GetEnvString("APP_PUBLIC_BASE_URL", "http://localhost:3000"),
			CORSAllowedOrigins:         utils.GetEnvString("APP_CORS_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
			PublicMaxRequestsPerMinute: utils.GetEnvInt("APP_PUBLIC_MAX_REQUESTS_PER_MINUTE", 60),
			PublicBlockTimeInSeconds:   utils.GetEnvInt("APP_PUBLIC_BLOCK_TIME_IN_SECONDS", 60),
		},
		JWT: AppJWT{
			Secret:                        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			DistributionLinkExpTimeInHour: utils.GetEnvInt("JWT_DISTRIBUTION_LINK_EXP_TIME_IN_HOUR", 720),
		},
		Scoring: AppScoring{
			AutoScoreOnSubmit:            utils.GetEnvBool("AUTO_SCORE_ON_SUBMIT", true),
			RescoreCronSpec:              utils.GetEnvString("SCORING_RESCORE_CRON_SPEC", "@every 10m"),
			RescoreBatchSize:             utils.GetEnvInt("SCORING_RESCORE_BATCH_SIZE", constvars.DefaultRescoreBatchSize),
			ResponseLockTTLInSeconds:     utils.GetEnvInt("SCORING_RESPONSE_LOCK_TTL_IN_SECONDS", 10),
			UniqueCodeCacheTTLInMinutes:  utils.GetEnvInt("SCORING_UNIQUE_CODE_CACHE_TTL_IN_MINUTES", 1440),
			RescoreLeaderLockTTLInSecond: utils.GetEnvInt("SCORING_RESCORE_LEADER_LOCK_TTL_IN_SECOND", 120),
		},
		Mailer: AppMailer{
			EmailSender:    utils.GetEnvString("APP_MAILER_EMAIL_SENDER", "no-reply@mindscreen.local"),
			ReviewerEmails: splitCSV(utils.GetEnvString("APP_REVIEWER_EMAILS", "")),
		},
		Minio: AppMinio{
			ExportBucketName:                    utils.GetEnvString("APP_MINIO_EXPORT_BUCKET_NAME", "mindscreen-exports"),
			PreSignedUrlObjectExpiryTimeInHours: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_OBJECT_EXPIRY_TIME_IN_HOURS", 24),
		},
		RabbitMQ: AppRabbitMQ{
			EventsQueue:   utils.GetEnvString("APP_RABBITMQ_EVENTS_QUEUE", "mindscreen_response_events"),
			AnalysisQueue: utils.GetEnvString("APP_RABBITMQ_ANALYSIS_QUEUE", "mindscreen_analysis_requests"),
			MailerQueue:   utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "mindscreen_mailer"),
		},
		Cache: AppCache{
			AnalyticsCacheTTLInSeconds: utils.GetEnvInt("ANALYTICS_CACHE_TTL_SECONDS", 300),
		},
	}
}

func splitCSV(csv string) []string {
	var values []string
	for _, part := range strings.Split(csv, ",") {
		if value := strings.TrimSpace(part); value != "" {
			values = append(values, value)
		}
	}
	return values
}
