package config

type InternalConfig struct {
	App      App         `mapstructure:"app"`
	JWT      AppJWT      `mapstructure:"jwt"`
	Scoring  AppScoring  `mapstructure:"scoring"`
	Mailer   AppMailer   `mapstructure:"mailer"`
	Minio    AppMinio    `mapstructure:"minio"`
	RabbitMQ AppRabbitMQ `mapstructure:"rabbitmq"`
	Cache    AppCache    `mapstructure:"cache"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Address                    string `mapstructure:"address"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	PublicBaseUrl              string `mapstructure:"public_base_url"`
	CORSAllowedOrigins         string `mapstructure:"cors_allowed_origins"`
	MaxRequests                int    `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds  int    `mapstructure:"max_time_requests_per_seconds"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds    int    `mapstructure:"request_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	// Public endpoints are additionally throttled per client IP.
	PublicMaxRequestsPerMinute int `mapstructure:"public_max_requests_per_minute"`
	PublicBlockTimeInSeconds   int `mapstructure:"public_block_time_in_seconds"`
}

type AppJWT struct {
	Secret                        string `mapstructure:"secret"`
	DistributionLinkExpTimeInHour int    `mapstructure:"distribution_link_exp_time_in_hour"`
}

type AppScoring struct {
	AutoScoreOnSubmit            bool   `mapstructure:"auto_score_on_submit"`
	RescoreCronSpec              string `mapstructure:"rescore_cron_spec"`
	RescoreBatchSize             int    `mapstructure:"rescore_batch_size"`
	ResponseLockTTLInSeconds     int    `mapstructure:"response_lock_ttl_in_seconds"`
	UniqueCodeCacheTTLInMinutes  int    `mapstructure:"unique_code_cache_ttl_in_minutes"`
	RescoreLeaderLockTTLInSecond int    `mapstructure:"rescore_leader_lock_ttl_in_second"`
}

type AppMailer struct {
	EmailSender    string   `mapstructure:"email_sender"`
	ReviewerEmails []string `mapstructure:"reviewer_emails"`
}

type AppMinio struct {
	ExportBucketName                    string `mapstructure:"export_bucket_name"`
	PreSignedUrlObjectExpiryTimeInHours int    `mapstructure:"pre_signed_url_object_expiry_time_in_hours"`
}

type AppRabbitMQ struct {
	EventsQueue   string `mapstructure:"events_queue"`
	AnalysisQueue string `mapstructure:"analysis_queue"`
	MailerQueue   string `mapstructure:"mailer_queue"`
}

type AppCache struct {
	AnalyticsCacheTTLInSeconds int `mapstructure:"analytics_cache_ttl_in_seconds"`
}
