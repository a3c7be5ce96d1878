package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseCountKey  = "response_count"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingOccurredAtKey     = "occurred_at"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingRedisKey          = "redis_key"
	LoggingQueueNameKey      = "queue_name"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingEventTypeKey      = "event_type"
	LoggingCronSpecKey       = "cron_spec"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingLockStoredKey     = "lock_stored_value"
	LoggingLockExpectedKey   = "lock_expected_value"

	LoggingQuestionnaireIDKey = "questionnaire_id"
	LoggingQuestionIDKey      = "question_id"
	LoggingResponseIDKey      = "response_id"
	LoggingResponseStateKey   = "response_state"
	LoggingUniqueCodeKey      = "unique_code"
	LoggingScoreKey           = "score"
	LoggingRiskLevelKey       = "risk_level"
	LoggingFlaggedKey         = "flagged_for_review"
	LoggingPresetKey          = "preset_key"
	LoggingVersionKey         = "version"
	LoggingFailedCountKey     = "failed_count"
)
