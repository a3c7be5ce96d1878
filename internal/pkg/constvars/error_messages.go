package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":           "is required",
	"email":              "must be a valid email",
	"min":                "must be at least %s",
	"max":                "must be at most %s",
	"len":                "must be %s characters long",
	"oneof":              "must be one of [%s]",
	"gt":                 "must be greater than %s",
	"gte":                "must be greater than or equal to %s",
	"lt":                 "must be less than %s",
	"lte":                "must be less than or equal to %s",
	"uuid":               "must be a valid UUID",
	"dive":               "contains an invalid item",
	"questionnaire_type": "must be one of [assessment, survey, feedback, screening, intake, custom]",
	"scoring_method":     "must be one of [sum, average, weighted_average, custom]",
	"question_type":      "must be one of [text, single_choice, multiple_choice, rating, yes_no, scale, date]",
	"response_state":     "must be one of [draft, in_progress, completed, scored]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientRequestBodyTooLarge           = "the request body is too large"
	ErrClientRouteNotFound                 = "the requested endpoint does not exist"

	ErrClientInvalidTransition          = "this action is not allowed in the current response state"
	ErrClientResponseAlreadyScored      = "this response has already been scored and can no longer be edited"
	ErrClientResponseLocked             = "this response is being updated by another request, please retry"
	ErrClientResponseVersionConflict    = "this response was modified concurrently, please reload and retry"
	ErrClientInvalidAnswerValue         = "the answer value is not valid for this question"
	ErrClientMissingRequiredAnswer      = "a required question has not been answered"
	ErrClientQuestionNotInQuestionnaire = "the question does not belong to this questionnaire"
	ErrClientInvalidQuestionnaire       = "the questionnaire configuration is not valid"
	ErrClientUnsupportedScoringMethod   = "the questionnaire scoring method cannot be computed automatically"
	ErrClientScoreBelowAllThresholds    = "the score does not fall into any configured risk level"
	ErrClientDuplicateThreshold         = "the questionnaire has two risk levels with the same minimum score"
	ErrClientThresholdsNotAscending     = "the questionnaire risk levels are not in ascending order"
	ErrClientQuestionnaireHasResponses  = "the questionnaire already has responses and can no longer be changed"
	ErrClientInvalidDistributionLink    = "the questionnaire link is invalid or expired"
	ErrClientUnknownPreset              = "the requested questionnaire preset does not exist"
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevCannotParseJSON             = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON           = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat               = "invalid %s format"
	ErrDevMissingRequestID            = "request ID not found in context"
	ErrDevURLParamValidationFailed    = "parameter %s validation failed"
	ErrDevValidationFailed            = "validation failed"
	ErrDevQueryParamValidationFailed  = "query parameter %s validation failed"
	ErrDevResourceNotFound            = "%s with id %s not found"
	ErrDevTooManyRequests             = "client %s is throttled until %s"
	ErrDevRequestBodyTooLarge         = "request body exceeds %d bytes"
	ErrDevRouteNotFound               = "no route for %s %s"
	ErrDevPanicRecovered              = "recovered from panic"
	ErrDevResourceNotFoundByCode      = "%s with code %s not found"
	ErrDevServerProcess               = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded      = "deadline exceeded"
	ErrDevCSVWrite                    = "failed to write CSV export"
	ErrDevGenerateUniqueCode          = "failed to generate response unique code"
	ErrDevGenerateDistributionToken   = "failed to sign distribution token"
	ErrDevDistributionTokenInvalid    = "distribution token invalid or expired"
	ErrDevDistributionTokenWrongClaim = "distribution token carries an unexpected subject"
	ErrDevUnknownPreset               = "questionnaire preset %s is not registered"

	// Domain messages
	ErrDevInvalidTransition          = "cannot %s a response in state %s"
	ErrDevResponseAlreadyScored      = "response %s is already scored"
	ErrDevResponseLocked             = "response %s is locked by another writer"
	ErrDevResponseVersionConflict    = "response %s version %d is stale"
	ErrDevInvalidAnswerValue         = "invalid answer value for question %s: %s"
	ErrDevMissingRequiredAnswer      = "required question %s has no answer"
	ErrDevQuestionNotInQuestionnaire = "question %s does not belong to questionnaire %s"
	ErrDevInvalidQuestionnaire       = "invalid questionnaire: %s"
	ErrDevUnsupportedScoringMethod   = "scoring method %s is not supported by the generic engine"
	ErrDevScoreBelowAllThresholds    = "score %s is below all risk thresholds"
	ErrDevNoThresholdsConfigured     = "no risk thresholds configured"
	ErrDevDuplicateThreshold         = "risk thresholds %q and %q share min_score %s"
	ErrDevThresholdsNotAscending     = "risk threshold %q (min_score %s) follows a higher min_score"
	ErrDevQuestionnaireHasResponses  = "questionnaire %s has %d responses"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToInsertData       = "failed to insert data into database"
	ErrDevDBFailedToUpdateData       = "failed to update data in database"
	ErrDevDBFailedToFindData         = "failed when do find data on database"
	ErrDevDBFailedToDeleteData       = "failed when do delete data on database"
	ErrDevDBFailedToIterateDataset   = "failed when iterating dataset from database"
	ErrDevDBFailedToBeginTransaction = "failed to begin database transaction"
	ErrDevDBFailedToCommit           = "failed to commit database transaction"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisGetNoData  = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE key in redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitMQ queue '%s'"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
