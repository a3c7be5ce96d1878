package constvars

type ContextKey string

const (
	ResourceQuestionnaires       = "questionnaires"
	ResourceQuestionnairePresets = "questionnaire-presets"
	ResourceResponses            = "responses"
	ResourcePublic               = "public"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPage         = 1
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "MNDSCR_SVC_"
)

const DefaultRescoreBatchSize = 100

const (
	UniqueCodeLength   = 10
	UniqueCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Redis key formats
const (
	RedisKeyResponseLock         = "response:lock:%s"
	RedisKeyResponseUniqueCode   = "response:code:%s"
	RedisKeyQuestionnaireSummary = "questionnaire:summary:%s"
	RedisKeyRescoringLeader      = "rescoring:leader"
)

const (
	MongoCollectionAnalyses = "analyses"
)

const (
	EventResponseSubmitted = "response.submitted"
	EventResponseScored    = "response.scored"
	EventResponseFlagged   = "response.flagged"
	EventResponseReopened  = "response.reopened"
)

const (
	DistributionLinkPathFormat = "%s/r/%s"
	DistributionTokenSubject   = "questionnaire_distribution"
)

const (
	EmailReviewerFlaggedSubject = "[MINDSCREEN] Response flagged for review"
	EmailReviewerFlaggedBody    = "Response %s for questionnaire %q was flagged for review with risk level %q and score %s."
)
