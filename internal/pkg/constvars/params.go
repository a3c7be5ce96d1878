package constvars

const (
	URLParamQuestionnaireID = "questionnaire_id"
	URLParamResponseID      = "response_id"
	URLParamUniqueCode      = "unique_code"
	URLParamPresetKey       = "preset_key"
	URLParamToken           = "token"
)

const (
	URLQueryParamPage           = "page"
	URLQueryParamPageSize       = "page_size"
	URLQueryParamType           = "type"
	URLQueryParamState          = "state"
	URLQueryParamFlagged        = "flagged"
	URLQueryParamOrganizationID = "organization_id"
	URLQueryParamQuestionnaire  = "questionnaire_id"
)
