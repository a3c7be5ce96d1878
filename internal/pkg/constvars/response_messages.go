package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Questionnaire messages
	CreateQuestionnaireSuccessMessage     = "questionnaire created successfully"
	UpdateQuestionnaireSuccessMessage     = "questionnaire updated successfully"
	DeleteQuestionnaireSuccessMessage     = "questionnaire deleted successfully"
	GetQuestionnaireSuccessMessage        = "get questionnaire successfully"
	GetQuestionnairesSuccessMessage       = "get questionnaires successfully"
	GetQuestionnairePresetsMessage        = "get questionnaire presets successfully"
	CreateDistributionLinkSuccessMessage  = "distribution link created successfully"
	GetQuestionnaireSummarySuccessMessage = "get questionnaire summary successfully"
	CreateExportSuccessMessage            = "responses exported successfully"

	// Response messages
	StartResponseSuccessMessage  = "response started successfully"
	RecordAnswerSuccessMessage   = "answer recorded successfully"
	SubmitResponseSuccessMessage = "response submitted successfully"
	ScoreResponseSuccessMessage  = "response scored successfully"
	FlagResponseSuccessMessage   = "response flag updated successfully"
	ReopenResponseSuccessMessage = "response reopened successfully"
	GetResponseSuccessMessage    = "get response successfully"
	GetResponsesSuccessMessage   = "get responses successfully"
	SaveAnalysisSuccessMessage   = "analysis saved successfully"
	GetAnalysisSuccessMessage    = "get analysis successfully"
)
