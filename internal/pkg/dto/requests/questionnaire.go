package requests

type RiskLevel struct {
	Label    string   `json:"label" validate:"required,max=100"`
	MinScore *float64 `json:"min_score" validate:"required"`
}

type QuestionOption struct {
	Value *float64 `json:"value" validate:"required"`
	Label string   `json:"label" validate:"max=255"`
}

type CreateQuestion struct {
	Text          string           `json:"text" validate:"required"`
	Type          string           `json:"type" validate:"required,question_type"`
	Required      bool             `json:"required"`
	OrderNum      int              `json:"order_num" validate:"gte=0"`
	Options       []QuestionOption `json:"options" validate:"dive"`
	ScoringWeight *float64         `json:"scoring_weight" validate:"omitempty,gte=0"`
}

type UpsertQuestionnaire struct {
	QuestionnaireID string           `json:"-"`
	Title           string           `json:"title" validate:"required,max=255"`
	Description     string           `json:"description"`
	Type            string           `json:"type" validate:"required,questionnaire_type"`
	ScoringMethod   string           `json:"scoring_method" validate:"required,scoring_method"`
	RiskLevels      []RiskLevel      `json:"risk_levels" validate:"dive"`
	MaxScore        *float64         `json:"max_score" validate:"omitempty,gte=0"`
	PassingScore    *float64         `json:"passing_score"`
	FlagRiskLevel   string           `json:"flag_risk_level"`
	ScorePrecision  *int             `json:"score_precision" validate:"omitempty,gte=0,lte=6"`
	OrganizationID  string           `json:"organization_id"`
	Questions       []CreateQuestion `json:"questions" validate:"required,min=1,dive"`
}

type FindAllQuestionnaires struct {
	Type           string `validate:"omitempty,questionnaire_type"`
	OrganizationID string
	Pagination
}

type CreateQuestionnaireFromPreset struct {
	PresetKey      string `json:"-"`
	OrganizationID string `json:"organization_id"`
}

type CreateDistributionLink struct {
	QuestionnaireID string `json:"-"`
	ExpiresInHours  int    `json:"expires_in_hours" validate:"omitempty,gte=1,lte=8760"`
}
