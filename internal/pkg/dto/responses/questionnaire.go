package responses

import "time"

type RiskLevel struct {
	Label    string  `json:"label"`
	MinScore float64 `json:"min_score"`
}

type QuestionOption struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type Question struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	Type          string           `json:"type"`
	Required      bool             `json:"required"`
	OrderNum      int              `json:"order_num"`
	Options       []QuestionOption `json:"options,omitempty"`
	ScoringWeight float64          `json:"scoring_weight"`
}

type Questionnaire struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Type           string      `json:"type"`
	ScoringMethod  string      `json:"scoring_method"`
	RiskLevels     []RiskLevel `json:"risk_levels"`
	MaxScore       *float64    `json:"max_score,omitempty"`
	PassingScore   *float64    `json:"passing_score,omitempty"`
	FlagRiskLevel  string      `json:"flag_risk_level,omitempty"`
	ScorePrecision int         `json:"score_precision"`
	OrganizationID string      `json:"organization_id,omitempty"`
	Questions      []Question  `json:"questions,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type QuestionnairePreset struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ScoringMethod string      `json:"scoring_method"`
	MaxScore      float64     `json:"max_score"`
	QuestionCount int         `json:"question_count"`
	RiskLevels    []RiskLevel `json:"risk_levels"`
}

type DistributionLink struct {
	QuestionnaireID string    `json:"questionnaire_id"`
	Token           string    `json:"token"`
	URL             string    `json:"url"`
	ExpiresAt       time.Time `json:"expires_at"`
}

type QuestionnaireSummary struct {
	QuestionnaireID  string         `json:"questionnaire_id"`
	TotalResponses   int            `json:"total_responses"`
	ResponsesByState map[string]int `json:"responses_by_state"`
	FlaggedResponses int            `json:"flagged_responses"`
	RiskDistribution map[string]int `json:"risk_distribution"`
	AverageScore     *float64       `json:"average_score,omitempty"`
	GeneratedAt      time.Time      `json:"generated_at"`
}

type ResponseExport struct {
	QuestionnaireID string    `json:"questionnaire_id"`
	ObjectName      string    `json:"object_name"`
	RowCount        int       `json:"row_count"`
	URL             string    `json:"url"`
	ExpiresAt       time.Time `json:"expires_at"`
}
