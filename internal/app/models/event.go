package models

import "time"

type ResponseEvent struct {
	ID               string        `json:"id"`
	Type             string        `json:"type"`
	ResponseID       string        `json:"response_id"`
	QuestionnaireID  string        `json:"questionnaire_id"`
	State            ResponseState `json:"state"`
	Score            *float64      `json:"score,omitempty"`
	RiskLevel        *string       `json:"risk_level,omitempty"`
	FlaggedForReview bool          `json:"flagged_for_review"`
	OccurredAt       time.Time     `json:"occurred_at"`
}

type AnalysisRequest struct {
	ResponseID      string    `json:"response_id"`
	QuestionnaireID string    `json:"questionnaire_id"`
	Score           float64   `json:"score"`
	RiskLevel       string    `json:"risk_level"`
	RequestedAt     time.Time `json:"requested_at"`
}

type QuestionnaireSummary struct {
	QuestionnaireID  string                `json:"questionnaire_id"`
	TotalResponses   int                   `json:"total_responses"`
	ResponsesByState map[ResponseState]int `json:"responses_by_state"`
	FlaggedResponses int                   `json:"flagged_responses"`
	RiskDistribution map[string]int        `json:"risk_distribution"`
	AverageScore     *float64              `json:"average_score,omitempty"`
	GeneratedAt      time.Time             `json:"generated_at"`
}
