package responses

import (
	"time"

	"github.com/goccy/go-json"
)

type Respondent struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

type Answer struct {
	QuestionID string          `json:"question_id"`
	Kind       string          `json:"kind"`
	Value      json.RawMessage `json:"value"`
	AnsweredAt time.Time       `json:"answered_at"`
}

type Response struct {
	ID               string     `json:"id"`
	QuestionnaireID  string     `json:"questionnaire_id"`
	Respondent       Respondent `json:"respondent"`
	UniqueCode       string     `json:"unique_code"`
	State            string     `json:"state"`
	Score            *float64   `json:"score"`
	RiskLevel        *string    `json:"risk_level"`
	FlaggedForReview bool       `json:"flagged_for_review"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	ScoredAt         *time.Time `json:"scored_at,omitempty"`
	Version          int        `json:"version"`
	Answers          []Answer   `json:"answers"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// PublicResponse is what an anonymous respondent sees through the unique code.
// Score and risk stay with the staff.
type PublicResponse struct {
	UniqueCode      string     `json:"unique_code"`
	State           string     `json:"state"`
	QuestionnaireID string     `json:"questionnaire_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Questions       []Question `json:"questions"`
	Answers         []Answer   `json:"answers"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type Analysis struct {
	ResponseID string                 `json:"response_id"`
	Payload    map[string]interface{} `json:"payload"`
	ReceivedAt time.Time              `json:"received_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
