package models

import "time"

type ResponseState string

const (
	ResponseStateDraft      ResponseState = "draft"
	ResponseStateInProgress ResponseState = "in_progress"
	ResponseStateCompleted  ResponseState = "completed"
	ResponseStateScored     ResponseState = "scored"
)

func (s ResponseState) IsValid() bool {
	switch s {
	case ResponseStateDraft, ResponseStateInProgress, ResponseStateCompleted, ResponseStateScored:
		return true
	}
	return false
}

type Respondent struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

type Response struct {
	ID               string        `json:"id"`
	QuestionnaireID  string        `json:"questionnaire_id"`
	Respondent       Respondent    `json:"respondent"`
	UniqueCode       string        `json:"unique_code"`
	State            ResponseState `json:"state"`
	Score            *float64      `json:"score,omitempty"`
	RiskLevel        *string       `json:"risk_level,omitempty"`
	FlaggedForReview bool          `json:"flagged_for_review"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
	ScoredAt         *time.Time    `json:"scored_at,omitempty"`
	Version          int           `json:"version"`
	Answers          []Answer      `json:"answers,omitempty"`
	TimeModel
}

// Clone returns a copy whose answers and nullable fields can be changed
// without touching the receiver.
func (r *Response) Clone() *Response {
	clone := *r
	clone.Answers = make([]Answer, len(r.Answers))
	for i, answer := range r.Answers {
		clone.Answers[i] = answer.clone()
	}
	if r.Score != nil {
		score := *r.Score
		clone.Score = &score
	}
	if r.RiskLevel != nil {
		riskLevel := *r.RiskLevel
		clone.RiskLevel = &riskLevel
	}
	if r.CompletedAt != nil {
		completedAt := *r.CompletedAt
		clone.CompletedAt = &completedAt
	}
	if r.ScoredAt != nil {
		scoredAt := *r.ScoredAt
		clone.ScoredAt = &scoredAt
	}
	if r.Respondent.Age != nil {
		age := *r.Respondent.Age
		clone.Respondent.Age = &age
	}
	return &clone
}

// AnswerFor returns the answer recorded for questionID.
func (r *Response) AnswerFor(questionID string) (*Answer, bool) {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i], true
		}
	}
	return nil, false
}

func (r *Response) IsScored() bool {
	return r.State == ResponseStateScored
}

type Answer struct {
	ID         string      `json:"id"`
	ResponseID string      `json:"response_id"`
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
	AnsweredAt time.Time   `json:"answered_at"`
	TimeModel
}

func (a Answer) clone() Answer {
	a.Value.Numbers = append([]float64(nil), a.Value.Numbers...)
	return a
}

// ResponseCursor is the last row of a page ordered by (updated_at, id). The
// zero value starts at the first row.
type ResponseCursor struct {
	UpdatedAt time.Time
	ID        string
}

func (c ResponseCursor) IsZero() bool {
	return c.ID == ""
}

// ResponseFilter narrows a response listing.
type ResponseFilter struct {
	QuestionnaireID string
	State           ResponseState
	Flagged         *bool
	Limit           int
	Offset          int
}

type QuestionnaireFilter struct {
	Type           QuestionnaireType
	OrganizationID string
	Limit          int
	Offset         int
}
