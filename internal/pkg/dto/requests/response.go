package requests

import "github.com/goccy/go-json"

type Respondent struct {
	Name   string `json:"name" validate:"max=255"`
	Email  string `json:"email" validate:"omitempty,email"`
	Age    *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender string `json:"gender" validate:"max=50"`
}

type StartResponse struct {
	QuestionnaireID string     `json:"questionnaire_id" validate:"required"`
	Respondent      Respondent `json:"respondent"`
}

type StartPublicResponse struct {
	Token      string     `json:"-" validate:"required"`
	Respondent Respondent `json:"respondent"`
}

type RecordAnswer struct {
	ResponseID string          `json:"-"`
	QuestionID string          `json:"question_id" validate:"required"`
	Value      json.RawMessage `json:"value" validate:"required"`
}

type SetFlag struct {
	ResponseID string `json:"-"`
	Flagged    *bool  `json:"flagged" validate:"required"`
}

type FindAllResponses struct {
	QuestionnaireID string `validate:"omitempty"`
	State           string `validate:"omitempty,response_state"`
	Flagged         *bool
	Pagination
}
