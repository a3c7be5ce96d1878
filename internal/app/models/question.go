package models

import (
	"database/sql/driver"

	"github.com/goccy/go-json"
)

type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeRating         QuestionType = "rating"
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeDate           QuestionType = "date"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeSingleChoice, QuestionTypeMultipleChoice,
		QuestionTypeRating, QuestionTypeYesNo, QuestionTypeScale, QuestionTypeDate:
		return true
	}
	return false
}

// RequiresOptions reports whether questions of this type must carry a non-empty option list.
func (t QuestionType) RequiresOptions() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeRating, QuestionTypeScale:
		return true
	}
	return false
}

// HasNumericMeaning is false for free text and dates.
func (t QuestionType) HasNumericMeaning() bool {
	return t != QuestionTypeText && t != QuestionTypeDate
}

// AnswerKind is the AnswerValue variant a question of this type accepts.
func (t QuestionType) AnswerKind() AnswerKind {
	switch t {
	case QuestionTypeText:
		return AnswerKindText
	case QuestionTypeSingleChoice:
		return AnswerKindChoice
	case QuestionTypeMultipleChoice:
		return AnswerKindMultiChoice
	case QuestionTypeRating, QuestionTypeScale:
		return AnswerKindNumeric
	case QuestionTypeYesNo:
		return AnswerKindBoolean
	case QuestionTypeDate:
		return AnswerKindDate
	}
	return ""
}

// DefaultScoringWeight is 1, except for types without numeric meaning.
func (t QuestionType) DefaultScoringWeight() float64 {
	if !t.HasNumericMeaning() {
		return 0
	}
	return 1
}

type QuestionOption struct {
	Value float64 `json:"value" bson:"value"`
	Label string  `json:"label" bson:"label"`
}

type QuestionOptions []QuestionOption

func (o QuestionOptions) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

func (o *QuestionOptions) Scan(src interface{}) error {
	return scanJSON(src, o)
}

// Contains reports whether value is one of the option values.
func (o QuestionOptions) Contains(value float64) bool {
	for _, option := range o {
		if option.Value == value {
			return true
		}
	}
	return false
}

type Question struct {
	ID              string          `json:"id"`
	QuestionnaireID string          `json:"questionnaire_id"`
	Text            string          `json:"text"`
	Type            QuestionType    `json:"type"`
	Required        bool            `json:"required"`
	OrderNum        int             `json:"order_num"`
	Options         QuestionOptions `json:"options,omitempty"`
	ScoringWeight   float64         `json:"scoring_weight"`
	TimeModel
}
