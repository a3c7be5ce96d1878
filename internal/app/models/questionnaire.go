package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

type QuestionnaireType string

const (
	QuestionnaireTypeAssessment QuestionnaireType = "assessment"
	QuestionnaireTypeSurvey     QuestionnaireType = "survey"
	QuestionnaireTypeFeedback   QuestionnaireType = "feedback"
	QuestionnaireTypeScreening  QuestionnaireType = "screening"
	QuestionnaireTypeIntake     QuestionnaireType = "intake"
	QuestionnaireTypeCustom     QuestionnaireType = "custom"
)

func (t QuestionnaireType) IsValid() bool {
	switch t {
	case QuestionnaireTypeAssessment, QuestionnaireTypeSurvey, QuestionnaireTypeFeedback,
		QuestionnaireTypeScreening, QuestionnaireTypeIntake, QuestionnaireTypeCustom:
		return true
	}
	return false
}

type ScoringMethod string

const (
	ScoringMethodSum             ScoringMethod = "sum"
	ScoringMethodAverage         ScoringMethod = "average"
	ScoringMethodWeightedAverage ScoringMethod = "weighted_average"
	ScoringMethodCustom          ScoringMethod = "custom"
)

func (m ScoringMethod) IsValid() bool {
	switch m {
	case ScoringMethodSum, ScoringMethodAverage, ScoringMethodWeightedAverage, ScoringMethodCustom:
		return true
	}
	return false
}

const (
	DefaultScorePrecision = 2
	MaxScorePrecision     = 6
)

// RiskThreshold marks the lowest score that belongs to a risk level.
type RiskThreshold struct {
	Label    string  `json:"label" bson:"label"`
	MinScore float64 `json:"min_score" bson:"min_score"`
}

// RiskThresholds is stored as a JSONB column, ordered ascending by MinScore.
type RiskThresholds []RiskThreshold

func (t RiskThresholds) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t)
}

func (t *RiskThresholds) Scan(src interface{}) error {
	return scanJSON(src, t)
}

type Questionnaire struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Type           QuestionnaireType `json:"type"`
	ScoringMethod  ScoringMethod     `json:"scoring_method"`
	RiskLevels     RiskThresholds    `json:"risk_levels"`
	MaxScore       *float64          `json:"max_score,omitempty"`
	PassingScore   *float64          `json:"passing_score,omitempty"`
	FlagRiskLevel  string            `json:"flag_risk_level,omitempty"`
	// ScorePrecision is the number of decimal places kept in a score. Zero is a
	// real setting and rounds to whole numbers; callers building a
	// Questionnaire by hand set DefaultScorePrecision themselves, the way the
	// questionnaire usecase does for requests that omit it.
	ScorePrecision int               `json:"score_precision"`
	OrganizationID string            `json:"organization_id,omitempty"`
	Questions      []Question        `json:"questions,omitempty"`
	TimeModel
}

func scanJSON(src interface{}, dest interface{}) error {
	switch value := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(value, dest)
	case string:
		return json.Unmarshal([]byte(value), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
}
