package scoring

import (
	"sort"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
)

type ScoreOutcome struct {
	Score                     float64  `json:"score"`
	ContributingQuestionCount int      `json:"contributing_question_count"`
	MaxScore                  *float64 `json:"max_score,omitempty"`
	Passed                    *bool    `json:"passed,omitempty"`
}

// ComputeScore combines the answers of one response into a single score using
// the questionnaire scoring method. It never reads or writes response state.
func ComputeScore(questionnaire models.Questionnaire, questions []models.Question, answers []models.Answer) (*ScoreOutcome, error) {
	ordered := make([]models.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderNum < ordered[j].OrderNum
	})

	byID := make(map[string]models.Question, len(ordered))
	for _, question := range ordered {
		if question.QuestionnaireID != questionnaire.ID {
			return nil, exceptions.ErrQuestionNotInQuestionnaire(question.ID, questionnaire.ID)
		}
		byID[question.ID] = question
	}

	answerByQuestion := make(map[string]models.Answer, len(answers))
	for _, answer := range answers {
		if _, ok := byID[answer.QuestionID]; !ok {
			return nil, exceptions.ErrQuestionNotInQuestionnaire(answer.QuestionID, questionnaire.ID)
		}
		if _, duplicated := answerByQuestion[answer.QuestionID]; duplicated {
			return nil, exceptions.ErrInvalidAnswerValue(answer.QuestionID, "more than one answer recorded")
		}
		answerByQuestion[answer.QuestionID] = answer
	}

	sum := decimal.Zero
	weights := decimal.Zero
	contributing := 0

	for _, question := range ordered {
		answer, answered := answerByQuestion[question.ID]
		if !answered && question.Required {
			return nil, exceptions.ErrMissingRequiredAnswer(question.ID)
		}
		if answered {
			if err := CheckValue(question, answer.Value); err != nil {
				return nil, exceptions.ErrInvalidAnswerValue(question.ID, err.Error())
			}
		}
		if !Contributes(question) {
			continue
		}

		// a skipped optional question still counts toward the divisor with 0
		var numeric float64
		if answered {
			numeric, _ = NumericValueOf(question, answer.Value)
		}

		weight := decimal.NewFromFloat(question.ScoringWeight)
		sum = sum.Add(decimal.NewFromFloat(numeric).Mul(weight))
		weights = weights.Add(weight)
		contributing++
	}

	var combined decimal.Decimal
	switch questionnaire.ScoringMethod {
	case models.ScoringMethodSum:
		combined = sum
	case models.ScoringMethodAverage:
		if contributing > 0 {
			combined = sum.Div(decimal.NewFromInt(int64(contributing)))
		}
	case models.ScoringMethodWeightedAverage:
		if !weights.IsZero() {
			combined = sum.Div(weights)
		}
	default:
		return nil, exceptions.ErrUnsupportedScoringMethod(string(questionnaire.ScoringMethod))
	}

	score, _ := combined.Round(precisionOf(questionnaire)).Float64()
	outcome := &ScoreOutcome{
		Score:                     score,
		ContributingQuestionCount: contributing,
		MaxScore:                  questionnaire.MaxScore,
	}
	if questionnaire.PassingScore != nil {
		passed := score >= *questionnaire.PassingScore
		outcome.Passed = &passed
	}
	return outcome, nil
}

func precisionOf(questionnaire models.Questionnaire) int32 {
	switch {
	case questionnaire.ScorePrecision < 0:
		return 0
	case questionnaire.ScorePrecision > models.MaxScorePrecision:
		return models.MaxScorePrecision
	}
	return int32(questionnaire.ScorePrecision)
}
