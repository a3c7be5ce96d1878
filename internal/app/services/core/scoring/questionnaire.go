package scoring

import (
	"fmt"
	"strings"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/exceptions"
)

// ValidateQuestionnaire checks a questionnaire definition together with its
// questions before it is stored. Threshold problems keep their own codes.
func ValidateQuestionnaire(questionnaire models.Questionnaire, questions []models.Question) error {
	if strings.TrimSpace(questionnaire.Title) == "" {
		return exceptions.ErrInvalidQuestionnaire("title is empty")
	}
	if !questionnaire.Type.IsValid() {
		return exceptions.ErrInvalidQuestionnaire(fmt.Sprintf("unknown questionnaire type %q", questionnaire.Type))
	}
	if !questionnaire.ScoringMethod.IsValid() {
		return exceptions.ErrInvalidQuestionnaire(fmt.Sprintf("unknown scoring method %q", questionnaire.ScoringMethod))
	}
	if questionnaire.ScorePrecision < 0 || questionnaire.ScorePrecision > models.MaxScorePrecision {
		return exceptions.ErrInvalidQuestionnaire(fmt.Sprintf("score precision %d outside 0..%d", questionnaire.ScorePrecision, models.MaxScorePrecision))
	}

	if len(questionnaire.RiskLevels) > 0 {
		if err := ValidateThresholds(questionnaire.RiskLevels); err != nil {
			return err
		}
	}
	if questionnaire.FlagRiskLevel != "" {
		if _, ok := RiskRank(questionnaire.FlagRiskLevel, questionnaire.RiskLevels); !ok {
			return exceptions.ErrInvalidQuestionnaire(fmt.Sprintf("flag risk level %q is not a configured risk level", questionnaire.FlagRiskLevel))
		}
	}

	orderNums := make(map[int]struct{}, len(questions))
	for _, question := range questions {
		if err := validateQuestion(question); err != nil {
			return exceptions.ErrInvalidQuestionnaire(err.Error())
		}
		if _, ok := orderNums[question.OrderNum]; ok {
			return exceptions.ErrInvalidQuestionnaire(fmt.Sprintf("order_num %d used more than once", question.OrderNum))
		}
		orderNums[question.OrderNum] = struct{}{}
	}
	return nil
}

func validateQuestion(question models.Question) error {
	if strings.TrimSpace(question.Text) == "" {
		return fmt.Errorf("question %d has no text", question.OrderNum)
	}
	if !question.Type.IsValid() {
		return fmt.Errorf("question %d has unknown type %q", question.OrderNum, question.Type)
	}
	if question.ScoringWeight < 0 {
		return fmt.Errorf("question %d has a negative scoring weight", question.OrderNum)
	}
	if question.Type.RequiresOptions() && len(question.Options) == 0 {
		return fmt.Errorf("%s question %d needs at least one option", question.Type, question.OrderNum)
	}

	values := make(map[float64]struct{}, len(question.Options))
	for _, option := range question.Options {
		if _, ok := values[option.Value]; ok {
			return fmt.Errorf("question %d repeats option value %v", question.OrderNum, option.Value)
		}
		values[option.Value] = struct{}{}
	}
	return nil
}
