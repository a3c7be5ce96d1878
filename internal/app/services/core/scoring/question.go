package scoring

import (
	"fmt"

	"mindscreen-service/internal/app/models"
)

// ValidateValue reports whether value is structurally valid for question.
func ValidateValue(question models.Question, value models.AnswerValue) bool {
	return CheckValue(question, value) == nil
}

// CheckValue is ValidateValue with the reason a value was rejected.
func CheckValue(question models.Question, value models.AnswerValue) error {
	expected := question.Type.AnswerKind()
	if expected == "" {
		return fmt.Errorf("question type %q is unknown", question.Type)
	}
	if value.Kind != expected {
		return fmt.Errorf("%s question expects a %s value, got %s", question.Type, expected, value.Kind)
	}

	switch value.Kind {
	case models.AnswerKindText:
		if value.Text == "" {
			return fmt.Errorf("text answer is empty")
		}
	case models.AnswerKindChoice, models.AnswerKindNumeric:
		if !question.Options.Contains(value.Number) {
			return fmt.Errorf("value %v is not one of the question options", value.Number)
		}
	case models.AnswerKindMultiChoice:
		if len(value.Numbers) == 0 {
			return fmt.Errorf("no option selected")
		}
		seen := make(map[float64]struct{}, len(value.Numbers))
		for _, number := range value.Numbers {
			if !question.Options.Contains(number) {
				return fmt.Errorf("value %v is not one of the question options", number)
			}
			if _, ok := seen[number]; ok {
				return fmt.Errorf("value %v selected more than once", number)
			}
			seen[number] = struct{}{}
		}
	case models.AnswerKindDate:
		if value.Date.IsZero() {
			return fmt.Errorf("date answer is empty")
		}
	}
	return nil
}

// Contributes reports whether question takes part in the score: it has a
// non-zero weight and a type with numeric meaning.
func Contributes(question models.Question) bool {
	if question.ScoringWeight == 0 {
		return false
	}
	switch question.Type {
	case models.QuestionTypeSingleChoice, models.QuestionTypeRating, models.QuestionTypeScale,
		models.QuestionTypeMultipleChoice, models.QuestionTypeYesNo:
		return true
	}
	return false
}

// NumericValueOf maps a valid answer to its scoring number. The boolean is
// false for types with no numeric meaning.
func NumericValueOf(question models.Question, value models.AnswerValue) (float64, bool) {
	switch question.Type {
	case models.QuestionTypeSingleChoice, models.QuestionTypeRating, models.QuestionTypeScale:
		return value.Number, true
	case models.QuestionTypeMultipleChoice:
		var total float64
		for _, number := range value.Numbers {
			total += number
		}
		return total, true
	case models.QuestionTypeYesNo:
		if value.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
