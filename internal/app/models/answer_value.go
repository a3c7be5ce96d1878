package models

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type AnswerKind string

const (
	AnswerKindText        AnswerKind = "text"
	AnswerKindChoice      AnswerKind = "choice"
	AnswerKindMultiChoice AnswerKind = "multi_choice"
	AnswerKindNumeric     AnswerKind = "numeric"
	AnswerKindBoolean     AnswerKind = "boolean"
	AnswerKindDate        AnswerKind = "date"
)

const AnswerDateLayout = "2006-01-02"

var ErrEmptyAnswerValue = errors.New("answer value is empty")

// AnswerValue is a tagged union. Only the field matching Kind is meaningful:
// Text for text, Number for choice and numeric, Numbers for multi_choice,
// Bool for boolean and Date for date.
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Number  float64
	Numbers []float64
	Bool    bool
	Date    time.Time
}

func TextValue(text string) AnswerValue {
	return AnswerValue{Kind: AnswerKindText, Text: text}
}

func ChoiceValue(value float64) AnswerValue {
	return AnswerValue{Kind: AnswerKindChoice, Number: value}
}

func MultiChoiceValue(values ...float64) AnswerValue {
	return AnswerValue{Kind: AnswerKindMultiChoice, Numbers: append([]float64(nil), values...)}
}

func NumericValue(value float64) AnswerValue {
	return AnswerValue{Kind: AnswerKindNumeric, Number: value}
}

func BooleanValue(value bool) AnswerValue {
	return AnswerValue{Kind: AnswerKindBoolean, Bool: value}
}

func DateValue(value time.Time) AnswerValue {
	y, m, d := value.Date()
	return AnswerValue{Kind: AnswerKindDate, Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseAnswerValue builds the variant a question of questionType accepts from
// the untagged JSON a client submits.
func ParseAnswerValue(questionType QuestionType, raw []byte) (AnswerValue, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return AnswerValue{}, ErrEmptyAnswerValue
	}

	switch questionType {
	case QuestionTypeText:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return AnswerValue{}, fmt.Errorf("text answer must be a string: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return AnswerValue{}, ErrEmptyAnswerValue
		}
		return TextValue(text), nil

	case QuestionTypeSingleChoice:
		number, err := decodeNumber(raw)
		if err != nil {
			return AnswerValue{}, fmt.Errorf("single choice answer must be an option value: %w", err)
		}
		return ChoiceValue(number), nil

	case QuestionTypeMultipleChoice:
		var numbers []float64
		if err := json.Unmarshal(raw, &numbers); err != nil {
			return AnswerValue{}, fmt.Errorf("multiple choice answer must be a list of option values: %w", err)
		}
		value := MultiChoiceValue(numbers...)
		if err := value.checkSet(); err != nil {
			return AnswerValue{}, err
		}
		return value, nil

	case QuestionTypeRating, QuestionTypeScale:
		number, err := decodeNumber(raw)
		if err != nil {
			return AnswerValue{}, fmt.Errorf("%s answer must be a number: %w", questionType, err)
		}
		return NumericValue(number), nil

	case QuestionTypeYesNo:
		return parseYesNo(raw)

	case QuestionTypeDate:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return AnswerValue{}, fmt.Errorf("date answer must be a string: %w", err)
		}
		date, err := parseDate(text)
		if err != nil {
			return AnswerValue{}, err
		}
		return DateValue(date), nil
	}

	return AnswerValue{}, fmt.Errorf("unknown question type %q", questionType)
}

func decodeNumber(raw []byte) (float64, error) {
	var number float64
	if err := json.Unmarshal(raw, &number); err != nil {
		return 0, err
	}
	return number, nil
}

func parseYesNo(raw []byte) (AnswerValue, error) {
	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		return BooleanValue(flag), nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return AnswerValue{}, fmt.Errorf("yes/no answer must be a boolean or \"yes\"/\"no\": %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes":
		return BooleanValue(true), nil
	case "no":
		return BooleanValue(false), nil
	}
	return AnswerValue{}, fmt.Errorf("yes/no answer %q is neither yes nor no", text)
}

func parseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if date, err := time.Parse(AnswerDateLayout, text); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("date answer %q must be YYYY-MM-DD or RFC3339", text)
	}
	return date, nil
}

func (v AnswerValue) checkSet() error {
	if len(v.Numbers) == 0 {
		return errors.New("multiple choice answer must select at least one option")
	}
	seen := make(map[float64]struct{}, len(v.Numbers))
	for _, number := range v.Numbers {
		if _, ok := seen[number]; ok {
			return fmt.Errorf("option value %v selected more than once", number)
		}
		seen[number] = struct{}{}
	}
	return nil
}

// Raw returns the untagged payload, the inverse of ParseAnswerValue.
func (v AnswerValue) Raw() interface{} {
	switch v.Kind {
	case AnswerKindText:
		return v.Text
	case AnswerKindChoice, AnswerKindNumeric:
		return v.Number
	case AnswerKindMultiChoice:
		return v.Numbers
	case AnswerKindBoolean:
		return v.Bool
	case AnswerKindDate:
		return v.Date.Format(AnswerDateLayout)
	}
	return nil
}

// String renders the value for exports.
func (v AnswerValue) String() string {
	switch v.Kind {
	case AnswerKindText:
		return v.Text
	case AnswerKindChoice, AnswerKindNumeric:
		return formatNumber(v.Number)
	case AnswerKindMultiChoice:
		parts := make([]string, len(v.Numbers))
		for i, number := range v.Numbers {
			parts[i] = formatNumber(number)
		}
		return strings.Join(parts, ";")
	case AnswerKindBoolean:
		if v.Bool {
			return "yes"
		}
		return "no"
	case AnswerKindDate:
		return v.Date.Format(AnswerDateLayout)
	}
	return ""
}

func formatNumber(number float64) string {
	return fmt.Sprintf("%g", number)
}

type answerValueJSON struct {
	Kind  AnswerKind      `json:"kind"`
	Value json.RawMessage `json:"value"`
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	value, err := json.Marshal(v.Raw())
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerValueJSON{Kind: v.Kind, Value: value})
}

func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var tagged answerValueJSON
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}

	var questionType QuestionType
	switch tagged.Kind {
	case AnswerKindText:
		questionType = QuestionTypeText
	case AnswerKindChoice:
		questionType = QuestionTypeSingleChoice
	case AnswerKindMultiChoice:
		questionType = QuestionTypeMultipleChoice
	case AnswerKindNumeric:
		questionType = QuestionTypeRating
	case AnswerKindBoolean:
		questionType = QuestionTypeYesNo
	case AnswerKindDate:
		questionType = QuestionTypeDate
	default:
		return fmt.Errorf("unknown answer kind %q", tagged.Kind)
	}

	parsed, err := ParseAnswerValue(questionType, tagged.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v AnswerValue) Value() (driver.Value, error) {
	return v.MarshalJSON()
}

func (v *AnswerValue) Scan(src interface{}) error {
	return scanJSON(src, v)
}
