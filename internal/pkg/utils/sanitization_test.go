package utils

import (
	"testing"

	"mindscreen-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRespondent(t *testing.T) {
	t.Run("Email Sanitization", func(t *testing.T) {
		request := &requests.Respondent{Email: "  Jane.Doe@EXAMPLE.COM  "}

		SanitizeRespondent(request)

		assert.Equal(t, "jane.doe@example.com", request.Email, "email should be lowercase and trimmed")
	})

	t.Run("Name And Gender Sanitization", func(t *testing.T) {
		request := &requests.Respondent{Name: "  Jane Doe ", Gender: " Female "}

		SanitizeRespondent(request)

		assert.Equal(t, "Jane Doe", request.Name, "name should keep its case")
		assert.Equal(t, "female", request.Gender)
	})
}

func TestSanitizeUpsertQuestionnaireRequest(t *testing.T) {
	request := &requests.UpsertQuestionnaire{
		Title:         "  PHQ-9 ",
		Type:          " Screening",
		ScoringMethod: "SUM ",
		FlagRiskLevel: " severe ",
		RiskLevels:    []requests.RiskLevel{{Label: " minimal "}},
		Questions: []requests.CreateQuestion{
			{
				Text:    " Feeling down ",
				Type:    " Single_Choice ",
				Options: []requests.QuestionOption{{Label: " Not at all "}},
			},
		},
	}

	SanitizeUpsertQuestionnaireRequest(request)

	assert.Equal(t, "PHQ-9", request.Title)
	assert.Equal(t, "screening", request.Type)
	assert.Equal(t, "sum", request.ScoringMethod)
	assert.Equal(t, "severe", request.FlagRiskLevel)
	assert.Equal(t, "minimal", request.RiskLevels[0].Label)
	assert.Equal(t, "Feeling down", request.Questions[0].Text)
	assert.Equal(t, "single_choice", request.Questions[0].Type)
	assert.Equal(t, "Not at all", request.Questions[0].Options[0].Label)
}

func TestSanitizeSpreadsheetCell(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain text", input: "tired lately", expected: "tired lately"},
		{name: "formula", input: "=HYPERLINK(\"http://x\")", expected: "'=HYPERLINK(\"http://x\")"},
		{name: "plus", input: "+1 555 0100 call me", expected: "'+1 555 0100 call me"},
		{name: "at", input: "@SUM(A1:A2)", expected: "'@SUM(A1:A2)"},
		{name: "leading tab", input: "\t=1+1", expected: "'\t=1+1"},
		{name: "negative number", input: "-1", expected: "-1"},
		{name: "dash text", input: "-cmd", expected: "'-cmd"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeSpreadsheetCell(tc.input))
		})
	}
}
