package utils

import (
	"strconv"
	"strings"

	"mindscreen-service/internal/pkg/dto/requests"
)

func SanitizeRespondent(input *requests.Respondent) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Gender = strings.TrimSpace(strings.ToLower(input.Gender))
}

func SanitizeUpsertQuestionnaireRequest(input *requests.UpsertQuestionnaire) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Type = strings.TrimSpace(strings.ToLower(input.Type))
	input.ScoringMethod = strings.TrimSpace(strings.ToLower(input.ScoringMethod))
	input.FlagRiskLevel = strings.TrimSpace(input.FlagRiskLevel)
	input.OrganizationID = strings.TrimSpace(input.OrganizationID)

	for i := range input.RiskLevels {
		input.RiskLevels[i].Label = strings.TrimSpace(input.RiskLevels[i].Label)
	}
	for i := range input.Questions {
		input.Questions[i].Text = strings.TrimSpace(input.Questions[i].Text)
		input.Questions[i].Type = strings.TrimSpace(strings.ToLower(input.Questions[i].Type))
		for j := range input.Questions[i].Options {
			input.Questions[i].Options[j].Label = strings.TrimSpace(input.Questions[i].Options[j].Label)
		}
	}
}

func SanitizeRecordAnswerRequest(input *requests.RecordAnswer) {
	input.QuestionID = strings.TrimSpace(input.QuestionID)
}

// SanitizeSpreadsheetCell prefixes a quote to text a spreadsheet would run as
// a formula. Plain numbers such as "-1" are left alone.
func SanitizeSpreadsheetCell(value string) string {
	if value == "" || !strings.ContainsRune("=+-@\t\r", rune(value[0])) {
		return value
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return value
	}
	return "'" + value
}
