package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/utils"
)

var exportFixedColumns = []string{
	"response_id",
	"unique_code",
	"state",
	"score",
	"risk_level",
	"flagged_for_review",
	"completed_at",
}

// writeResponsesCSV writes one row per response followed by one column per
// question in order_num order. Unanswered questions stay empty.
func writeResponsesCSV(w io.Writer, questions []models.Question, all []models.Response, answers map[string][]models.Answer) error {
	ordered := make([]models.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderNum < ordered[j].OrderNum
	})

	writer := csv.NewWriter(w)

	header := append([]string(nil), exportFixedColumns...)
	for _, question := range ordered {
		header = append(header, utils.SanitizeSpreadsheetCell(fmt.Sprintf("%d. %s", question.OrderNum, question.Text)))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, response := range all {
		byQuestion := make(map[string]models.AnswerValue, len(answers[response.ID]))
		for _, answer := range answers[response.ID] {
			byQuestion[answer.QuestionID] = answer.Value
		}

		row := []string{
			response.ID,
			response.UniqueCode,
			string(response.State),
			"",
			"",
			strconv.FormatBool(response.FlaggedForReview),
			"",
		}
		if response.Score != nil {
			row[3] = strconv.FormatFloat(*response.Score, 'f', -1, 64)
		}
		if response.RiskLevel != nil {
			row[4] = utils.SanitizeSpreadsheetCell(*response.RiskLevel)
		}
		if response.CompletedAt != nil {
			row[6] = response.CompletedAt.UTC().Format(time.RFC3339)
		}

		for _, question := range ordered {
			value, ok := byQuestion[question.ID]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, utils.SanitizeSpreadsheetCell(value.String()))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
