package reports

import (
	"time"

	"mindscreen-service/internal/app/models"

	"github.com/shopspring/decimal"
)

var allStates = []models.ResponseState{
	models.ResponseStateDraft,
	models.ResponseStateInProgress,
	models.ResponseStateCompleted,
	models.ResponseStateScored,
}

// summarize aggregates the responses of one questionnaire. Every state and
// every configured risk level is present, zero counts included.
func summarize(questionnaire models.Questionnaire, all []models.Response, generatedAt time.Time) models.QuestionnaireSummary {
	summary := models.QuestionnaireSummary{
		QuestionnaireID:  questionnaire.ID,
		TotalResponses:   len(all),
		ResponsesByState: make(map[models.ResponseState]int, len(allStates)),
		RiskDistribution: make(map[string]int, len(questionnaire.RiskLevels)),
		GeneratedAt:      generatedAt,
	}
	for _, state := range allStates {
		summary.ResponsesByState[state] = 0
	}
	for _, threshold := range questionnaire.RiskLevels {
		summary.RiskDistribution[threshold.Label] = 0
	}

	total := decimal.Zero
	scored := 0
	for _, response := range all {
		summary.ResponsesByState[response.State]++
		if response.FlaggedForReview {
			summary.FlaggedResponses++
		}
		if response.State != models.ResponseStateScored || response.Score == nil {
			continue
		}
		if response.RiskLevel != nil {
			summary.RiskDistribution[*response.RiskLevel]++
		}
		total = total.Add(decimal.NewFromFloat(*response.Score))
		scored++
	}

	if scored > 0 {
		precision := questionnaire.ScorePrecision
		if precision < 0 || precision > models.MaxScorePrecision {
			precision = models.DefaultScorePrecision
		}
		average, _ := total.Div(decimal.NewFromInt(int64(scored))).Round(int32(precision)).Float64()
		summary.AverageScore = &average
	}
	return summary
}
