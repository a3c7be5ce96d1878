package scoring

import (
	"strconv"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/exceptions"
)

// ValidateThresholds checks that thresholds are non-empty and strictly ascending.
func ValidateThresholds(thresholds []models.RiskThreshold) error {
	if len(thresholds) == 0 {
		return exceptions.ErrNoThresholdsConfigured()
	}
	for i := 1; i < len(thresholds); i++ {
		previous, current := thresholds[i-1], thresholds[i]
		switch {
		case current.MinScore == previous.MinScore:
			return exceptions.ErrDuplicateThreshold(previous.Label, current.Label, formatScore(current.MinScore))
		case current.MinScore < previous.MinScore:
			return exceptions.ErrThresholdsNotAscending(current.Label, formatScore(current.MinScore))
		}
	}
	return nil
}

// Classify returns the label of the highest threshold whose min score the score meets.
func Classify(score float64, thresholds []models.RiskThreshold) (string, error) {
	if err := ValidateThresholds(thresholds); err != nil {
		return "", err
	}

	label := ""
	for _, threshold := range thresholds {
		if threshold.MinScore > score {
			break
		}
		label = threshold.Label
	}
	if label == "" {
		return "", exceptions.ErrScoreBelowAllThresholds(formatScore(score))
	}
	return label, nil
}

// RiskRank returns the position of label in the ascending threshold table.
func RiskRank(label string, thresholds []models.RiskThreshold) (int, bool) {
	for i, threshold := range thresholds {
		if threshold.Label == label {
			return i, true
		}
	}
	return -1, false
}

// MeetsRiskLevel reports whether label ranks at or above target.
func MeetsRiskLevel(label, target string, thresholds []models.RiskThreshold) bool {
	labelRank, ok := RiskRank(label, thresholds)
	if !ok {
		return false
	}
	targetRank, ok := RiskRank(target, thresholds)
	if !ok {
		return false
	}
	return labelRank >= targetRank
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
