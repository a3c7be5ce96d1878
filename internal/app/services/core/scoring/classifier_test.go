package scoring

import (
	"testing"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phq9Thresholds() []models.RiskThreshold {
	return []models.RiskThreshold{
		{Label: "minimal", MinScore: 0},
		{Label: "mild", MinScore: 5},
		{Label: "moderate", MinScore: 10},
		{Label: "moderately severe", MinScore: 15},
		{Label: "severe", MinScore: 20},
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		score    float64
		expected string
	}{
		{0, "minimal"},
		{4, "minimal"},
		{4.99, "minimal"},
		{5, "mild"},
		{12, "moderate"},
		{15, "moderately severe"},
		{20, "severe"},
		{27, "severe"},
	}

	for _, tc := range testCases {
		t.Run(formatScore(tc.score), func(t *testing.T) {
			label, err := Classify(tc.score, phq9Thresholds())
			require.NoError(t, err)
			assert.Equal(t, tc.expected, label)
		})
	}
}

func TestClassify_Failures(t *testing.T) {
	t.Run("score below the first threshold", func(t *testing.T) {
		_, err := Classify(-1, phq9Thresholds())
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeScoreBelowAllThresholds))
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := Classify(3, nil)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeScoreBelowAllThresholds))
	})

	t.Run("duplicate min score", func(t *testing.T) {
		thresholds := []models.RiskThreshold{
			{Label: "low", MinScore: 0},
			{Label: "mid", MinScore: 5},
			{Label: "high", MinScore: 5},
		}
		_, err := Classify(7, thresholds)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeDuplicateThreshold))
	})

	t.Run("descending min score", func(t *testing.T) {
		thresholds := []models.RiskThreshold{
			{Label: "low", MinScore: 0},
			{Label: "high", MinScore: 10},
			{Label: "mid", MinScore: 5},
		}
		_, err := Classify(7, thresholds)
		require.Error(t, err)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeThresholdsNotAscending))
	})
}

func TestClassify_IsMonotonic(t *testing.T) {
	thresholds := phq9Thresholds()

	previousRank := -1
	for score := 0.0; score <= 30; score += 0.25 {
		label, err := Classify(score, thresholds)
		require.NoError(t, err)

		rank, ok := RiskRank(label, thresholds)
		require.True(t, ok)
		assert.GreaterOrEqual(t, rank, previousRank, "score %v must not fall into a lower risk level", score)
		previousRank = rank
	}
}

func TestMeetsRiskLevel(t *testing.T) {
	thresholds := phq9Thresholds()

	assert.True(t, MeetsRiskLevel("severe", "moderately severe", thresholds))
	assert.True(t, MeetsRiskLevel("moderately severe", "moderately severe", thresholds))
	assert.False(t, MeetsRiskLevel("moderate", "moderately severe", thresholds))
	assert.False(t, MeetsRiskLevel("severe", "unknown", thresholds))
}
