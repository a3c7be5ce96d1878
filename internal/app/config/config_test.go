package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig_Defaults(t *testing.T) {
	cfg := NewInternalConfig()

	assert.True(t, cfg.Scoring.AutoScoreOnSubmit)
	assert.Equal(t, "@every 10m", cfg.Scoring.RescoreCronSpec)
	assert.Equal(t, 300, cfg.Cache.AnalyticsCacheTTLInSeconds)
	assert.NotEmpty(t, cfg.RabbitMQ.EventsQueue)
}

func TestNewInternalConfig_Overrides(t *testing.T) {
	t.Setenv("AUTO_SCORE_ON_SUBMIT", "false")
	t.Setenv("SCORING_RESCORE_CRON_SPEC", "@every 1m")
	t.Setenv("ANALYTICS_CACHE_TTL_SECONDS", "60")
	t.Setenv("APP_REVIEWER_EMAILS", " lead@clinic.test, ,oncall@clinic.test ")

	cfg := NewInternalConfig()

	assert.False(t, cfg.Scoring.AutoScoreOnSubmit)
	assert.Equal(t, "@every 1m", cfg.Scoring.RescoreCronSpec)
	assert.Equal(t, 60, cfg.Cache.AnalyticsCacheTTLInSeconds)
	assert.Equal(t, []string{"lead@clinic.test", "oncall@clinic.test"}, cfg.Mailer.ReviewerEmails)
}

func TestSplitCSV(t *testing.T) {
	assert.Nil(t, splitCSV(""))
	assert.Equal(t, []string{"a"}, splitCSV("a,"))
}
