package utils

import (
	"strings"
	"testing"
	"time"

	"mindscreen-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateUniqueCode()
		require.NoError(t, err)
		assert.Len(t, code, constvars.UniqueCodeLength)
		for _, char := range code {
			assert.True(t, strings.ContainsRune(constvars.UniqueCodeAlphabet, char), "unexpected character %q", char)
		}
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 200)
}

func TestDistributionJWT(t *testing.T) {
	const secret = "test-secret"

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateDistributionJWT("questionnaire-1", secret, time.Now().Add(time.Hour))
		require.NoError(t, err)

		questionnaireID, err := ParseDistributionJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "questionnaire-1", questionnaireID)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateDistributionJWT("questionnaire-1", secret, time.Now().Add(-time.Minute))
		require.NoError(t, err)

		_, err = ParseDistributionJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateDistributionJWT("questionnaire-1", secret, time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = ParseDistributionJWT(token, "other-secret")
		assert.Error(t, err)
	})
}

func TestGenerateDistributionLink(t *testing.T) {
	assert.Equal(t, "https://screen.example.org/r/abc", GenerateDistributionLink("https://screen.example.org/", "abc"))
}
