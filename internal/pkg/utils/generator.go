package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"mindscreen-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateUniqueCode draws a respondent code from an alphabet without
// look-alike characters.
func GenerateUniqueCode() (string, error) {
	max := big.NewInt(int64(len(constvars.UniqueCodeAlphabet)))

	code := make([]byte, constvars.UniqueCodeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = constvars.UniqueCodeAlphabet[num.Int64()]
	}

	return string(code), nil
}

type DistributionClaims struct {
	QuestionnaireID string `json:"questionnaire_id"`
	jwt.RegisteredClaims
}

func GenerateDistributionJWT(questionnaireID, secret string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, DistributionClaims{
		QuestionnaireID: questionnaireID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   constvars.DistributionTokenSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateDistributionLink(baseURL, token string) string {
	return fmt.Sprintf(constvars.DistributionLinkPathFormat, strings.TrimRight(baseURL, "/"), token)
}

func GenerateExportObjectName(questionnaireID string, now time.Time) string {
	timestamp := now.UTC().Format("20060102_150405.000000000")
	return fmt.Sprintf("exports/%s/responses_%s.csv", questionnaireID, timestamp)
}
