package utils

import (
	"errors"

	"mindscreen-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
)

// ParseDistributionJWT returns the questionnaire id carried by a share token.
func ParseDistributionJWT(tokenString, secret string) (string, error) {
	claims := new(DistributionClaims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.Subject != constvars.DistributionTokenSubject || claims.QuestionnaireID == "" {
		return "", errors.New(constvars.ErrDevDistributionTokenWrongClaim)
	}
	return claims.QuestionnaireID, nil
}
