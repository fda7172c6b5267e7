package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "flight-review-backoffice"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token signing secret is empty")
)

// CompanyClaims identifies a back-office company; the subject is the company
// name, which is also the review scoping key.
type CompanyClaims struct {
	Company string `json:"company"`
	jwt.RegisteredClaims
}

func GenerateCompanyToken(company, secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrMissingSecret
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := &CompanyClaims{
		Company: company,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   company,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func ValidateCompanyToken(tokenString, secret string) (*CompanyClaims, error) {
	if secret == "" {
		return nil, errors.Join(ErrInvalidToken, ErrMissingSecret)
	}

	token, err := jwt.ParseWithClaims(tokenString, &CompanyClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CompanyClaims)
	if !ok || !token.Valid || claims.Company == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
