package utils

import (
	"context"
)

type contextKey string

const (
	CompanyKey contextKey = "company"
	TokenKey   contextKey = "token"
)

// GetCompanyFromContext returns the authenticated company name.
func GetCompanyFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(CompanyKey)
	if val == nil {
		return "", false
	}

	company, ok := val.(string)
	if !ok || company == "" {
		return "", false
	}

	return company, true
}

func SetCompanyContext(ctx context.Context, company string) context.Context {
	return context.WithValue(ctx, CompanyKey, company)
}

// GetTokenFromContext returns the raw bearer token of the request.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext stores the raw bearer token.
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
