package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCompanyTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, expiresAt, err := GenerateCompanyToken("Air France", "secret", time.Hour)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ValidateCompanyToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, "Air France", claims.Company)
	require.Equal(t, "Air France", claims.Subject)
}

func TestCompanyTokenRejected(t *testing.T) {
	t.Parallel()

	token, _, err := GenerateCompanyToken("KLM", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateCompanyToken(token, "other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := GenerateCompanyToken("KLM", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateCompanyToken(expired, "secret")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateCompanyToken("a.b.c", "secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCompanyTokenRequiresSecret(t *testing.T) {
	t.Parallel()

	_, _, err := GenerateCompanyToken("Air France", "", time.Hour)
	require.ErrorIs(t, err, ErrMissingSecret)

	forged, _, err := GenerateCompanyToken("Air France", "secret", time.Hour)
	require.NoError(t, err)
	_, err = ValidateCompanyToken(forged, "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)
	require.True(t, CheckPasswordHash("correct horse", hash))
	require.False(t, CheckPasswordHash("battery staple", hash))
}
