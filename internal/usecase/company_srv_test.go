package usecase

import (
	"context"
	"testing"
	"time"

	"flight-review/internal/data/repository"
	"flight-review/internal/dto/request"
	"flight-review/pkg/utils"

	"github.com/stretchr/testify/require"
)

func newCompanyService() CompanyService {
	return NewCompanyService(
		repository.NewMockCompanyRepository(),
		utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		nopLogger(),
	)
}

func TestCompanySignupAndSignin(t *testing.T) {
	t.Parallel()

	svc := newCompanyService()
	ctx := context.Background()

	company, err := svc.Signup(ctx, &request.CompanySignupRequest{
		Name:     " Air France ",
		Email:    "Ops@AirFrance.example",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, "Air France", company.Name)
	require.Equal(t, "ops@airfrance.example", company.Email)
	require.NotEqual(t, "correct horse", company.PasswordHash)

	session, err := svc.Signin(ctx, &request.CompanySigninRequest{Name: "Air France", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	name, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, "Air France", name)
}

func TestCompanySignupDuplicates(t *testing.T) {
	t.Parallel()

	svc := newCompanyService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, &request.CompanySignupRequest{Name: "KLM", Email: "ops@klm.example", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, &request.CompanySignupRequest{Name: "KLM", Password: "password2"})
	require.ErrorIs(t, err, ErrCompanyExists)

	_, err = svc.Signup(ctx, &request.CompanySignupRequest{Name: "KLM Cargo", Email: "ops@klm.example", Password: "password3"})
	require.ErrorIs(t, err, ErrCompanyExists)

	_, err = svc.Signup(ctx, &request.CompanySignupRequest{Name: "Transavia", Password: "short"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCompanySigninRejected(t *testing.T) {
	t.Parallel()

	svc := newCompanyService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, &request.CompanySignupRequest{Name: "KLM", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signin(ctx, &request.CompanySigninRequest{Name: "KLM", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Signin(ctx, &request.CompanySigninRequest{Name: "Nobody", Password: "password1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCompanyAuthenticateRejectsForeignTokens(t *testing.T) {
	t.Parallel()

	svc := newCompanyService()

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, _, err := utils.GenerateCompanyToken("KLM", "another-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
