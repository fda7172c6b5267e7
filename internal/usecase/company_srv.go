package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"
	"flight-review/internal/dto/request"
	"flight-review/internal/dto/response"
	"flight-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CompanyService interface {
	Signup(ctx context.Context, req *request.CompanySignupRequest) (*entity.Company, error)
	Signin(ctx context.Context, req *request.CompanySigninRequest) (*response.CompanySigninResponse, error)
	// Authenticate validates a bearer token and returns the company name.
	Authenticate(ctx context.Context, token string) (string, error)
}

type companyService struct {
	companies repository.CompanyRepository
	jwt       utils.JWTConfig
	log       *zap.Logger
}

func NewCompanyService(companies repository.CompanyRepository, jwt utils.JWTConfig, log *zap.Logger) CompanyService {
	return &companyService{
		companies: companies,
		jwt:       jwt,
		log:       log.With(zap.String("service", "company")),
	}
}

func (s *companyService) Signup(ctx context.Context, req *request.CompanySignupRequest) (*entity.Company, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.companies.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check company %s: %w", name, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrCompanyExists, name)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		existing, err = s.companies.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("check company email: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: email %s", ErrCompanyExists, email)
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	company := &entity.Company{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	err = s.companies.Create(ctx, company)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, fmt.Errorf("%w: %s", ErrCompanyExists, name)
	}
	if err != nil {
		return nil, fmt.Errorf("signup company %s: %w", name, err)
	}

	s.log.Info("Company signed up", zap.String("company", name))
	return company, nil
}

func (s *companyService) Signin(ctx context.Context, req *request.CompanySigninRequest) (*response.CompanySigninResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	name := strings.TrimSpace(req.Name)
	company, err := s.companies.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find company %s: %w", name, err)
	}
	if company == nil || !utils.CheckPasswordHash(req.Password, company.PasswordHash) {
		s.log.Warn("Company signin rejected", zap.String("company", name))
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateCompanyToken(company.Name, s.jwt.Secret, s.tokenTTL())
	if err != nil {
		return nil, fmt.Errorf("issue token for %s: %w", name, err)
	}

	return &response.CompanySigninResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *companyService) Authenticate(_ context.Context, token string) (string, error) {
	claims, err := utils.ValidateCompanyToken(token, s.jwt.Secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return claims.Company, nil
}

func (s *companyService) tokenTTL() time.Duration {
	if s.jwt.ExpiryHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.jwt.ExpiryHours) * time.Hour
}
