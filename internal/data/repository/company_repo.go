package repository

import (
	"context"
	"errors"
	"fmt"

	"flight-review/internal/data/entity"
	"flight-review/pkg/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when a unique column already holds the value.
var ErrDuplicate = errors.New("duplicate record")

type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindByName(ctx context.Context, name string) (*entity.Company, error)
	FindByEmail(ctx context.Context, email string) (*entity.Company, error)
}

type companyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCompanyRepository(db database.PgxIface, log *zap.Logger) CompanyRepository {
	return &companyRepository{
		db:  db,
		log: log.With(zap.String("repository", "company")),
	}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, name, email, password_hash, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Email,
		company.PasswordHash,
		company.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("create company %s: %w", company.Name, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create company",
			zap.Error(err),
			zap.String("company", company.Name),
		)
		return fmt.Errorf("create company %s: %w", company.Name, err)
	}

	return nil
}

func (r *companyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.findOne(ctx, "name", name)
}

func (r *companyRepository) FindByEmail(ctx context.Context, email string) (*entity.Company, error) {
	return r.findOne(ctx, "email", email)
}

func (r *companyRepository) findOne(ctx context.Context, column, value string) (*entity.Company, error) {
	query := fmt.Sprintf(`
		SELECT id, name, COALESCE(email, ''), password_hash, created_at
		FROM companies
		WHERE %s = $1
	`, column)

	var company entity.Company
	err := r.db.QueryRow(ctx, query, value).Scan(
		&company.ID,
		&company.Name,
		&company.Email,
		&company.PasswordHash,
		&company.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find company",
			zap.Error(err),
			zap.String(column, value),
		)
		return nil, fmt.Errorf("find company by %s: %w", column, err)
	}

	return &company, nil
}
