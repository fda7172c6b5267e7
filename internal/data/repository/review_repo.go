package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrReviewNotFound is returned by the update methods when no row matched.
var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Scan(ctx context.Context, filter ReviewFilter, page PageRequest) ([]*entity.Review, int64, error)

	// UpdateState writes only the state column.
	UpdateState(ctx context.Context, id uuid.UUID, state entity.ReviewState) error
	// UpdateResponse writes the response pair together with the new state.
	UpdateResponse(ctx context.Context, id uuid.UUID, text string, at time.Time, state entity.ReviewState) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, customer_name, customer_email, flight_number, company_name,
		                     rating, description, submitted_at, state, response_text, response_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.CustomerName,
		review.CustomerEmail,
		review.FlightNumber,
		review.CompanyName,
		review.Rating,
		review.Description,
		review.SubmittedAt,
		review.State,
		review.ResponseText,
		review.ResponseAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
			zap.String("flight_number", review.FlightNumber),
		)
		return fmt.Errorf("create review for flight %s: %w", review.FlightNumber, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) Scan(ctx context.Context, filter ReviewFilter, page PageRequest) ([]*entity.Review, int64, error) {
	query, countQuery, pageArgs, countArgs := buildScanQuery(filter, page)

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	rows, err := r.db.Query(ctx, query, pageArgs...)
	if err != nil {
		r.log.Error("Failed to scan reviews",
			zap.Error(err),
			zap.Int("page", page.Page),
			zap.Int("size", page.Size),
			zap.Stringer("sort", page.Sort),
		)
		return nil, 0, fmt.Errorf("scan reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0, page.Size)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	r.log.Debug("Reviews scanned",
		zap.Int("count", len(reviews)),
		zap.Int64("total", total),
		zap.Int("page", page.Page),
	)

	return reviews, total, nil
}

func (r *reviewRepository) UpdateState(ctx context.Context, id uuid.UUID, state entity.ReviewState) error {
	query := `UPDATE reviews SET state = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, state)
	if err != nil {
		r.log.Error("Failed to update review state",
			zap.Error(err),
			zap.String("review_id", id.String()),
			zap.Stringer("state", state),
		)
		return fmt.Errorf("update state of review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update state of review %s: %w", id.String(), ErrReviewNotFound)
	}

	return nil
}

func (r *reviewRepository) UpdateResponse(ctx context.Context, id uuid.UUID, text string, at time.Time, state entity.ReviewState) error {
	query := `
		UPDATE reviews
		SET response_text = $2, response_at = $3, state = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, text, at, state)
	if err != nil {
		r.log.Error("Failed to update review response",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("update response of review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update response of review %s: %w", id.String(), ErrReviewNotFound)
	}

	return nil
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.CustomerName,
		&review.CustomerEmail,
		&review.FlightNumber,
		&review.CompanyName,
		&review.Rating,
		&review.Description,
		&review.SubmittedAt,
		&review.State,
		&review.ResponseText,
		&review.ResponseAt,
	)
	if err != nil {
		return nil, err
	}
	review.SubmittedAt = review.SubmittedAt.UTC()
	return &review, nil
}
