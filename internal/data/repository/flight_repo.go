package repository

import (
	"context"
	"errors"
	"fmt"

	"flight-review/internal/data/entity"
	"flight-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FlightRepository is the read-only flight catalogue.
type FlightRepository interface {
	// FindByNumber returns nil, nil when the flight does not exist.
	FindByNumber(ctx context.Context, number string) (*entity.Flight, error)
	FindAll(ctx context.Context) ([]*entity.Flight, error)
	FindByCompany(ctx context.Context, companyName string) ([]*entity.Flight, error)
}

type flightRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFlightRepository(db database.PgxIface, log *zap.Logger) FlightRepository {
	return &flightRepository{
		db:  db,
		log: log.With(zap.String("repository", "flight")),
	}
}

const flightColumns = `id, flight_number, company_name, origin, destination, flight_date, created_at`

func (r *flightRepository) FindByNumber(ctx context.Context, number string) (*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE flight_number = $1`

	flight, err := scanFlight(r.db.QueryRow(ctx, query, number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight by number",
			zap.Error(err),
			zap.String("flight_number", number),
		)
		return nil, fmt.Errorf("find flight %s: %w", number, err)
	}

	return flight, nil
}

func (r *flightRepository) FindAll(ctx context.Context) ([]*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights ORDER BY flight_date, flight_number`
	return r.list(ctx, query)
}

func (r *flightRepository) FindByCompany(ctx context.Context, companyName string) ([]*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE company_name = $1 ORDER BY flight_date, flight_number`
	return r.list(ctx, query, companyName)
}

func (r *flightRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Flight, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list flights", zap.Error(err))
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	var flights []*entity.Flight
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			r.log.Error("Failed to scan flight row", zap.Error(err))
			return nil, fmt.Errorf("scan flight row: %w", err)
		}
		flights = append(flights, flight)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flight rows: %w", err)
	}

	return flights, nil
}

func scanFlight(row pgx.Row) (*entity.Flight, error) {
	var flight entity.Flight
	err := row.Scan(
		&flight.ID,
		&flight.FlightNumber,
		&flight.CompanyName,
		&flight.Origin,
		&flight.Destination,
		&flight.FlightDate,
		&flight.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}
