package entity

import (
	"time"
)

// Flight is read-only from the review lifecycle's point of view; the catalogue
// is owned by a separate system and keyed by FlightNumber.
type Flight struct {
	BaseSimple
	FlightNumber string    `db:"flight_number"`
	CompanyName  string    `db:"company_name"`
	Origin       string    `db:"origin"`
	Destination  string    `db:"destination"`
	FlightDate   time.Time `db:"flight_date"`
}
