package response

import (
	"time"

	"flight-review/internal/data/entity"

	"github.com/google/uuid"
)

type CompanySignupResponse struct {
	ID uuid.UUID `json:"id"`
}

type CompanySigninResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type FlightResponse struct {
	FlightNumber string `json:"flightNumber"`
	CompanyName  string `json:"companyName"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	FlightDate   string `json:"flightDate"`
}

func NewFlightResponse(f *entity.Flight) FlightResponse {
	return FlightResponse{
		FlightNumber: f.FlightNumber,
		CompanyName:  f.CompanyName,
		Origin:       f.Origin,
		Destination:  f.Destination,
		FlightDate:   f.FlightDate.Format(dateLayout),
	}
}
