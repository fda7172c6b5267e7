package response

import (
	"time"

	"flight-review/internal/data/entity"

	"github.com/google/uuid"
)

const dateLayout = time.DateOnly

type SubmitReviewResponse struct {
	ID uuid.UUID `json:"id"`
}

// ReviewWithFlight is the back-office view: the full review plus the flight
// context when the flight still resolves.
type ReviewWithFlight struct {
	ID            uuid.UUID          `json:"id"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	FlightNumber  string             `json:"flightNumber"`
	CompanyName   string             `json:"companyName"`
	Rating        int                `json:"rating"`
	Description   string             `json:"description"`
	SubmittedAt   time.Time          `json:"submittedAt"`
	State         entity.ReviewState `json:"state"`
	ResponseText  *string            `json:"responseText"`
	ResponseAt    *time.Time         `json:"responseAt"`
	Origin        string             `json:"origin,omitempty"`
	Destination   string             `json:"destination,omitempty"`
	FlightDate    string             `json:"flightDate,omitempty"`
}

func NewReviewWithFlight(r *entity.Review, f *entity.Flight) ReviewWithFlight {
	out := ReviewWithFlight{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		FlightNumber:  r.FlightNumber,
		CompanyName:   r.CompanyName,
		Rating:        r.Rating,
		Description:   r.Description,
		SubmittedAt:   r.SubmittedAt,
		State:         r.State,
		ResponseText:  r.ResponseText,
		ResponseAt:    r.ResponseAt,
	}
	if f != nil {
		out.Origin = f.Origin
		out.Destination = f.Destination
		out.FlightDate = f.FlightDate.Format(dateLayout)
	}
	return out
}

// PublicReviewView is the anonymous projection. It never carries customer
// identity; flight fields appear only when the flight still resolves.
type PublicReviewView struct {
	ID              uuid.UUID `json:"id"`
	Rating          int       `json:"rating"`
	Description     string    `json:"description"`
	SubmittedAt     time.Time `json:"submittedAt"`
	CompanyResponse *string   `json:"companyResponse"`
	FlightNumber    string    `json:"flightNumber,omitempty"`
	Origin          string    `json:"origin,omitempty"`
	Destination     string    `json:"destination,omitempty"`
	FlightDate      string    `json:"flightDate,omitempty"`
}

func NewPublicReviewView(r *entity.Review, f *entity.Flight) PublicReviewView {
	out := PublicReviewView{
		ID:              r.ID,
		Rating:          r.Rating,
		Description:     r.Description,
		SubmittedAt:     r.SubmittedAt,
		CompanyResponse: r.ResponseText,
	}
	if f != nil {
		out.FlightNumber = f.FlightNumber
		out.Origin = f.Origin
		out.Destination = f.Destination
		out.FlightDate = f.FlightDate.Format(dateLayout)
	}
	return out
}
