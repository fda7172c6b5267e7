package event

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"flight-review/internal/data/entity"

	"github.com/google/uuid"
)

const (
	EventTypeNewReview = "NEW_REVIEW"

	// SchemaVersionKey names the header (kafka) or message attribute (SQS)
	// carrying the payload version. The body itself stays field-exact.
	SchemaVersionKey = "schema-version"
	SchemaVersion    = "1"
)

// NewReviewEvent announces a freshly persisted review to the back office.
type NewReviewEvent struct {
	Event         string    `json:"event"`
	ReviewID      string    `json:"reviewId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	FlightNumber  string    `json:"flightNumber"`
	CompanyName   string    `json:"companyName"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Rating        int       `json:"rating"`
	Description   string    `json:"description"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func NewReviewEventFrom(review *entity.Review, flight *entity.Flight) NewReviewEvent {
	e := NewReviewEvent{
		Event:         EventTypeNewReview,
		ReviewID:      review.ID.String(),
		CustomerName:  review.CustomerName,
		CustomerEmail: review.CustomerEmail,
		FlightNumber:  review.FlightNumber,
		CompanyName:   review.CompanyName,
		Rating:        review.Rating,
		Description:   review.Description,
		SubmittedAt:   review.SubmittedAt.UTC(),
	}
	if flight != nil {
		e.Origin = flight.Origin
		e.Destination = flight.Destination
	}
	return e
}

// ReviewUUID parses ReviewID. A blank or invalid id is ErrMalformedEvent.
func (e NewReviewEvent) ReviewUUID() (uuid.UUID, error) {
	raw := strings.TrimSpace(e.ReviewID)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: missing reviewId", ErrMalformedEvent)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: reviewId %q: %v", ErrMalformedEvent, raw, err)
	}
	return id, nil
}

func (e NewReviewEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a message body. Unknown fields are ignored. The review id is
// not validated here; see ReviewUUID.
func Decode(body []byte) (NewReviewEvent, error) {
	var e NewReviewEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return NewReviewEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if e.Event != EventTypeNewReview {
		return NewReviewEvent{}, fmt.Errorf("%w: %q", ErrUnsupportedEvent, e.Event)
	}
	return e, nil
}

// Message is a transport-neutral envelope for one delivery.
type Message struct {
	Key        string
	Body       []byte
	Attributes map[string]string
}

func newMessage(e NewReviewEvent) (Message, error) {
	body, err := e.Encode()
	if err != nil {
		return Message{}, fmt.Errorf("encode %s event: %w", e.Event, err)
	}
	return Message{
		Key:        e.ReviewID,
		Body:       body,
		Attributes: map[string]string{SchemaVersionKey: SchemaVersion},
	}, nil
}
