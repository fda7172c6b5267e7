package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type ReviewState string

const (
	ReviewStateSubmitted ReviewState = "SUBMITTED"
	ReviewStateTreated   ReviewState = "TREATED"
	ReviewStateResponded ReviewState = "RESPONDED"
	ReviewStatePublished ReviewState = "PUBLISHED"
	ReviewStateRejected  ReviewState = "REJECTED"
)

// ErrUnknownReviewState is returned for any token outside the registered set,
// including tokens read back from storage.
var ErrUnknownReviewState = errors.New("unknown review state")

// reviewStates is the registered set of state tokens. Adding a state only
// requires appending it here.
var reviewStates = []ReviewState{
	ReviewStateSubmitted,
	ReviewStateTreated,
	ReviewStateResponded,
	ReviewStatePublished,
	ReviewStateRejected,
}

// ReviewStates returns a copy of every registered state.
func ReviewStates() []ReviewState {
	return slices.Clone(reviewStates)
}

// ParseReviewState maps a token to its state. Matching is exact.
func ParseReviewState(s string) (ReviewState, error) {
	for _, state := range reviewStates {
		if string(state) == s {
			return state, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReviewState, s)
}

func (s ReviewState) Valid() bool {
	return slices.Contains(reviewStates, s)
}

func (s ReviewState) String() string {
	return string(s)
}

// Scan implements sql.Scanner. Unknown tokens are a data-integrity error and
// are never mapped to a default.
func (s *ReviewState) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: null", ErrUnknownReviewState)
	default:
		return fmt.Errorf("scan review state from %T", src)
	}

	state, err := ParseReviewState(raw)
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// Value implements driver.Valuer.
func (s ReviewState) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReviewState, string(s))
	}
	return string(s), nil
}

type Review struct {
	ID            uuid.UUID   `db:"id"`
	CustomerName  string      `db:"customer_name"`
	CustomerEmail string      `db:"customer_email"`
	FlightNumber  string      `db:"flight_number"`
	CompanyName   string      `db:"company_name"` // copied from the flight at submission
	Rating        int         `db:"rating"`       // 1-5
	Description   string      `db:"description"`
	SubmittedAt   time.Time   `db:"submitted_at"`
	State         ReviewState `db:"state"`
	ResponseText  *string     `db:"response_text"`
	ResponseAt    *time.Time  `db:"response_at"`
}

// HasResponse reports whether a company has answered the review.
func (r *Review) HasResponse() bool {
	return r.ResponseText != nil && r.ResponseAt != nil
}

// SubmittedOn is the UTC calendar date of SubmittedAt.
func (r *Review) SubmittedOn() time.Time {
	return CalendarDate(r.SubmittedAt)
}

// CalendarDate truncates t to midnight UTC of its UTC date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
