package request

import "net/url"

type SubmitReviewRequest struct {
	CustomerName  string `json:"customerName" validate:"required,notblank,max=200"`
	CustomerEmail string `json:"customerEmail" validate:"required,email,max=255"`
	FlightNumber  string `json:"flightNumber" validate:"required,notblank,max=20"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Description   string `json:"description" validate:"required,notblank,max=4000"`
}

// RespondReviewRequest carries NewState as a raw token; the workflow decides
// whether it names a known state.
type RespondReviewRequest struct {
	ResponseText string `json:"responseText" validate:"required,notblank"`
	NewState     string `json:"newState" validate:"required"`
}

// PublicReviewQuery holds raw filter strings. Blank or unparsable values mean
// "no filter".
type PublicReviewQuery struct {
	PageQuery
	FlightNumber string
	Keyword      string
	Date         string
}

func NewPublicReviewQuery(q url.Values) PublicReviewQuery {
	return PublicReviewQuery{
		PageQuery:    NewPageQuery(q),
		FlightNumber: q.Get("flightNumber"),
		Keyword:      q.Get("keyword"),
		Date:         q.Get("date"),
	}
}

type CompanyReviewQuery struct {
	PublicReviewQuery
	State string
}

func NewCompanyReviewQuery(q url.Values) CompanyReviewQuery {
	return CompanyReviewQuery{
		PublicReviewQuery: NewPublicReviewQuery(q),
		State:             q.Get("state"),
	}
}
