package usecase

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func reviewAt(flight, company string, state entity.ReviewState, rating int, desc string, at time.Time) entity.Review {
	return entity.Review{
		ID:            uuid.New(),
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		FlightNumber:  flight,
		CompanyName:   company,
		Rating:        rating,
		Description:   desc,
		SubmittedAt:   at,
		State:         state,
	}
}

func companyQuery(raw string) request.CompanyReviewQuery {
	q, _ := parseQuery(raw)
	return request.NewCompanyReviewQuery(q)
}

func TestListForCompanyScopesAndFilters(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStateSubmitted, 5, "Great crew", day))
	env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStateTreated, 2, "Late boarding", day.Add(time.Hour)))
	env.putReview(t, reviewAt("KL100", "KLM", entity.ReviewStateSubmitted, 4, "Great seats", day))

	svc := NewReviewQueryService(env.repo, nopLogger())
	ctx := context.Background()

	page, err := svc.ListForCompany(ctx, "Air France", companyQuery(""))
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Pagination.Total)
	for _, r := range page.Data {
		require.Equal(t, "Air France", r.CompanyName)
		require.Equal(t, "CDG", r.Origin)
		require.Equal(t, "JFK", r.Destination)
		require.Equal(t, "2024-06-01", r.FlightDate)
	}
	// default sort is newest first
	require.Equal(t, "Late boarding", page.Data[0].Description)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("keyword=Great"))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, "Great crew", page.Data[0].Description)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("state=TREATED"))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, entity.ReviewStateTreated, page.Data[0].State)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("state=BOGUS"))
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Pagination.Total)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("date=2024-06-03"))
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Pagination.Total)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("date=2024-06-04"))
	require.NoError(t, err)
	require.Empty(t, page.Data)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("date=03/06/2024"))
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Pagination.Total)

	page, err = svc.ListForCompany(ctx, "Air France", companyQuery("sort=rating,asc"))
	require.NoError(t, err)
	require.Equal(t, 2, page.Data[0].Rating)
	require.Equal(t, "rating,asc", page.Pagination.Sort)

	page, err = svc.ListForCompany(ctx, "Nobody Air", companyQuery(""))
	require.NoError(t, err)
	require.Empty(t, page.Data)
	require.NotNil(t, page.Data)
}

func TestListForCompanyPaging(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	for i := range 25 {
		env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStateSubmitted, 3, "ok", start.Add(time.Duration(i)*time.Minute)))
	}

	svc := NewReviewQueryService(env.repo, nopLogger())

	page, err := svc.ListForCompany(context.Background(), "Air France", companyQuery("page=2&size=10"))
	require.NoError(t, err)
	require.Len(t, page.Data, 5)
	require.EqualValues(t, 25, page.Pagination.Total)
	require.Equal(t, 3, page.Pagination.TotalPages)
	require.Equal(t, 2, page.Pagination.Page)

	page, err = svc.ListForCompany(context.Background(), "Air France", companyQuery("page=3&size=10"))
	require.NoError(t, err)
	require.Empty(t, page.Data)
}

func TestGetForCompany(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	mine := env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStateSubmitted, 5, "Great", time.Now().UTC()))
	theirs := env.putReview(t, reviewAt("KL100", "KLM", entity.ReviewStateSubmitted, 5, "Great", time.Now().UTC()))

	svc := NewReviewQueryService(env.repo, nopLogger())
	ctx := context.Background()

	got, err := svc.GetForCompany(ctx, "Air France", mine.ID)
	require.NoError(t, err)
	require.Equal(t, mine.ID, got.ID)
	require.Equal(t, "CDG", got.Origin)

	_, err = svc.GetForCompany(ctx, "Air France", theirs.ID)
	require.ErrorIs(t, err, ErrReviewNotFound)

	_, err = svc.GetForCompany(ctx, "Air France", uuid.New())
	require.ErrorIs(t, err, ErrReviewNotFound)
}

func TestListPublishedHidesIdentity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	now := time.Now().UTC()
	published := reviewAt("AF123", "Air France", entity.ReviewStatePublished, 5, "Great crew", now)
	text := "Thanks!"
	published.ResponseText = &text
	published.ResponseAt = &now
	env.putReview(t, published)
	env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStateResponded, 4, "Nice", now))
	env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStateRejected, 1, "Spam", now))

	svc := NewReviewQueryService(env.repo, nopLogger())

	page, err := svc.ListPublished(context.Background(), request.NewPublicReviewQuery(nil))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	view := page.Data[0]
	require.Equal(t, published.ID, view.ID)
	require.Equal(t, "Thanks!", *view.CompanyResponse)
	require.Equal(t, "AF123", view.FlightNumber)
	require.Equal(t, "CDG", view.Origin)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.NotContains(t, fields, "customerName")
	require.NotContains(t, fields, "customerEmail")
	require.NotContains(t, fields, "state")
	require.Contains(t, fields, "companyResponse")
}

func TestListPublishedWithoutFlight(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.putReview(t, reviewAt("KL100", "KLM", entity.ReviewStatePublished, 4, "Fine", time.Now().UTC()))
	env.flights.Remove("KL100")

	svc := NewReviewQueryService(env.repo, nopLogger())

	page, err := svc.ListPublished(context.Background(), request.NewPublicReviewQuery(nil))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	raw, err := json.Marshal(page.Data[0])
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.NotContains(t, fields, "flightNumber")
	require.NotContains(t, fields, "origin")
	require.NotContains(t, fields, "destination")
	require.NotContains(t, fields, "flightDate")
	require.Nil(t, fields["companyResponse"])
}

func TestListPublishedOnlyReturnsPublished(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		env := newTestEnv(t)
		states := entity.ReviewStates()
		flights := []string{"AF123", "KL100"}

		n := rapid.IntRange(0, 30).Draw(rt, "n")
		want := 0
		for i := range n {
			state := rapid.SampledFrom(states).Draw(rt, "state")
			flight := rapid.SampledFrom(flights).Draw(rt, "flight")
			if state == entity.ReviewStatePublished && flight == "AF123" {
				want++
			}
			r := reviewAt(flight, "any", state, 3, "x", time.Unix(int64(i), 0).UTC())
			require.NoError(rt, env.reviews.Create(context.Background(), &r))
		}

		svc := NewReviewQueryService(env.repo, nopLogger())
		q, _ := parseQuery("flightNumber=AF123&size=100")
		page, err := svc.ListPublished(context.Background(), request.NewPublicReviewQuery(q))
		require.NoError(rt, err)
		require.EqualValues(rt, want, page.Pagination.Total)
		require.Len(rt, page.Data, want)
		for _, v := range page.Data {
			require.Equal(rt, "AF123", v.FlightNumber)
		}
	})
}

func TestBareSortFieldOnlyHonouredForCompanies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	now := time.Now().UTC()
	env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStatePublished, 5, "Great", now))
	env.putReview(t, reviewAt("AF123", "Air France", entity.ReviewStatePublished, 1, "Bad", now.Add(time.Minute)))

	svc := NewReviewQueryService(env.repo, nopLogger())
	ctx := context.Background()

	q, _ := parseQuery("sort=rating")
	public, err := svc.ListPublished(ctx, request.NewPublicReviewQuery(q))
	require.NoError(t, err)
	require.Equal(t, "submittedAt,desc", public.Pagination.Sort)
	require.Equal(t, "Bad", public.Data[0].Description)

	company, err := svc.ListForCompany(ctx, "Air France", companyQuery("sort=rating"))
	require.NoError(t, err)
	require.Equal(t, "rating,asc", company.Pagination.Sort)
	require.Equal(t, 1, company.Data[0].Rating)

	public, err = svc.ListPublished(ctx, request.NewPublicReviewQuery(url.Values{"sort": {"rating,desc"}}))
	require.NoError(t, err)
	require.Equal(t, 5, public.Data[0].Rating)
}
