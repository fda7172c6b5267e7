package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"
	"flight-review/internal/dto/request"
	"flight-review/internal/dto/response"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ReviewQueryService serves both read paths: company-scoped back-office
// listings and the anonymous published listing.
type ReviewQueryService interface {
	ListForCompany(ctx context.Context, company string, q request.CompanyReviewQuery) (*response.PaginatedResponse[response.ReviewWithFlight], error)
	GetForCompany(ctx context.Context, company string, id uuid.UUID) (*response.ReviewWithFlight, error)
	ListPublished(ctx context.Context, q request.PublicReviewQuery) (*response.PaginatedResponse[response.PublicReviewView], error)
}

type reviewQueryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewQueryService(repo *repository.Repository, log *zap.Logger) ReviewQueryService {
	return &reviewQueryService{
		repo: repo,
		log:  log.With(zap.String("service", "review_query")),
	}
}

func (s *reviewQueryService) ListForCompany(ctx context.Context, company string, q request.CompanyReviewQuery) (*response.PaginatedResponse[response.ReviewWithFlight], error) {
	filter := publicFilter(q.PublicReviewQuery)
	filter.CompanyName = fn.Some(company)
	filter.State = optionalState(q.State)

	page := pageRequest(q.PageQuery, repository.ParseSort)
	reviews, total, err := s.repo.Review.Scan(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", company, err)
	}

	flights, err := s.resolveFlights(ctx, reviews)
	if err != nil {
		return nil, err
	}

	data := lo.Map(reviews, func(r *entity.Review, _ int) response.ReviewWithFlight {
		return response.NewReviewWithFlight(r, flights[r.FlightNumber])
	})

	return response.NewPaginatedResponse(data, page.Page, page.Size, total, page.Sort.String()), nil
}

func (s *reviewQueryService) GetForCompany(ctx context.Context, company string, id uuid.UUID) (*response.ReviewWithFlight, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review %s: %w", id, err)
	}
	// Another company's review is reported exactly like a missing one.
	if review == nil || review.CompanyName != company {
		return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, id)
	}

	flight, err := s.repo.Flight.FindByNumber(ctx, review.FlightNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve flight %s: %w", review.FlightNumber, err)
	}

	out := response.NewReviewWithFlight(review, flight)
	return &out, nil
}

func (s *reviewQueryService) ListPublished(ctx context.Context, q request.PublicReviewQuery) (*response.PaginatedResponse[response.PublicReviewView], error) {
	filter := publicFilter(q)
	filter.State = fn.Some(entity.ReviewStatePublished)

	// The public listing only honours explicit "field,dir" pairs.
	page := pageRequest(q.PageQuery, repository.ParseSortPair)
	reviews, total, err := s.repo.Review.Scan(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list published reviews: %w", err)
	}

	flights, err := s.resolveFlights(ctx, reviews)
	if err != nil {
		return nil, err
	}

	data := lo.Map(reviews, func(r *entity.Review, _ int) response.PublicReviewView {
		return response.NewPublicReviewView(r, flights[r.FlightNumber])
	})

	return response.NewPaginatedResponse(data, page.Page, page.Size, total, page.Sort.String()), nil
}

// resolveFlights looks up each distinct flight on the page once. Flights that
// no longer resolve are simply absent from the map.
func (s *reviewQueryService) resolveFlights(ctx context.Context, reviews []*entity.Review) (map[string]*entity.Flight, error) {
	numbers := lo.Uniq(lo.Map(reviews, func(r *entity.Review, _ int) string {
		return r.FlightNumber
	}))

	flights := make(map[string]*entity.Flight, len(numbers))
	for _, number := range numbers {
		flight, err := s.repo.Flight.FindByNumber(ctx, number)
		if err != nil {
			s.log.Error("Failed to resolve flight for listing", zap.Error(err), zap.String("flight_number", number))
			return nil, fmt.Errorf("resolve flight %s: %w", number, err)
		}
		if flight != nil {
			flights[number] = flight
		}
	}
	return flights, nil
}

func publicFilter(q request.PublicReviewQuery) repository.ReviewFilter {
	return repository.ReviewFilter{
		FlightNumber: optionalString(q.FlightNumber),
		Keyword:      optionalString(q.Keyword),
		Date:         optionalDate(q.Date),
	}
}

func pageRequest(q request.PageQuery, parseSort func(string) repository.Sort) repository.PageRequest {
	size := q.Size
	if size < 1 {
		size = request.DefaultPageSize
	}
	return repository.PageRequest{
		Page: max(q.Page, 0),
		Size: size,
		Sort: parseSort(q.Sort),
	}
}

// optionalString treats blank input as absent.
func optionalString(s string) fn.Option[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return fn.None[string]()
	}
	return fn.Some(s)
}

// optionalDate parses an ISO calendar date; anything else is absent.
func optionalDate(s string) fn.Option[time.Time] {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return fn.None[time.Time]()
	}
	return fn.Some(d)
}

// optionalState maps an unknown token to absent rather than an error.
func optionalState(s string) fn.Option[entity.ReviewState] {
	state, err := entity.ParseReviewState(strings.TrimSpace(s))
	if err != nil {
		return fn.None[entity.ReviewState]()
	}
	return fn.Some(state)
}
