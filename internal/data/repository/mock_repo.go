package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"flight-review/internal/data/entity"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory ReviewRepository. Scan applies the
// same filter, sort and paging rules as the SQL implementation. Reviews are
// copied on the way in and out so callers cannot mutate stored state.
type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID]entity.Review

	// Err, when set, is returned by every write.
	Err error
}

// NewMockReviewRepository creates an empty in-memory review store.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[uuid.UUID]entity.Review),
	}
}

func (m *MockReviewRepository) Create(_ context.Context, review *entity.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.reviews[review.ID]; ok {
		return fmt.Errorf("create review %s: %w", review.ID, ErrDuplicate)
	}
	m.reviews[review.ID] = *review
	return nil
}

func (m *MockReviewRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	review, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (m *MockReviewRepository) Scan(_ context.Context, filter ReviewFilter, page PageRequest) ([]*entity.Review, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*entity.Review
	for _, review := range m.reviews {
		if filter.Matches(&review) {
			matched = append(matched, &review)
		}
	}

	slices.SortFunc(matched, func(a, b *entity.Review) int {
		switch {
		case page.Sort.Less(a, b):
			return -1
		case page.Sort.Less(b, a):
			return 1
		}
		return 0
	})

	total := int64(len(matched))
	start := min(page.Offset(), len(matched))
	end := min(start+page.Size, len(matched))

	return matched[start:end], total, nil
}

func (m *MockReviewRepository) UpdateState(_ context.Context, id uuid.UUID, state entity.ReviewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	review, ok := m.reviews[id]
	if !ok {
		return fmt.Errorf("update state of review %s: %w", id, ErrReviewNotFound)
	}
	review.State = state
	m.reviews[id] = review
	return nil
}

func (m *MockReviewRepository) UpdateResponse(_ context.Context, id uuid.UUID, text string, at time.Time, state entity.ReviewState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	review, ok := m.reviews[id]
	if !ok {
		return fmt.Errorf("update response of review %s: %w", id, ErrReviewNotFound)
	}
	review.ResponseText = &text
	review.ResponseAt = &at
	review.State = state
	m.reviews[id] = review
	return nil
}

// Len returns the number of stored reviews.
func (m *MockReviewRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reviews)
}

// MockFlightRepository is an in-memory FlightRepository keyed by flight
// number.
type MockFlightRepository struct {
	mu      sync.RWMutex
	flights map[string]entity.Flight

	// Lookups counts FindByNumber calls.
	Lookups int
}

func NewMockFlightRepository(flights ...entity.Flight) *MockFlightRepository {
	m := &MockFlightRepository{flights: make(map[string]entity.Flight)}
	for _, f := range flights {
		m.Put(f)
	}
	return m
}

// Put adds or replaces a flight.
func (m *MockFlightRepository) Put(f entity.Flight) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flights[f.FlightNumber] = f
}

// Remove deletes a flight from the catalogue.
func (m *MockFlightRepository) Remove(number string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flights, number)
}

func (m *MockFlightRepository) FindByNumber(_ context.Context, number string) (*entity.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Lookups++
	f, ok := m.flights[number]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (m *MockFlightRepository) FindAll(ctx context.Context) ([]*entity.Flight, error) {
	return m.filter(func(*entity.Flight) bool { return true }), nil
}

func (m *MockFlightRepository) FindByCompany(ctx context.Context, companyName string) ([]*entity.Flight, error) {
	return m.filter(func(f *entity.Flight) bool { return f.CompanyName == companyName }), nil
}

func (m *MockFlightRepository) filter(keep func(*entity.Flight) bool) []*entity.Flight {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*entity.Flight
	for _, f := range m.flights {
		if keep(&f) {
			out = append(out, &f)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Flight) int {
		if c := a.FlightDate.Compare(b.FlightDate); c != 0 {
			return c
		}
		return strings.Compare(a.FlightNumber, b.FlightNumber)
	})
	return out
}

// MockCompanyRepository is an in-memory CompanyRepository.
type MockCompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]entity.Company
}

func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{companies: make(map[string]entity.Company)}
}

func (m *MockCompanyRepository) Create(_ context.Context, company *entity.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.companies {
		if c.Name == company.Name || (company.Email != "" && c.Email == company.Email) {
			return fmt.Errorf("create company %s: %w", company.Name, ErrDuplicate)
		}
	}
	m.companies[company.Name] = *company
	return nil
}

func (m *MockCompanyRepository) FindByName(_ context.Context, name string) (*entity.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.companies[name]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MockCompanyRepository) FindByEmail(_ context.Context, email string) (*entity.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.companies {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, nil
}
