package repository

import (
	"fmt"
	"strings"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/pkg/utils"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// ReviewFilter is the predicate set accepted by ReviewRepository.Scan. Every
// field is optional; supplied fields are ANDed together.
type ReviewFilter struct {
	CompanyName  fn.Option[string]
	FlightNumber fn.Option[string] // substring
	Keyword      fn.Option[string] // substring of description
	Date         fn.Option[time.Time]
	State        fn.Option[entity.ReviewState]
}

// Matches evaluates the filter in memory with the same semantics as the SQL
// predicate.
func (f ReviewFilter) Matches(r *entity.Review) bool {
	ok := true
	f.CompanyName.WhenSome(func(c string) {
		ok = ok && r.CompanyName == c
	})
	f.FlightNumber.WhenSome(func(n string) {
		ok = ok && strings.Contains(r.FlightNumber, n)
	})
	f.Keyword.WhenSome(func(k string) {
		ok = ok && strings.Contains(r.Description, k)
	})
	f.Date.WhenSome(func(d time.Time) {
		ok = ok && r.SubmittedOn().Equal(entity.CalendarDate(d))
	})
	f.State.WhenSome(func(s entity.ReviewState) {
		ok = ok && r.State == s
	})
	return ok
}

type SortField string

const (
	SortBySubmittedAt  SortField = "submittedAt"
	SortByRating       SortField = "rating"
	SortByFlightNumber SortField = "flightNumber"
)

var sortColumns = map[SortField]string{
	SortBySubmittedAt:  "submitted_at",
	SortByRating:       "rating",
	SortByFlightNumber: "flight_number",
}

type Sort struct {
	Field SortField
	Desc  bool
}

var DefaultSort = Sort{Field: SortBySubmittedAt, Desc: true}

// ParseSort reads "field" or "field,dir". A bare field sorts ascending. Any
// unrecognized field or direction yields DefaultSort.
func ParseSort(raw string) Sort {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort
	}

	field, dir, hasDir := strings.Cut(raw, ",")
	s := Sort{Field: SortField(strings.TrimSpace(field))}
	if _, ok := sortColumns[s.Field]; !ok {
		return DefaultSort
	}

	if hasDir {
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "asc":
		case "desc":
			s.Desc = true
		default:
			return DefaultSort
		}
	}

	return s
}

// ParseSortPair is ParseSort without the bare-field form: input without an
// explicit direction yields DefaultSort.
func ParseSortPair(raw string) Sort {
	if !strings.Contains(raw, ",") {
		return DefaultSort
	}
	return ParseSort(raw)
}

func (s Sort) String() string {
	if s.Desc {
		return string(s.Field) + ",desc"
	}
	return string(s.Field) + ",asc"
}

func (s Sort) orderBy() string {
	col, ok := sortColumns[s.Field]
	if !ok {
		return DefaultSort.orderBy()
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	// id breaks ties so paging is stable.
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

// Less orders two reviews the way orderBy does.
func (s Sort) Less(a, b *entity.Review) bool {
	var c int
	switch s.Field {
	case SortByRating:
		c = a.Rating - b.Rating
	case SortByFlightNumber:
		c = strings.Compare(a.FlightNumber, b.FlightNumber)
	default:
		c = a.SubmittedAt.Compare(b.SubmittedAt)
	}
	if c == 0 {
		c = strings.Compare(a.ID.String(), b.ID.String())
	}
	if s.Desc {
		return c > 0
	}
	return c < 0
}

// PageRequest is a 0-based page window.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

func (p PageRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Size)
}

const reviewColumns = `id, customer_name, customer_email, flight_number, company_name,
		       rating, description, submitted_at, state, response_text, response_at`

// whereClause renders the filter as a WHERE clause with $N placeholders
// starting at 1.
func (f ReviewFilter) whereClause() (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	f.CompanyName.WhenSome(func(c string) {
		add("company_name = $%d", c)
	})
	f.FlightNumber.WhenSome(func(n string) {
		add("strpos(flight_number, $%d) > 0", n)
	})
	f.Keyword.WhenSome(func(k string) {
		add("strpos(description, $%d) > 0", k)
	})
	f.Date.WhenSome(func(d time.Time) {
		add("(submitted_at AT TIME ZONE 'UTC')::date = $%d", entity.CalendarDate(d))
	})
	f.State.WhenSome(func(s entity.ReviewState) {
		add("state = $%d", string(s))
	})

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildScanQuery returns the page query, the count query and their arguments.
// The page query takes two extra trailing arguments for LIMIT and OFFSET.
func buildScanQuery(filter ReviewFilter, page PageRequest) (string, string, []any, []any) {
	where, args := filter.whereClause()

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(reviewColumns)
	queryBuilder.WriteString(" FROM reviews")
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(page.Sort.orderBy())
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))

	pageArgs := append(append([]any{}, args...), page.Size, page.Offset())

	return queryBuilder.String(), "SELECT COUNT(*) FROM reviews" + where, pageArgs, args
}
