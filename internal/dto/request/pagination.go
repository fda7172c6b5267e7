package request

import (
	"net/url"

	"flight-review/pkg/utils"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "submittedAt,desc"
)

// PageQuery is a 0-based page window plus a "field,dir" sort string.
type PageQuery struct {
	Page int    `json:"page" validate:"min=0"`
	Size int    `json:"size" validate:"min=1,max=100"`
	Sort string `json:"sort"`
}

// NewPageQuery reads page, size and sort from query parameters. Out of range
// values are clamped rather than rejected.
func NewPageQuery(q url.Values) PageQuery {
	p := PageQuery{
		Page: utils.ParseIntMin(q.Get("page"), 0, 0),
		Size: utils.ParseIntMin(q.Get("size"), DefaultPageSize, 1),
		Sort: q.Get("sort"),
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	return p
}
