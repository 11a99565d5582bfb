// Package listing implements the search, filter, sort and pagination rules
// shared by every listing page, both in memory and pushed down to SQL.
package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const DefaultPageSize = 12

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortAreaAsc   = "area_asc"
	SortAreaDesc  = "area_desc"
	SortRating    = "rating"
)

var validSorts = map[string]bool{
	SortNewest: true, SortOldest: true,
	SortPriceAsc: true, SortPriceDesc: true,
	SortAreaAsc: true, SortAreaDesc: true,
	SortRating: true,
}

// Filter is the set of predicates a listing page can apply. Zero values
// mean "no constraint".
type Filter struct {
	Search    string  `json:"search,omitempty"`
	Category  string  `json:"category,omitempty"`
	Location  string  `json:"location,omitempty"`
	Condition string  `json:"condition,omitempty"`
	MinPrice  float64 `json:"min_price,omitempty"`
	MaxPrice  float64 `json:"max_price,omitempty"`
	MinArea   float64 `json:"min_area,omitempty"`
	MaxArea   float64 `json:"max_area,omitempty"`
	Sort      string  `json:"sort,omitempty"`
	Page      int     `json:"page"`
	PageSize  int     `json:"page_size"`
}

// FilterFromQuery builds a normalized filter from request query values.
// Unparseable numbers are ignored rather than rejected.
func FilterFromQuery(q url.Values, defaultPageSize int) Filter {
	f := Filter{
		Search:    strings.TrimSpace(q.Get("search")),
		Category:  strings.TrimSpace(firstNonEmpty(q.Get("category"), q.Get("type"))),
		Location:  strings.TrimSpace(q.Get("location")),
		Condition: strings.TrimSpace(q.Get("condition")),
		MinPrice:  parseFloat(q.Get("min_price")),
		MaxPrice:  parseFloat(q.Get("max_price")),
		MinArea:   parseFloat(q.Get("min_area")),
		MaxArea:   parseFloat(q.Get("max_area")),
		Sort:      q.Get("sort"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(firstNonEmpty(q.Get("page_size"), q.Get("limit")))
	if f.PageSize <= 0 {
		f.PageSize = defaultPageSize
	}
	return f.Normalize()
}

// Normalize clamps paging and replaces an unknown sort key with newest.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	if !validSorts[f.Sort] {
		f.Sort = SortNewest
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type Metadata struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasPrevPage bool  `json:"hasPrevPage"`
	HasNextPage bool  `json:"hasNextPage"`
}

func NewMetadata(total int64, f Filter) Metadata {
	totalPages := int(math.Ceil(float64(total) / float64(f.PageSize)))
	return Metadata{
		Total:       total,
		Page:        f.Page,
		Limit:       f.PageSize,
		TotalPages:  totalPages,
		HasPrevPage: f.Page > 1,
		HasNextPage: f.Page < totalPages,
	}
}

type Page[T any] struct {
	Items    []T      `json:"items"`
	Metadata Metadata `json:"metadata"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
