package listing

import (
	"sort"
	"strings"
	"time"
)

// Item is what the in-memory pipeline needs to know about a record.
type Item interface {
	SearchFields() []string
	CategoryValue() string
	ConditionValue() string
	LocationValue() string
	PriceValue() float64
	AreaValue() float64
	RatingValue() float64
	CreatedTime() time.Time
}

// Matches reports whether item satisfies every active predicate of f.
func Matches(item Item, f Filter) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		found := false
		for _, field := range item.SearchFields() {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(item.CategoryValue(), f.Category) {
		return false
	}
	if f.Condition != "" && !strings.EqualFold(item.ConditionValue(), f.Condition) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(item.LocationValue()), strings.ToLower(f.Location)) {
		return false
	}
	if !inRange(item.PriceValue(), f.MinPrice, f.MaxPrice) {
		return false
	}
	if !inRange(item.AreaValue(), f.MinArea, f.MaxArea) {
		return false
	}
	return true
}

func inRange(v, min, max float64) bool {
	if min > 0 && v < min {
		return false
	}
	if max > 0 && v > max {
		return false
	}
	return true
}

// Less returns the comparator for a sort key. Ties keep input order since
// Apply uses a stable sort.
func Less[T Item](sortKey string) func(a, b T) bool {
	switch sortKey {
	case SortOldest:
		return func(a, b T) bool { return a.CreatedTime().Before(b.CreatedTime()) }
	case SortPriceAsc:
		return func(a, b T) bool { return a.PriceValue() < b.PriceValue() }
	case SortPriceDesc:
		return func(a, b T) bool { return a.PriceValue() > b.PriceValue() }
	case SortAreaAsc:
		return func(a, b T) bool { return a.AreaValue() < b.AreaValue() }
	case SortAreaDesc:
		return func(a, b T) bool { return a.AreaValue() > b.AreaValue() }
	case SortRating:
		return func(a, b T) bool { return a.RatingValue() > b.RatingValue() }
	default:
		return func(a, b T) bool { return a.CreatedTime().After(b.CreatedTime()) }
	}
}

// Apply filters, sorts and paginates items without mutating the input.
func Apply[T Item](items []T, f Filter) Page[T] {
	f = f.Normalize()

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, f) {
			matched = append(matched, item)
		}
	}

	less := Less[T](f.Sort)
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	total := int64(len(matched))
	start := f.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return Page[T]{
		Items:    matched[start:end],
		Metadata: NewMetadata(total, f),
	}
}
