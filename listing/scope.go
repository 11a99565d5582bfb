package listing

import (
	"strings"

	"gorm.io/gorm"
)

// Columns maps filter fields to the columns of one table. An empty column
// disables the corresponding predicate or sort for that table.
type Columns struct {
	Search    []string
	Category  string
	Condition string
	Location  string
	Price     string
	Area      string
	Rating    string
	Created   string
}

// Scope pushes the predicates and ordering of f down to SQL.
func Scope(f Filter, cols Columns) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = Where(f, cols)(db)
		return db.Order(orderClause(f.Normalize().Sort, cols))
	}
}

// Where applies only the predicates, so it can be reused for counting.
func Where(f Filter, cols Columns) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" && len(cols.Search) > 0 {
			like := "%" + strings.ToLower(f.Search) + "%"
			clauses := make([]string, 0, len(cols.Search))
			args := make([]any, 0, len(cols.Search))
			for _, c := range cols.Search {
				clauses = append(clauses, "LOWER("+c+") LIKE ?")
				args = append(args, like)
			}
			db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
		}
		if f.Category != "" && cols.Category != "" {
			db = db.Where("LOWER("+cols.Category+") = ?", strings.ToLower(f.Category))
		}
		if f.Condition != "" && cols.Condition != "" {
			db = db.Where("LOWER("+cols.Condition+") = ?", strings.ToLower(f.Condition))
		}
		if f.Location != "" && cols.Location != "" {
			db = db.Where("LOWER("+cols.Location+") LIKE ?", "%"+strings.ToLower(f.Location)+"%")
		}
		if cols.Price != "" {
			if f.MinPrice > 0 {
				db = db.Where(cols.Price+" >= ?", f.MinPrice)
			}
			if f.MaxPrice > 0 {
				db = db.Where(cols.Price+" <= ?", f.MaxPrice)
			}
		}
		if cols.Area != "" {
			if f.MinArea > 0 {
				db = db.Where(cols.Area+" >= ?", f.MinArea)
			}
			if f.MaxArea > 0 {
				db = db.Where(cols.Area+" <= ?", f.MaxArea)
			}
		}
		return db
	}
}

// Paginate limits the query to the page described by f.
func Paginate(f Filter) func(*gorm.DB) *gorm.DB {
	f = f.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(f.PageSize).Offset(f.Offset())
	}
}

// Column names come from Columns literals in code, never from requests.
func orderClause(sortKey string, cols Columns) string {
	created := cols.Created
	if created == "" {
		created = "created_at"
	}
	switch sortKey {
	case SortOldest:
		return created + " ASC"
	case SortPriceAsc:
		if cols.Price != "" {
			return cols.Price + " ASC, " + created + " DESC"
		}
	case SortPriceDesc:
		if cols.Price != "" {
			return cols.Price + " DESC, " + created + " DESC"
		}
	case SortAreaAsc:
		if cols.Area != "" {
			return cols.Area + " ASC, " + created + " DESC"
		}
	case SortAreaDesc:
		if cols.Area != "" {
			return cols.Area + " DESC, " + created + " DESC"
		}
	case SortRating:
		if cols.Rating != "" {
			return cols.Rating + " DESC, " + created + " DESC"
		}
	}
	return created + " DESC"
}

// ListingColumns are the columns of the shared listing base.
func ListingColumns(category string) Columns {
	return Columns{
		Search:   []string{"title", "description", "location"},
		Category: category,
		Location: "location",
		Price:    "price",
		Created:  "created_at",
	}
}
