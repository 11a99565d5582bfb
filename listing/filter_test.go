package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("search", "  tractor ")
	q.Set("type", "Harvester")
	q.Set("min_price", "100")
	q.Set("max_price", "abc")
	q.Set("min_area", "-4")
	q.Set("sort", "price_desc")
	q.Set("page", "2")

	f := FilterFromQuery(q, 12)
	assert.Equal(t, "tractor", f.Search)
	assert.Equal(t, "Harvester", f.Category)
	assert.Equal(t, 100.0, f.MinPrice)
	assert.Zero(t, f.MaxPrice)
	assert.Zero(t, f.MinArea)
	assert.Equal(t, SortPriceDesc, f.Sort)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 12, f.PageSize)
	assert.Equal(t, 12, f.Offset())
}

func TestNormalize(t *testing.T) {
	f := Filter{Sort: "price; DROP TABLE equipment", Page: -3, PageSize: 5000}.Normalize()
	assert.Equal(t, SortNewest, f.Sort)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 100, f.PageSize)
}

func TestCacheKeyIsStablePerFilter(t *testing.T) {
	a := CacheKey("land", Filter{Search: "river", Page: 1})
	b := CacheKey("land", Filter{Search: "river"})
	c := CacheKey("land", Filter{Search: "river", Page: 2})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "land:list:")
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	var dest []int
	assert.False(t, c.Get(t.Context(), "k", &dest))
	c.Set(t.Context(), "k", []int{1})
	c.Invalidate("land")
}
