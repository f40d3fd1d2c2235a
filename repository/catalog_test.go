package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestListSQLAppliesAllPredicates(t *testing.T) {
	q := CatalogQuery{
		Page:     1,
		Limit:    9,
		Search:   "violin",
		Category: "小提琴",
		Brand:    "Yamaha",
		Sort:     SortDefault,
		MinPrice: floatPtr(1000),
		MaxPrice: floatPtr(3000),
	}

	sql, args, err := q.buildListSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, "product_category.name = ?")
	assert.Contains(t, sql, "product_brand.name = ?")
	assert.Contains(t, sql, "product.product_name ILIKE ?")
	assert.Contains(t, sql, "product_brand.name ILIKE ?")
	assert.Contains(t, sql, "product_category.name ILIKE ?")
	assert.Contains(t, sql, EffectivePriceSQL+" >= ?")
	assert.Contains(t, sql, EffectivePriceSQL+" <= ?")
	assert.Contains(t, sql, "GROUP BY product.id")
	assert.Equal(t, []interface{}{"小提琴", "Yamaha", "%violin%", "%violin%", "%violin%", 1000.0, 3000.0}, args)
}

func TestEmptyFiltersAddNoPredicates(t *testing.T) {
	q := CatalogQuery{Page: 1, Limit: 9}

	sql, args, err := q.buildListSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)
}

func TestCountUsesSamePredicateSetAsPage(t *testing.T) {
	q := CatalogQuery{
		Page:     2,
		Limit:    9,
		Search:   "bow",
		Category: "琴弓",
		MinPrice: floatPtr(500),
		MaxPrice: floatPtr(9000),
	}

	_, listArgs, err := q.buildListSQL()
	require.NoError(t, err)
	countSQL, countArgs, err := q.buildCountSQL()
	require.NoError(t, err)

	// identical bindings: the page and its count can never disagree on
	// the filter state
	assert.Equal(t, listArgs, countArgs)
	assert.Contains(t, countSQL, "COUNT(DISTINCT product.id)")
}

func TestOverallCountIgnoresEveryFilter(t *testing.T) {
	sql, args, err := buildOverallCountSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(DISTINCT product.id) FROM product", sql)
	assert.Empty(t, args)
}

func TestInvertedPriceRangeDropsPricePredicateOnly(t *testing.T) {
	q := CatalogQuery{
		Page:     1,
		Limit:    9,
		Category: "大提琴",
		MinPrice: floatPtr(3000),
		MaxPrice: floatPtr(1000),
	}

	sql, args, err := q.buildListSQL()
	require.NoError(t, err)

	assert.NotContains(t, sql, EffectivePriceSQL+" >= ?")
	assert.NotContains(t, sql, EffectivePriceSQL+" <= ?")
	// the category predicate still applies
	assert.Contains(t, sql, "product_category.name = ?")
	assert.Equal(t, []interface{}{"大提琴"}, args)
}

func TestSingleSidedPriceBounds(t *testing.T) {
	q := CatalogQuery{Page: 1, Limit: 9, MinPrice: floatPtr(2000)}
	sql, args, err := q.buildListSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, EffectivePriceSQL+" >= ?")
	assert.NotContains(t, sql, EffectivePriceSQL+" <= ?")
	assert.Equal(t, []interface{}{2000.0}, args)

	q = CatalogQuery{Page: 1, Limit: 9, MaxPrice: floatPtr(2000)}
	sql, args, err = q.buildListSQL()
	require.NoError(t, err)
	assert.NotContains(t, sql, EffectivePriceSQL+" >= ?")
	assert.Contains(t, sql, EffectivePriceSQL+" <= ?")
	assert.Equal(t, []interface{}{2000.0}, args)
}

func TestSortOrders(t *testing.T) {
	cases := []struct {
		sort  string
		order string
	}{
		{SortPriceAsc, EffectivePriceSQL + " ASC"},
		{SortPriceDesc, EffectivePriceSQL + " DESC"},
		{SortOldest, "product.id ASC"},
		{SortNewest, "product.id DESC"},
		{SortDefault, "product.id ASC"},
		{"bogus", "product.id ASC"}, // unknown keys fall back
		{"", "product.id ASC"},
	}

	for _, tc := range cases {
		q := CatalogQuery{Page: 1, Limit: 9, Sort: tc.sort}
		sql, _, err := q.buildListSQL()
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY "+tc.order, "sort=%q", tc.sort)
	}
}

func TestPaginationOffsets(t *testing.T) {
	q := CatalogQuery{Page: 3, Limit: 9}
	sql, _, err := q.buildListSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 9")
	assert.Contains(t, sql, "OFFSET 18")

	// out-of-range inputs normalize instead of failing
	q = CatalogQuery{Page: 0, Limit: 0}
	sql, _, err = q.buildListSQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 9")
	assert.Contains(t, sql, "OFFSET 0")
}
