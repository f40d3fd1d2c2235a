package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/Ginagitwhat123/PaganiniViolin/models"
)

// Sort keys accepted by the listing endpoint. Anything else falls back to
// SortDefault.
const (
	SortDefault   = "default"
	SortPriceAsc  = "priceAsc"
	SortPriceDesc = "priceDesc"
	SortOldest    = "oldest"
	SortNewest    = "newest"
)

const DefaultPageSize = 9

// EffectivePriceSQL is the one price expression shared by filtering,
// sorting, and the facet price range: the discount price counts only when
// it is a real markdown.
const EffectivePriceSQL = `CASE WHEN product.discount_price IS NOT NULL ` +
	`AND product.discount_price > 0 AND product.discount_price < product.price ` +
	`THEN product.discount_price::NUMERIC ELSE product.price::NUMERIC END`

// CatalogQuery is a validated filter request. Nil price bounds mean
// "unconstrained"; an inverted pair is treated the same way.
type CatalogQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Brand    string
	Sort     string
	MinPrice *float64
	MaxPrice *float64
}

type catalogRow struct {
	ID            int      `gorm:"column:id"`
	ProductName   string   `gorm:"column:product_name"`
	Price         *float64 `gorm:"column:price"`
	DiscountPrice *float64 `gorm:"column:discount_price"`
	Description   string   `gorm:"column:description"`
	CategoryName  string   `gorm:"column:category_name"`
	BrandName     string   `gorm:"column:brand_name"`
	Pictures      *string  `gorm:"column:pictures"`
	Sizes         *string  `gorm:"column:sizes"`
}

// predicates assembles the optional AND-combined filter conditions. Every
// predicate carries its own bindings, so the clause order never depends on
// which filters happen to be set.
func (q CatalogQuery) predicates() []squirrel.Sqlizer {
	var preds []squirrel.Sqlizer

	if q.Category != "" {
		preds = append(preds, squirrel.Eq{"product_category.name": q.Category})
	}
	if q.Brand != "" {
		preds = append(preds, squirrel.Eq{"product_brand.name": q.Brand})
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		preds = append(preds, squirrel.Or{
			squirrel.ILike{"product.product_name": pattern},
			squirrel.ILike{"product_brand.name": pattern},
			squirrel.ILike{"product_category.name": pattern},
		})
	}

	minPrice, maxPrice := q.MinPrice, q.MaxPrice
	if minPrice != nil && maxPrice != nil && *maxPrice < *minPrice {
		// an inverted range reads as "no price constraint", not as an
		// empty result set
		minPrice, maxPrice = nil, nil
	}
	if minPrice != nil {
		preds = append(preds, squirrel.Expr(EffectivePriceSQL+" >= ?", *minPrice))
	}
	if maxPrice != nil {
		preds = append(preds, squirrel.Expr(EffectivePriceSQL+" <= ?", *maxPrice))
	}

	return preds
}

func (q CatalogQuery) orderClause() string {
	switch q.Sort {
	case SortPriceAsc:
		return EffectivePriceSQL + " ASC"
	case SortPriceDesc:
		return EffectivePriceSQL + " DESC"
	case SortOldest:
		return "product.id ASC"
	case SortNewest:
		return "product.id DESC"
	default:
		// stable tie-break so pagination never duplicates or drops rows
		return "product.id ASC"
	}
}

// buildListSQL builds the page query: one output row per product id, with
// pictures and sizes folded in by aggregation.
func (q CatalogQuery) buildListSQL() (string, []interface{}, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	offset := (page - 1) * limit

	builder := squirrel.Select(
		"product.id",
		"product.product_name",
		"product.price::float8 AS price",
		"product.discount_price::float8 AS discount_price",
		"product.description",
		"product_category.name AS category_name",
		"product_brand.name AS brand_name",
		"STRING_AGG(product_picture.picture_url::text, ',' ORDER BY product_picture.id) AS pictures",
		`STRING_AGG(DISTINCT CASE
			WHEN product_size.size IS NOT NULL AND product_size.size != '' THEN product_size.size || ':' || product_size.stock::text
			ELSE product_size.stock::text
		END, ',') AS sizes`,
	).
		From("product").
		Join("product_brand ON product.brand_id = product_brand.id").
		Join("product_category ON product.category_id = product_category.id").
		LeftJoin("product_picture ON product.id = product_picture.product_id").
		LeftJoin("product_size ON product.id = product_size.product_id")

	for _, pred := range q.predicates() {
		builder = builder.Where(pred)
	}

	builder = builder.
		GroupBy(
			"product.id",
			"product.product_name",
			"product.price",
			"product.discount_price",
			"product.description",
			"product_category.name",
			"product_brand.name",
		).
		OrderBy(q.orderClause()).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	return builder.ToSql()
}

// buildCountSQL builds the filtered count over the same predicate set as
// the page query.
func (q CatalogQuery) buildCountSQL() (string, []interface{}, error) {
	builder := squirrel.Select("COUNT(DISTINCT product.id)").
		From("product").
		Join("product_brand ON product.brand_id = product_brand.id").
		Join("product_category ON product.category_id = product_category.id")

	for _, pred := range q.predicates() {
		builder = builder.Where(pred)
	}

	return builder.ToSql()
}

func buildOverallCountSQL() (string, []interface{}, error) {
	return squirrel.Select("COUNT(DISTINCT product.id)").From("product").ToSql()
}

// ListCatalog runs the page query and both counts from one validated query
// value, so the three reads can never observe different filter states.
func ListCatalog(ctx context.Context, db *gorm.DB, q CatalogQuery) (models.CatalogData, error) {
	data := models.CatalogData{Products: []models.Product{}}

	listSQL, listArgs, err := q.buildListSQL()
	if err != nil {
		return data, fmt.Errorf("building catalog query: %w", err)
	}

	var rows []catalogRow
	if err := db.WithContext(ctx).Raw(listSQL, listArgs...).Scan(&rows).Error; err != nil {
		return data, fmt.Errorf("fetching catalog page: %w", err)
	}

	for _, row := range rows {
		data.Products = append(data.Products, rowToProduct(row))
	}

	countSQL, countArgs, err := q.buildCountSQL()
	if err != nil {
		return data, fmt.Errorf("building count query: %w", err)
	}
	var total int64
	if err := db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return data, fmt.Errorf("counting filtered products: %w", err)
	}
	data.Total = int(total)

	overallSQL, overallArgs, err := buildOverallCountSQL()
	if err != nil {
		return data, fmt.Errorf("building overall count query: %w", err)
	}
	var overall int64
	if err := db.WithContext(ctx).Raw(overallSQL, overallArgs...).Scan(&overall).Error; err != nil {
		return data, fmt.Errorf("counting catalog: %w", err)
	}
	data.OverallTotal = int(overall)

	return data, nil
}

func rowToProduct(row catalogRow) models.Product {
	p := models.Product{
		ID:           row.ID,
		ProductName:  row.ProductName,
		Description:  row.Description,
		CategoryName: row.CategoryName,
		BrandName:    row.BrandName,
		Pictures:     []string{},
		Sizes:        []models.SizeStock{},
	}
	if row.Price != nil {
		p.Price = models.SafePrice(*row.Price)
	}
	if row.DiscountPrice != nil && *row.DiscountPrice > 0 {
		discount := models.SafePrice(*row.DiscountPrice)
		p.DiscountPrice = &discount
	}
	if row.Pictures != nil {
		p.Pictures = models.SplitPictures(*row.Pictures)
	}
	if row.Sizes != nil {
		p.Sizes = models.ParseSizes(*row.Sizes)
	}
	return p
}
