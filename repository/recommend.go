package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/Ginagitwhat123/PaganiniViolin/models"
)

// ErrProductNotFound signals that the recommendation source id does not
// exist in the catalog.
var ErrProductNotFound = errors.New("product not found")

// RecommendLimit caps the similar-products strip on the detail page.
const RecommendLimit = 4

type recommendRow struct {
	ID            int      `gorm:"column:id"`
	ProductName   string   `gorm:"column:product_name"`
	Price         *float64 `gorm:"column:price"`
	DiscountPrice *float64 `gorm:"column:discount_price"`
	BrandName     string   `gorm:"column:brand_name"`
	Pictures      *string  `gorm:"column:pictures"`
}

// buildTierSQL builds one tier of the recommendation query: same category,
// same or different brand, source excluded, random order, capped by the
// remaining budget.
func buildTierSQL(categoryID, brandID, excludeID int, sameBrand bool, budget int) (string, []interface{}, error) {
	builder := squirrel.Select(
		"product.id",
		"product.product_name",
		"product.price::float8 AS price",
		"product.discount_price::float8 AS discount_price",
		"product_brand.name AS brand_name",
		"STRING_AGG(product_picture.picture_url::text, ',' ORDER BY product_picture.id) AS pictures",
	).
		From("product").
		Join("product_brand ON product.brand_id = product_brand.id").
		LeftJoin("product_picture ON product.id = product_picture.product_id").
		Where(squirrel.Eq{"product.category_id": categoryID}).
		Where(squirrel.NotEq{"product.id": excludeID})

	if sameBrand {
		builder = builder.Where(squirrel.Eq{"product.brand_id": brandID})
	} else {
		builder = builder.Where(squirrel.NotEq{"product.brand_id": brandID})
	}

	return builder.
		GroupBy(
			"product.id",
			"product.product_name",
			"product.price",
			"product.discount_price",
			"product_brand.name",
		).
		OrderBy("RANDOM()").
		Limit(uint64(budget)).
		ToSql()
}

func fillTier(ctx context.Context, db *gorm.DB, categoryID, brandID, excludeID int, sameBrand bool, budget int) ([]models.RecommendedProduct, error) {
	if budget <= 0 {
		return nil, nil
	}

	tierSQL, args, err := buildTierSQL(categoryID, brandID, excludeID, sameBrand, budget)
	if err != nil {
		return nil, fmt.Errorf("building recommendation tier query: %w", err)
	}

	var rows []recommendRow
	if err := db.WithContext(ctx).Raw(tierSQL, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching recommendation tier: %w", err)
	}

	recs := make([]models.RecommendedProduct, 0, len(rows))
	for _, row := range rows {
		rec := models.RecommendedProduct{
			ID:          row.ID,
			ProductName: row.ProductName,
			BrandName:   row.BrandName,
			Pictures:    []string{},
		}
		if row.Price != nil {
			rec.Price = models.SafePrice(*row.Price)
		}
		if row.DiscountPrice != nil && *row.DiscountPrice > 0 {
			discount := models.SafePrice(*row.DiscountPrice)
			rec.DiscountPrice = &discount
		}
		if row.Pictures != nil {
			rec.Pictures = models.SplitPictures(*row.Pictures)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Recommend picks up to 4 similar products for a detail page: first
// same-category same-brand, then same-category other-brand, random within
// each tier. Both tiers empty is a valid, non-error outcome.
func Recommend(ctx context.Context, db *gorm.DB, productID int) ([]models.RecommendedProduct, error) {
	var source struct {
		CategoryID int `gorm:"column:category_id"`
		BrandID    int `gorm:"column:brand_id"`
	}

	sourceSQL, sourceArgs, err := squirrel.Select("product.category_id", "product.brand_id").
		From("product").
		Where(squirrel.Eq{"product.id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building source lookup: %w", err)
	}

	res := db.WithContext(ctx).Raw(sourceSQL, sourceArgs...).Scan(&source)
	if res.Error != nil {
		return nil, fmt.Errorf("resolving source product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	recs, err := fillTier(ctx, db, source.CategoryID, source.BrandID, productID, true, RecommendLimit)
	if err != nil {
		return nil, err
	}

	if remaining := RecommendLimit - len(recs); remaining > 0 {
		tier2, err := fillTier(ctx, db, source.CategoryID, source.BrandID, productID, false, remaining)
		if err != nil {
			return nil, err
		}
		recs = append(recs, tier2...)
	}

	// each tier already respects its budget; this cap only guards against
	// over-supply
	if len(recs) > RecommendLimit {
		recs = recs[:RecommendLimit]
	}
	return recs, nil
}
