package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/Ginagitwhat123/PaganiniViolin/models"
)

// GetProduct fetches one product with its aggregated pictures and sizes.
func GetProduct(ctx context.Context, db *gorm.DB, productID int) (models.Product, error) {
	detailSQL, args, err := squirrel.Select(
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
		LeftJoin("product_size ON product.id = product_size.product_id").
		Where(squirrel.Eq{"product.id": productID}).
		GroupBy(
			"product.id",
			"product.product_name",
			"product.price",
			"product.discount_price",
			"product.description",
			"product_category.name",
			"product_brand.name",
		).
		ToSql()
	if err != nil {
		return models.Product{}, fmt.Errorf("building product query: %w", err)
	}

	var row catalogRow
	res := db.WithContext(ctx).Raw(detailSQL, args...).Scan(&row)
	if res.Error != nil {
		return models.Product{}, fmt.Errorf("fetching product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	return rowToProduct(row), nil
}
