package facet_controller

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	facet_cache "github.com/Ginagitwhat123/PaganiniViolin/cache"
	"github.com/Ginagitwhat123/PaganiniViolin/config"
	"github.com/Ginagitwhat123/PaganiniViolin/middleware"
	"github.com/Ginagitwhat123/PaganiniViolin/models"
	"github.com/Ginagitwhat123/PaganiniViolin/repository"
)

// GetCatalogFacets godoc
// @Summary Get filter facets for the storefront sidebar
// @Description Returns category and brand counts plus the catalog-wide effective price range, fetched once per browsing session to seed the filter UI
// @Tags Storefront - Facets
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.CatalogFacets}
// @Failure 503 {object} models.ApiResponse
// @Router /store/products/facets [get]
func GetCatalogFacets(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middleware.RecordCatalogOperation("facets", ok)
	}()

	if facets, ok := facet_cache.Get(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, facets))
		return
	}

	db := config.StoreGorm

	// Run the three facet queries concurrently for better performance
	var wg sync.WaitGroup
	var mu sync.Mutex

	facets := models.CatalogFacets{}
	var errs []error

	wg.Add(1)
	go func() {
		defer wg.Done()
		categories, err := getCategoryCounts(db)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		} else {
			facets.Categories = categories
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		brands, err := getBrandCounts(db)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		} else {
			facets.Brands = brands
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		priceRange, err := getPriceRange(db)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		} else {
			facets.PriceRange = priceRange
		}
	}()

	wg.Wait()

	if len(errs) > 0 {
		log.Printf("❌ facet queries failed: %v", errs)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Catalog temporarily unavailable, please retry"))
		return
	}

	facet_cache.Set(facets)

	c.JSON(http.StatusOK, models.SuccessResponse(c, facets))
}

// getCategoryCounts fetches every category with its product count.
func getCategoryCounts(db *gorm.DB) ([]models.FacetOption, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := `
		SELECT DISTINCT
			product_category.name,
			COUNT(product.id)::INTEGER AS count
		FROM product_category
		LEFT JOIN product ON product.category_id = product_category.id
		GROUP BY product_category.name
		ORDER BY product_category.name
	`

	options := make([]models.FacetOption, 0)
	if err := db.WithContext(ctx).Raw(query).Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// getBrandCounts fetches every brand with its product count.
func getBrandCounts(db *gorm.DB) ([]models.FacetOption, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := `
		SELECT DISTINCT
			product_brand.name,
			COUNT(product.id)::INTEGER AS count
		FROM product_brand
		LEFT JOIN product ON product.brand_id = product_brand.id
		GROUP BY product_brand.name
		ORDER BY product_brand.name
	`

	options := make([]models.FacetOption, 0)
	if err := db.WithContext(ctx).Raw(query).Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// getPriceRange fetches the effective-price extremes over the whole
// catalog. An empty catalog yields the clamped defaults rather than NULLs.
func getPriceRange(db *gorm.DB) (models.PriceRange, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	query := `
		SELECT
			COALESCE(MIN(` + repository.EffectivePriceSQL + `), 0)::INTEGER AS min_price,
			COALESCE(MAX(` + repository.EffectivePriceSQL + `), 1000000)::INTEGER AS max_price
		FROM product
		WHERE product.price > 0
	`

	var priceRange models.PriceRange
	if err := db.WithContext(ctx).Raw(query).Scan(&priceRange).Error; err != nil {
		return models.PriceRange{}, err
	}
	return priceRange, nil
}
