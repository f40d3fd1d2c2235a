package product_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ginagitwhat123/PaganiniViolin/config"
	"github.com/Ginagitwhat123/PaganiniViolin/middleware"
	"github.com/Ginagitwhat123/PaganiniViolin/models"
	"github.com/Ginagitwhat123/PaganiniViolin/repository"
)

// GetCatalogProducts godoc
// @Summary List catalog products with filters
// @Description Retrieve products with optional search, category, brand, price range, sorting, and pagination. Returns the filtered total and the catalog-wide total alongside the page.
// @Tags Storefront - Products
// @Produce json
// @Param search query string false "Search text (product, brand, or category name)"
// @Param category query string false "Category name (exact match)"
// @Param brand query string false "Brand name (exact match)"
// @Param sort query string false "Sort order (default | priceAsc | priceDesc | oldest | newest)" default(default)
// @Param minPrice query number false "Minimum effective price"
// @Param maxPrice query number false "Maximum effective price"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(9)
// @Success 200 {object} models.ApiResponse{data=models.CatalogData}
// @Failure 503 {object} models.ApiResponse "Catalog temporarily unavailable"
// @Router /store/products [get]
func GetCatalogProducts(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middleware.RecordCatalogOperation("list", ok)
	}()

	page, limit := parsePagination(c)

	query := repository.CatalogQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Sort:     c.DefaultQuery("sort", repository.SortDefault),
		MinPrice: parsePrice(c.Query("minPrice")),
		MaxPrice: parsePrice(c.Query("maxPrice")),
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	data, err := repository.ListCatalog(ctx, config.StoreGorm, query)
	if err != nil {
		log.Printf("❌ catalog listing failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Catalog temporarily unavailable, please retry"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, data))
}
