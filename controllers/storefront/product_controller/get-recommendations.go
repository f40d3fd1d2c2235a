package product_controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ginagitwhat123/PaganiniViolin/config"
	"github.com/Ginagitwhat123/PaganiniViolin/middleware"
	"github.com/Ginagitwhat123/PaganiniViolin/models"
	"github.com/Ginagitwhat123/PaganiniViolin/repository"
)

// GetRecommendations godoc
// @Summary Get similar products for a detail page
// @Description Returns up to 4 products: same category and brand first, then same category with other brands, randomized within each tier
// @Tags Storefront - Products
// @Produce json
// @Param id path int true "Source product ID"
// @Success 200 {object} models.ApiResponse{data=[]models.RecommendedProduct}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Source product unknown"
// @Failure 503 {object} models.ApiResponse
// @Router /store/products/recommend/{id} [get]
func GetRecommendations(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middleware.RecordCatalogOperation("recommend", ok)
	}()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	recs, err := repository.Recommend(ctx, config.StoreGorm, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		log.Printf("❌ recommendations failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Catalog temporarily unavailable, please retry"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, recs))
}
