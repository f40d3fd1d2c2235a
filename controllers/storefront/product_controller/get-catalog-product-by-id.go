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

// GetCatalogProductByID godoc
// @Summary Get single product details
// @Description Get detailed product information by ID, including ordered pictures and size/stock entries
// @Tags Storefront - Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Product}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /store/products/{id} [get]
func GetCatalogProductByID(c *gin.Context) {
	defer func() {
		ok := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middleware.RecordCatalogOperation("detail", ok)
	}()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := repository.GetProduct(ctx, config.StoreGorm, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		log.Printf("❌ product detail failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Catalog temporarily unavailable, please retry"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, product))
}
