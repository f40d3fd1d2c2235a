package routes

import (
	"github.com/gin-gonic/gin"

	store_facet "github.com/Ginagitwhat123/PaganiniViolin/controllers/storefront/facet_controller"
	store_product "github.com/Ginagitwhat123/PaganiniViolin/controllers/storefront/product_controller"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	products := store.Group("/products")
	{
		products.GET("", store_product.GetCatalogProducts) // List with filters

		products.GET("/facets", store_facet.GetCatalogFacets)            // Filter sidebar seed data
		products.GET("/recommend/:id", store_product.GetRecommendations) // Similar products
		products.GET("/:id", store_product.GetCatalogProductByID)        // Single product
	}
}
