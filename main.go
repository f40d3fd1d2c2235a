// @title Paganini Violin Storefront API
// @version 1.0
// @description Catalog query and recommendation backend for the Paganini Violin storefront
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Ginagitwhat123/PaganiniViolin/config"
	"github.com/Ginagitwhat123/PaganiniViolin/consumers"
	"github.com/Ginagitwhat123/PaganiniViolin/middleware"
	"github.com/Ginagitwhat123/PaganiniViolin/rabbitmq"
	"github.com/Ginagitwhat123/PaganiniViolin/routes"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	defer config.CloseDB()
	// Redis connection
	config.ConnectRedis()

	// RabbitMQ is optional: the storefront serves reads without a broker,
	// it just keeps facet data cached for the full TTL.
	rmq, err := rabbitmq.NewRabbitMQ()
	if err != nil {
		log.Printf("⚠️ RabbitMQ initialization failed: %v (proceeding without messaging)", err)
	} else {
		defer rmq.Close()

		if err := rmq.Setup(); err != nil {
			log.Printf("⚠️ Failed to setup RabbitMQ queues: %v", err)
		} else {
			consumers.StartCatalogConsumer(rmq.Channel)
			log.Println("✅ Catalog event consumer started")
		}
	}

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))
	router.Use(middleware.RequestID())
	router.Use(middleware.PrometheusMiddleware())

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes
	api := router.Group("/api/v1")

	// Public storefront with a generous per-IP limit
	api.Use(middleware.RateLimiter(300, time.Minute))
	routes.SetupStorefrontRoutes(api)
	log.Println("✅ Storefront routes registered")

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	fmt.Printf("🚀 Server is running on http://localhost:%s\n", port)
	router.Run(":" + port)
}
