package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/officina-stampa/fulfillment-api/config"
	"github.com/officina-stampa/fulfillment-api/controllers"
	"github.com/officina-stampa/fulfillment-api/middleware"
	"github.com/officina-stampa/fulfillment-api/models"
	"github.com/officina-stampa/fulfillment-api/services"
)

func main() {
	log.Println("Starting fulfillment API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Worker{},
		&models.ProductType{},
		&models.SubCategory{},
		&models.PriceList{},
		&models.ColorIncrement{},
		&models.WorkStatusConfig{},
		&models.Order{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Label storage is optional: without S3 credentials, exports fail per
	// order and printing still works
	var labels services.LabelStorage
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitLabelStorage(); err != nil {
			log.Printf("Label storage unavailable, exports disabled: %v", err)
		} else {
			labels = services.GetLabelStorage()
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, label exports disabled")
	}

	services.InitEngine(
		services.NewGormOrderStore(db),
		services.NewSpoolPrinter(cfg.PrintSpoolDir),
		labels,
		time.Duration(cfg.ExportSettleMS)*time.Millisecond,
	)

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the HTTP surface: CORS for the separate front end,
// JWT-protected API routes, and the public health/metrics/worker-login
// endpoints.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Shop-floor login has no JWT: workers authenticate by access code
		v1.POST("/worker-login", controllers.WorkerLogin)

		protected := v1.Group("")
		protected.Use(middleware.EnsureValidToken(cfg))
		{
			protected.GET("/users/me", controllers.GetCurrentUser)
			protected.POST("/users/me", controllers.CreateCurrentUser)

			protected.GET("/orders", controllers.ListOrders)
			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/orders/barcode/:code", controllers.GetOrderByBarcode)
			protected.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			protected.PATCH("/orders/:id/price", controllers.UpdateManualPrice)
			protected.DELETE("/orders/:id", controllers.DeleteOrder)

			protected.POST("/orders/batch/print", controllers.BatchPrint)
			protected.POST("/orders/batch/export", controllers.BatchExport)
			protected.POST("/orders/batch/delete", controllers.BatchDelete)
			protected.POST("/orders/batch/csv", controllers.BatchCSV)

			protected.GET("/work-statuses", controllers.GetWorkStatuses)

			protected.GET("/product-types", controllers.ListProductTypes)
			protected.GET("/sub-categories", controllers.ListSubCategories)
			protected.GET("/color-increments", controllers.ListColorIncrements)
			protected.GET("/price-lists", controllers.ListPriceLists)

			protected.GET("/customers", controllers.ListCustomers)
			protected.GET("/customers/suggest", controllers.SuggestCustomers)
			protected.POST("/customers", controllers.CreateCustomer)
			protected.PUT("/customers/:id", controllers.UpdateCustomer)
			protected.DELETE("/customers/:id", controllers.DeleteCustomer)

			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/work-statuses", controllers.SaveWorkStatuses)

				admin.POST("/product-types", controllers.CreateProductType)
				admin.DELETE("/product-types/:id", controllers.DeleteProductType)
				admin.POST("/sub-categories", controllers.CreateSubCategory)
				admin.DELETE("/sub-categories/:id", controllers.DeleteSubCategory)
				admin.POST("/color-increments", controllers.CreateColorIncrement)
				admin.DELETE("/color-increments/:id", controllers.DeleteColorIncrement)
				admin.POST("/price-lists", controllers.CreatePriceList)
				admin.DELETE("/price-lists/:id", controllers.DeletePriceList)

				admin.GET("/workers", controllers.ListWorkers)
				admin.POST("/workers", controllers.CreateWorker)
				admin.DELETE("/workers/:id", controllers.DeleteWorker)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fulfillment API is running",
	})
}
