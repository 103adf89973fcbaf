package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retailcore/pkg/logger"
	"retailcore/pkg/metrics"
)

const serviceName = "store-service"

// SetupRoutes настраивает все маршруты Store Service
// Чтение доступно любому аутентифицированному пользователю, изменения каталога - manager и admin
func SetupRoutes(h *StoreHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	writers := authMiddleware.RequireRole("manager", "admin")

	api := router.Group("")
	api.Use(authMiddleware.Authenticate())
	{
		products := api.Group("/products")
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", writers, h.CreateProduct)
		products.PUT("/:id/price", writers, h.UpdatePrice)
		products.PUT("/:id/stock", writers, h.UpdateStock)
		products.PUT("/:id/discount", writers, h.SetDiscount)

		categories := api.Group("/categories")
		categories.GET("", h.ListCategories)
		categories.POST("", writers, h.CreateCategory)

		customers := api.Group("/customers")
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.GET("/:id/history", h.GetHistory)
		customers.POST("", writers, h.CreateCustomer)
		customers.PUT("/:id", writers, h.UpdateCustomer)

		api.POST("/transactions", h.CreateTransaction)
		api.GET("/inventory", h.GetInventory)
		api.GET("/reports/:name", h.GetReport)
	}

	return router
}
