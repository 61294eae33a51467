// Package router assembles the HTTP API: middleware chain, public and
// authenticated routes, and the operational endpoints.
package router

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finledger/internal/config"
	_ "finledger/internal/docs" // registers the swagger document
	"finledger/internal/export"
	"finledger/internal/handlers"
	"finledger/internal/metrics"
	"finledger/internal/middleware"
	"finledger/internal/services"
)

// Deps are the collaborators the router needs.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
}

// New builds the gin engine serving the API.
func New(deps Deps) *gin.Engine {
	cfg := deps.Config

	userService := services.NewUserService(deps.DB)
	categoryService := services.NewCategoryService(deps.DB)
	transactionService := services.NewTransactionService(deps.DB)
	analyticsService := services.NewAnalyticsService(deps.DB)
	auditService := services.NewAuditService(deps.DB)

	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	exportHandler := handlers.NewExportHandler(transactionService, export.HeaderFor(cfg.ExportHeaderLocale), deps.Metrics)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics(deps.Metrics))
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRoute())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metricsRoute := []gin.HandlerFunc{gin.WrapH(deps.Metrics.Handler())}
	if cfg.MetricsAPIKey != "" {
		metricsRoute = append([]gin.HandlerFunc{middleware.APIKeyMiddleware(cfg.MetricsAPIKey)}, metricsRoute...)
	}
	router.GET("/metrics", metricsRoute...)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.PATCH("/:id", categoryHandler.PatchCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.PATCH("/:id", transactionHandler.PatchTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	protected.GET("/analytics", analyticsHandler.GetSummary)

	exports := protected.Group("/export")
	exports.GET("/csv", exportHandler.ExportCSV)
	exports.GET("/xlsx", exportHandler.ExportXLSX)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID", "Retry-After"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
