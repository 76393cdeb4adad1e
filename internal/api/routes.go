package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmorales-dev/cartamarket/internal/api/handlers"
	"github.com/dmorales-dev/cartamarket/internal/metrics"
	"github.com/dmorales-dev/cartamarket/internal/services"
)

func SetupRouter(scryfallService *services.ScryfallService, sessionService *services.SessionService, listingService *services.ListingService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))
	router.Use(requestMetrics())

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(scryfallService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	listingHandler := handlers.NewListingHandler(listingService)

	// API routes
	api := router.Group("/api")
	{
		// Card routes
		cards := api.Group("/cards")
		{
			cards.GET("/autocomplete", cardHandler.Autocomplete)
			cards.GET("/printings", cardHandler.Printings)
		}

		// Listing draft session routes
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Create)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.POST("/:id/search", sessionHandler.Search)
			sessions.POST("/:id/confirm", sessionHandler.Confirm)
			sessions.POST("/:id/select", sessionHandler.Select)
		}

		// Catalog routes
		listings := api.Group("/listings")
		{
			listings.GET("", listingHandler.List)
			listings.POST("", listingHandler.Create)
			listings.GET("/:id", listingHandler.Get)
			listings.DELETE("/:id", listingHandler.Delete)
		}

		api.GET("/sellers/:name/stats", listingHandler.SellerStats)
		api.GET("/labels", handlers.Labels)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestMetrics records count and latency per route.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
