package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	checkoutHandler := NewCheckoutHandler(services, log)
	downloadHandler := NewDownloadHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	programHandler := NewProgramHandler(services, log)
	adminHandler := NewAdminHandler(services, log)

	auth := authMiddleware(cfg.Auth.JWTSecret)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// Token-gated download; the emailed token is the sole credential, so no
	// auth middleware here.
	router.GET("/download/:token", downloadHandler.Download)

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/programs", programHandler.ListPrograms)
		v1.GET("/programs/:id", programHandler.GetProgram)
		v1.GET("/programs/:id/comments", commentHandler.ListComments)

		v1.POST("/checkout", checkoutHandler.CreateCheckout)
		v1.GET("/checkout/complete", checkoutHandler.CompleteCheckout)

		v1.POST("/comments", auth, commentHandler.CreateComment)

		admin := v1.Group("/admin", auth, adminRequired())
		{
			admin.GET("/purchases", adminHandler.ListPurchases)
			admin.POST("/purchases/:id/resend", adminHandler.ResendNotification)
			admin.POST("/purchases/:id/reset-downloads", adminHandler.ResetDownloads)
			admin.POST("/purchases/:id/refund", adminHandler.RefundPurchase)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "program-store-api",
	})
}

// metricsHandler returns table counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		programsCount, _ := services.Program.GetCount(ctx, "programs")
		purchasesCount, _ := services.Program.GetCount(ctx, "purchases")
		commentsCount, _ := services.Program.GetCount(ctx, "comments")

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"programs":  programsCount,
				"purchases": purchasesCount,
				"comments":  commentsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
