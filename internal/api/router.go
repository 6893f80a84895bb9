package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/media"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. db may be nil.
func NewRouter(services *service.Services, store media.Store, db HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = cfg.Media.MaxUploadSize

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())

	// Handlers
	newsHandler := NewNewsHandler(services, store, log)
	submissionHandler := NewSubmissionHandler(services, log)
	adminHandler := NewAdminHandler(services, store, cfg, log)

	// Health check
	router.GET("/health", healthCheck(db, log))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Media.Backend != "s3" {
		router.GET("/media/*key", mediaHandler(store, log))
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/home", newsHandler.Home)
		v1.GET("/news", newsHandler.List)
		v1.GET("/news/:slug", newsHandler.Detail)
		v1.GET("/search", newsHandler.Search)
		v1.GET("/categories", newsHandler.Categories)

		v1.POST("/contact", submissionHandler.Contact)
		v1.POST("/news/:slug/comments", submissionHandler.Comment)
		v1.GET("/news/:slug/comments", submissionHandler.CommentRedirect)

		// Editor endpoints
		admin := v1.Group("/admin", adminAuthMiddleware(cfg.Admin.Token))
		{
			admin.POST("/news", adminHandler.CreateNews)
			admin.POST("/news/publish", adminHandler.Publish)
			admin.POST("/news/unpublish", adminHandler.Unpublish)
			admin.GET("/news/:id", adminHandler.GetNews)
			admin.PUT("/news/:id", adminHandler.UpdateNews)
			admin.DELETE("/news/:id", adminHandler.DeleteNews)

			admin.GET("/comments", adminHandler.ListComments)
			admin.POST("/comments/approve", adminHandler.ApproveComments)
			admin.POST("/comments/disapprove", adminHandler.DisapproveComments)

			admin.GET("/contact", adminHandler.ListContacts)
			admin.POST("/contact/read", adminHandler.MarkRead)
			admin.POST("/contact/unread", adminHandler.MarkUnread)

			admin.POST("/categories", adminHandler.CreateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.POST("/authors", adminHandler.CreateAuthor)
			admin.DELETE("/authors/:id", adminHandler.DeleteAuthor)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(db HealthChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				log.Warn().Err(err).Msg("Database health check failed")
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "news-portal-api",
		})
	}
}

// mediaHandler serves stored images from the configured store
func mediaHandler(store media.Store, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		if len(key) > 0 && key[0] == '/' {
			key = key[1:]
		}

		rc, err := store.Open(c.Request.Context(), key)
		if errors.Is(err, media.ErrNotExist) || errors.Is(err, media.ErrInvalidKey) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to open media")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read media"})
			return
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("Failed to read media")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read media"})
			return
		}
		c.Data(http.StatusOK, http.DetectContentType(data), data)
	}
}

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error, msg string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
	case errors.Is(err, models.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, models.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "referenced category or author does not exist"})
	default:
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
