package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/news-portal-api/internal/media"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
	"github.com/rs/zerolog"
)

// NewsHandler serves the public reader endpoints
type NewsHandler struct {
	services *service.Services
	store    media.Store
	log      zerolog.Logger
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(services *service.Services, store media.Store, log zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		services: services,
		store:    store,
		log:      log.With().Str("handler", "news").Logger(),
	}
}

// Home handles GET /api/v1/home
func (h *NewsHandler) Home(c *gin.Context) {
	feed, err := h.services.News.Home(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed to load home page")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// List handles GET /api/v1/news?page=&page_size=&category=
func (h *NewsHandler) List(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}
	pageSize, err := queryInt(c, "page_size")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be an integer"})
		return
	}
	var categoryID int64
	if raw := c.Query("category"); raw != "" {
		categoryID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category must be an integer"})
			return
		}
	}

	result, err := h.services.News.List(c.Request.Context(), page, pageSize, categoryID)
	if err != nil {
		respondError(c, h.log, err, "failed to list news")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Detail handles GET /api/v1/news/:slug. Each call counts as one view.
func (h *NewsHandler) Detail(c *gin.Context) {
	detail, err := h.services.News.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err, "failed to load article")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":        detail.Article,
		"image_url":      imageURL(h.store, detail.Article),
		"comments":       detail.Comments,
		"comments_count": detail.CommentsCount,
		"next":           detail.Next,
		"previous":       detail.Previous,
		"most_read":      detail.MostRead,
	})
}

// Search handles GET /api/v1/search?q=
func (h *NewsHandler) Search(c *gin.Context) {
	q := c.Query("q")
	results, err := h.services.News.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"results": results,
	})
}

// Categories handles GET /api/v1/categories
func (h *NewsHandler) Categories(c *gin.Context) {
	categories, err := h.services.Category.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func imageURL(store media.Store, article *models.Article) string {
	if article == nil || article.Image == "" || store == nil {
		return ""
	}
	return store.URL(article.Image)
}
