package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/media"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
	"github.com/rs/zerolog"
)

var errImageTooLarge = errors.New("image too large")

// AdminHandler handles the editor endpoints
type AdminHandler struct {
	services *service.Services
	store    media.Store
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, store media.Store, cfg *config.Config, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		store:    store,
		cfg:      cfg,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

type articleResponse struct {
	*models.SaveResult
	ImageURL string `json:"image_url,omitempty"`
}

// CreateNews handles POST /api/v1/admin/news (JSON, or multipart with an optional image)
func (h *AdminHandler) CreateNews(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	image, ok := h.readImage(c)
	if !ok {
		return
	}

	result, err := h.services.Article.Create(c.Request.Context(), &input, image)
	if err != nil {
		respondError(c, h.log, err, "failed to create article")
		return
	}
	c.JSON(http.StatusCreated, h.articleResponse(result))
}

// UpdateNews handles PUT /api/v1/admin/news/:id
func (h *AdminHandler) UpdateNews(c *gin.Context) {
	var input models.ArticleInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	image, ok := h.readImage(c)
	if !ok {
		return
	}

	result, err := h.services.Article.Update(c.Request.Context(), c.Param("id"), &input, image)
	if err != nil {
		respondError(c, h.log, err, "failed to update article")
		return
	}
	c.JSON(http.StatusOK, h.articleResponse(result))
}

// GetNews handles GET /api/v1/admin/news/:id, including unpublished articles
func (h *AdminHandler) GetNews(c *gin.Context) {
	article, err := h.services.Article.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "failed to get article")
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article, "image_url": imageURL(h.store, article)})
}

// DeleteNews handles DELETE /api/v1/admin/news/:id
func (h *AdminHandler) DeleteNews(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish handles POST /api/v1/admin/news/publish
func (h *AdminHandler) Publish(c *gin.Context) {
	h.bulk(c, func(ids []string) (int64, error) {
		return h.services.Article.SetPublished(c.Request.Context(), ids, true)
	})
}

// Unpublish handles POST /api/v1/admin/news/unpublish
func (h *AdminHandler) Unpublish(c *gin.Context) {
	h.bulk(c, func(ids []string) (int64, error) {
		return h.services.Article.SetPublished(c.Request.Context(), ids, false)
	})
}

// ListComments handles GET /api/v1/admin/comments?approved=
func (h *AdminHandler) ListComments(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
			return
		}
		approved = &v
	}

	comments, err := h.services.Comment.List(c.Request.Context(), approved)
	if err != nil {
		respondError(c, h.log, err, "failed to list comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ApproveComments handles POST /api/v1/admin/comments/approve
func (h *AdminHandler) ApproveComments(c *gin.Context) {
	h.bulk(c, func(ids []string) (int64, error) {
		return h.services.Comment.SetApproved(c.Request.Context(), ids, true)
	})
}

// DisapproveComments handles POST /api/v1/admin/comments/disapprove
func (h *AdminHandler) DisapproveComments(c *gin.Context) {
	h.bulk(c, func(ids []string) (int64, error) {
		return h.services.Comment.SetApproved(c.Request.Context(), ids, false)
	})
}

// ListContacts handles GET /api/v1/admin/contact?unread=
func (h *AdminHandler) ListContacts(c *gin.Context) {
	unreadOnly, _ := strconv.ParseBool(c.Query("unread"))

	msgs, err := h.services.Contact.List(c.Request.Context(), unreadOnly)
	if err != nil {
		respondError(c, h.log, err, "failed to list messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MarkRead handles POST /api/v1/admin/contact/read
func (h *AdminHandler) MarkRead(c *gin.Context) {
	h.bulk(c, func(ids []string) (int64, error) {
		return h.services.Contact.SetRead(c.Request.Context(), ids, true)
	})
}

// MarkUnread handles POST /api/v1/admin/contact/unread
func (h *AdminHandler) MarkUnread(c *gin.Context) {
	h.bulk(c, func(ids []string) (int64, error) {
		return h.services.Contact.SetRead(c.Request.Context(), ids, false)
	})
}

// CreateCategory handles POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err, "failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/:id. Articles in
// the category and their comments are deleted with it.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category id must be an integer"})
		return
	}

	if err := h.services.Category.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateAuthor handles POST /api/v1/admin/authors
func (h *AdminHandler) CreateAuthor(c *gin.Context) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	author, err := h.services.Author.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "failed to create author")
		return
	}
	c.JSON(http.StatusCreated, author)
}

// DeleteAuthor handles DELETE /api/v1/admin/authors/:id
func (h *AdminHandler) DeleteAuthor(c *gin.Context) {
	if err := h.services.Author.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, "failed to delete author")
		return
	}
	c.Status(http.StatusNoContent)
}

// bulk decodes {"ids": [...]} and reports how many records apply changed
func (h *AdminHandler) bulk(c *gin.Context, apply func(ids []string) (int64, error)) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	n, err := apply(req.IDs)
	if err != nil {
		respondError(c, h.log, err, "bulk update failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// readImage extracts the optional "image" part of a multipart request.
// It writes the error response itself and returns false on failure.
func (h *AdminHandler) readImage(c *gin.Context) (*models.ImageUpload, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, true
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload"})
		return nil, false
	}

	upload, err := h.loadImage(header.Filename, header.Size, func() (io.ReadCloser, error) { return header.Open() })
	if errors.Is(err, errImageTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("image too large, max size is %d MB", h.cfg.Media.MaxUploadSize/(1024*1024)),
		})
		return nil, false
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read uploaded image")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload"})
		return nil, false
	}
	return upload, true
}

func (h *AdminHandler) loadImage(filename string, size int64, open func() (io.ReadCloser, error)) (*models.ImageUpload, error) {
	limit := h.cfg.Media.MaxUploadSize
	if limit > 0 && size > limit {
		return nil, errImageTooLarge
	}

	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &models.ImageUpload{Filename: filename, Data: data}, nil
}
