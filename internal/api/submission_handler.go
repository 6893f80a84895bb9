package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
	"github.com/rs/zerolog"
)

// Redirect targets after visitor submissions
const (
	contactSentLocation = "/contact?sent=1"
	homeLocation        = "/"
)

// SubmissionHandler handles the visitor contact and comment forms
type SubmissionHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(services *service.Services, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		services: services,
		log:      log.With().Str("handler", "submission").Logger(),
	}
}

// Contact handles POST /api/v1/contact (form or JSON)
func (h *SubmissionHandler) Contact(c *gin.Context) {
	var form models.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := h.services.Contact.Submit(c.Request.Context(), &form); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "please fill in all fields",
				"fields": ve.Fields,
			})
			return
		}
		respondError(c, h.log, err, "failed to send message")
		return
	}

	c.Redirect(http.StatusSeeOther, contactSentLocation)
}

// Comment handles POST /api/v1/news/:slug/comments. The visitor is sent back
// to the article with ?comment=success or ?comment=error.
func (h *SubmissionHandler) Comment(c *gin.Context) {
	slug := c.Param("slug")

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, commentLocation(slug, models.CommentStatusError))
		return
	}

	_, err := h.services.Comment.Submit(c.Request.Context(), slug, &form)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, commentLocation(slug, models.CommentStatusSuccess))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	case models.IsValidationError(err):
		c.Redirect(http.StatusSeeOther, commentLocation(slug, models.CommentStatusError))
	default:
		respondError(c, h.log, err, "failed to add comment")
	}
}

// CommentRedirect handles GET on the comment endpoint
func (h *SubmissionHandler) CommentRedirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, homeLocation)
}

func commentLocation(slug, status string) string {
	return "/news/" + url.PathEscape(slug) + "/?comment=" + status
}
