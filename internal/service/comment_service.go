package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/metrics"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/news-portal-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService implements CommentService
type commentService struct {
	articles    repository.ArticleRepository
	comments    repository.CommentRepository
	autoApprove bool
	log         zerolog.Logger
}

func newCommentService(articles repository.ArticleRepository, comments repository.CommentRepository, cfg config.ContentConfig, log zerolog.Logger) *commentService {
	return &commentService{
		articles:    articles,
		comments:    comments,
		autoApprove: cfg.CommentsAutoApprove,
		log:         log.With().Str("service", "comment").Logger(),
	}
}

// Submit attaches a reader comment to the published article with the given
// slug. An unknown slug returns ErrNotFound before the form is checked.
func (s *commentService) Submit(ctx context.Context, slug string, form *models.CommentForm) (*models.Comment, error) {
	article, err := s.articles.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, models.ErrNotFound
	}

	if err := validation.ValidateComment(form); err != nil {
		metrics.ObserveSubmission("comment", false)
		return nil, err
	}

	comment := &models.Comment{
		ID:         uuid.New().String(),
		ArticleID:  article.ID,
		Name:       strings.TrimSpace(form.Name),
		Email:      strings.TrimSpace(form.Email),
		Message:    strings.TrimSpace(form.Message),
		IsApproved: s.autoApprove,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		metrics.ObserveSubmission("comment", false)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	metrics.ObserveSubmission("comment", true)

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("article_id", article.ID).
		Bool("approved", comment.IsApproved).
		Msg("Comment submitted")
	return comment, nil
}

// ListForArticle returns every approved comment of an article, newest first
func (s *commentService) ListForArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	comments, err := s.comments.ListApproved(ctx, articleID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// List returns comments for moderation; a nil approved lists all of them
func (s *commentService) List(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	comments, err := s.comments.List(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// SetApproved approves or disapproves comments in bulk
func (s *commentService) SetApproved(ctx context.Context, ids []string, approved bool) (int64, error) {
	if err := validation.ValidateIDs(ids); err != nil {
		return 0, err
	}

	n, err := s.comments.SetApproved(ctx, ids, approved)
	if err != nil {
		return 0, fmt.Errorf("failed to update comments: %w", err)
	}

	s.log.Info().Int64("affected", n).Bool("approved", approved).Msg("Comments moderated")
	return n, nil
}
