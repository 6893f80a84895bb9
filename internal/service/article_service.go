package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/news-portal-api/internal/media"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/news-portal-api/internal/validation"
	"github.com/rs/zerolog"
)

// maxSlugAttempts bounds how often a generated slug is retried after a
// unique violation
const maxSlugAttempts = 3

// articleService implements ArticleService
type articleService struct {
	repo       repository.ArticleRepository
	store      media.Store
	normalizer ImageNormalizer
	log        zerolog.Logger
	now        func() time.Time
}

func newArticleService(repo repository.ArticleRepository, store media.Store, normalizer ImageNormalizer, log zerolog.Logger) *articleService {
	return &articleService{
		repo:       repo,
		store:      store,
		normalizer: normalizer,
		log:        log.With().Str("service", "article").Logger(),
		now:        time.Now,
	}
}

// Create stores a new article. The returned result always carries the saved
// article when err is nil, even if the image could not be normalized.
func (s *articleService) Create(ctx context.Context, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error) {
	if err := validation.ValidateArticle(input, true); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	article := &models.Article{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Slug:        input.Slug,
		CategoryID:  input.CategoryID,
		Content:     input.Content,
		AuthorID:    input.AuthorID,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: input.PublishedAt,
	}
	if input.IsPublished != nil {
		article.IsPublished = *input.IsPublished
	}
	if article.IsPublished && article.PublishedAt == nil {
		article.PublishedAt = &now
	}

	uploaded, err := s.upload(ctx, now, image)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		article.Image = uploaded
	}

	if err := s.insert(ctx, article); err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("slug", article.Slug).
		Int("reading_time", article.ReadingTime).
		Msg("Article created")

	return &models.SaveResult{Article: article, Image: s.normalizeImage(ctx, article)}, nil
}

// Update applies input to an existing article. Zero-valued input fields
// leave the stored value unchanged.
func (s *articleService) Update(ctx context.Context, id string, input *models.ArticleInput, image *models.ImageUpload) (*models.SaveResult, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.ValidateArticle(input, false); err != nil {
		return nil, err
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, models.ErrNotFound
	}

	now := s.now().UTC()
	if input.Title != "" {
		article.Title = input.Title
	}
	if input.Slug != "" {
		article.Slug = input.Slug
	}
	if input.CategoryID > 0 {
		article.CategoryID = input.CategoryID
	}
	if input.Content != nil {
		article.Content = input.Content
	}
	if input.AuthorID != nil {
		article.AuthorID = input.AuthorID
	}
	if input.IsPublished != nil {
		article.IsPublished = *input.IsPublished
	}
	if input.PublishedAt != nil {
		article.PublishedAt = input.PublishedAt
	}
	if article.IsPublished && article.PublishedAt == nil {
		article.PublishedAt = &now
	}
	article.UpdatedAt = now

	previousImage := article.Image
	uploaded, err := s.upload(ctx, now, image)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		article.Image = uploaded
	}

	if err := s.prepare(ctx, article); err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}

	if err := s.repo.Update(ctx, article); err != nil {
		s.discard(ctx, uploaded)
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	if uploaded != "" && previousImage != "" && previousImage != uploaded {
		s.discard(ctx, previousImage)
	}

	s.log.Info().
		Str("article_id", article.ID).
		Str("slug", article.Slug).
		Int("reading_time", article.ReadingTime).
		Msg("Article updated")

	return &models.SaveResult{Article: article, Image: s.normalizeImage(ctx, article)}, nil
}

// Delete removes an article and its image
func (s *articleService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return models.ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	s.discard(ctx, article.Image)

	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// GetByID returns an article regardless of its published state
func (s *articleService) GetByID(ctx context.Context, id string) (*models.Article, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, models.ErrNotFound
	}
	return article, nil
}

// SetPublished publishes or unpublishes articles in bulk
func (s *articleService) SetPublished(ctx context.Context, ids []string, published bool) (int64, error) {
	if err := validation.ValidateIDs(ids); err != nil {
		return 0, err
	}

	n, err := s.repo.SetPublished(ctx, ids, published)
	if err != nil {
		return 0, fmt.Errorf("failed to update articles: %w", err)
	}

	s.log.Info().Int64("affected", n).Bool("published", published).Msg("Articles publish state changed")
	return n, nil
}

// insert prepares and stores a new article. A generated slug that loses a
// race on the unique index is regenerated and the insert retried; a slug
// chosen by the editor is never changed.
func (s *articleService) insert(ctx context.Context, article *models.Article) error {
	generated := article.Slug == ""
	for attempt := 1; ; attempt++ {
		if err := s.prepare(ctx, article); err != nil {
			return err
		}

		err := s.repo.Create(ctx, article)
		if err == nil {
			return nil
		}
		if !generated || !errors.Is(err, models.ErrSlugTaken) || attempt == maxSlugAttempts {
			return fmt.Errorf("failed to create article: %w", err)
		}

		s.log.Debug().Str("slug", article.Slug).Int("attempt", attempt).Msg("Slug taken concurrently, retrying")
		article.Slug = ""
	}
}

// prepare assigns a slug when none is set and recomputes reading time
func (s *articleService) prepare(ctx context.Context, article *models.Article) error {
	if article.Slug == "" {
		slug, err := uniqueSlug(ctx, s.repo, article.Title)
		if err != nil {
			return err
		}
		article.Slug = slug
	}
	article.ReadingTime = ReadingTime(article.ContentText(), article.ReadingTime)
	return nil
}

// upload stores the raw image bytes and returns the new key, or "" when
// there is nothing to upload
func (s *articleService) upload(ctx context.Context, now time.Time, image *models.ImageUpload) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", nil
	}
	key := media.UploadKey(now, image.Filename)
	if err := s.store.Save(ctx, key, image.Data); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, nil
}

// discard removes a stored image, logging failures
func (s *articleService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("image", key).Msg("Failed to remove image")
	}
}

func (s *articleService) normalizeImage(ctx context.Context, article *models.Article) models.ImageResult {
	if article.Image == "" {
		return models.ImageResult{Status: models.ImageStatusSkipped}
	}

	result := s.normalizer.Normalize(ctx, article.Image)
	if result.Status == models.ImageStatusFailed {
		s.log.Warn().
			Str("article_id", article.ID).
			Str("image", article.Image).
			Str("reason", result.Reason).
			Msg("Image normalization failed, article kept original image")
		return result
	}

	s.log.Debug().
		Str("article_id", article.ID).
		Int("width", result.Width).
		Int("height", result.Height).
		Bool("resized", result.Resized).
		Msg("Image normalized")
	return result
}
