package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/news-portal-api/internal/validation"
	"github.com/rs/zerolog"
)

// categoryService implements CategoryService
type categoryService struct {
	repo repository.CategoryRepository
	log  zerolog.Logger
}

func newCategoryService(repo repository.CategoryRepository, log zerolog.Logger) *categoryService {
	return &categoryService{
		repo: repo,
		log:  log.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := validation.ValidateCategory(category); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.log.Info().Int64("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return category, nil
}

// List returns all categories ordered by name with their article counts
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Delete removes a category together with its articles and their comments
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.log.Info().Int64("category_id", id).Msg("Category deleted with its articles")
	return nil
}
