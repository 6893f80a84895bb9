package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/news-portal-api/internal/validation"
	"github.com/rs/zerolog"
)

// authorService implements AuthorService
type authorService struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

func newAuthorService(repo repository.UserRepository, log zerolog.Logger) *authorService {
	return &authorService{
		repo: repo,
		log:  log.With().Str("service", "author").Logger(),
	}
}

func (s *authorService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	author := &models.User{
		ID:        uuid.New().String(),
		Username:  strings.TrimSpace(user.Username),
		Email:     strings.TrimSpace(user.Email),
		CreatedAt: time.Now().UTC(),
	}
	if err := validation.ValidateUser(author); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	s.log.Info().Str("author_id", author.ID).Str("username", author.Username).Msg("Author created")
	return author, nil
}

// Delete removes an author. Their articles remain with no author.
func (s *authorService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}

	s.log.Info().Str("author_id", id).Msg("Author deleted")
	return nil
}
