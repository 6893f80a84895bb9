package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/news-portal-api/internal/metrics"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/repository"
	"github.com/news-portal-api/internal/validation"
	"github.com/rs/zerolog"
)

// contactService implements ContactService
type contactService struct {
	repo repository.ContactRepository
	log  zerolog.Logger
}

func newContactService(repo repository.ContactRepository, log zerolog.Logger) *contactService {
	return &contactService{
		repo: repo,
		log:  log.With().Str("service", "contact").Logger(),
	}
}

// Submit stores a contact message. Nothing is stored unless every field is present.
func (s *contactService) Submit(ctx context.Context, form *models.ContactForm) (*models.ContactMessage, error) {
	if err := validation.ValidateContact(form); err != nil {
		metrics.ObserveSubmission("contact", false)
		return nil, err
	}

	msg := &models.ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Subject:   strings.TrimSpace(form.Subject),
		Message:   strings.TrimSpace(form.Message),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		metrics.ObserveSubmission("contact", false)
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}
	metrics.ObserveSubmission("contact", true)

	s.log.Info().Str("message_id", msg.ID).Str("subject", msg.Subject).Msg("Contact message received")
	return msg, nil
}

// List returns contact messages, newest first
func (s *contactService) List(ctx context.Context, unreadOnly bool) ([]*models.ContactMessage, error) {
	msgs, err := s.repo.List(ctx, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

// SetRead marks contact messages read or unread in bulk
func (s *contactService) SetRead(ctx context.Context, ids []string, read bool) (int64, error) {
	if err := validation.ValidateIDs(ids); err != nil {
		return 0, err
	}

	n, err := s.repo.SetRead(ctx, ids, read)
	if err != nil {
		return 0, fmt.Errorf("failed to update contact messages: %w", err)
	}
	return n, nil
}
