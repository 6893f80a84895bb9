package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/news-portal-api/internal/models"
)

// WordsPerMinute is the assumed reading speed
const WordsPerMinute = 200

// maxSlugBase leaves room for a numeric suffix within the 255 char column
const maxSlugBase = 240

// wordSymbols are symbols slug.Make would spell out as English words
var wordSymbols = strings.NewReplacer("&", " ", "@", " ")

// Slugify lowercases the title, drops punctuation and joins words with hyphens
func Slugify(title string) string {
	s := slug.Make(wordSymbols.Replace(title))
	if len(s) > maxSlugBase {
		s = strings.TrimRight(s[:maxSlugBase], "-")
	}
	return s
}

// ReadingTime estimates minutes to read content. Empty content keeps the
// prior value; any non-empty content reads in at least one minute.
func ReadingTime(content string, prior int) int {
	if content == "" {
		return prior
	}
	minutes := len(strings.Fields(content)) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// checkID rejects identifiers that cannot name a stored row
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return models.ErrNotFound
	}
	return nil
}

// slugChecker reports whether a slug is already used
type slugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// uniqueSlug derives a slug from title and appends -1, -2, ... until it is
// free. The check is not atomic with the insert that follows; the unique
// index rejects the loser of a race.
func uniqueSlug(ctx context.Context, repo slugChecker, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", models.NewValidationError("title", "must contain at least one letter or digit")
	}

	candidate := base
	for i := 1; ; i++ {
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
