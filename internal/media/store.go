// Package media stores article images and normalizes them after each save.
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/news-portal-api/internal/config"
)

// ErrInvalidKey is returned for keys that are empty or escape the store root
var ErrInvalidKey = errors.New("invalid media key")

// ErrNotExist is returned when no object is stored under a key
var ErrNotExist = errors.New("media object does not exist")

// Store persists media objects addressed by slash separated keys
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// UploadKey builds the date partitioned key for a newly uploaded article image,
// e.g. news/2024/05/01/3f0c...9a.png
func UploadKey(now time.Time, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("news", now.Format("2006/01/02"), uuid.New().String()+ext)
}

// NewStore builds the store selected by the media configuration
func NewStore(ctx context.Context, cfg config.MediaConfig) (Store, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return NewLocalStore(cfg.Root, cfg.URLPrefix)
	}
}

// cleanKey validates a key and returns it in canonical form
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
