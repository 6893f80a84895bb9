package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/mocks"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *service.Services
	db         *mocks.MemoryDB
	store      *mocks.MockMediaStore
	categoryID int64
}

func testConfig(autoApprove bool) *config.Config {
	return &config.Config{
		Media: config.MediaConfig{MaxImageWidth: 1200, JPEGQuality: 85},
		Content: config.ContentConfig{
			CommentsAutoApprove: autoApprove,
			DefaultPageSize:     10,
			MaxPageSize:         50,
			MostReadCount:       5,
		},
	}
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	repos, db := mocks.NewRepositories()
	store := mocks.NewMockMediaStore()
	svc := service.NewServices(repos, store, cfg, zerolog.Nop())

	category, err := svc.Category.Create(context.Background(), "World")
	require.NoError(t, err)

	return &fixture{svc: svc, db: db, store: store, categoryID: category.ID}
}

func (f *fixture) createArticle(t *testing.T, title, content string) *models.Article {
	t.Helper()
	input := &models.ArticleInput{Title: title, CategoryID: f.categoryID}
	if content != "" {
		input.Content = &content
	}
	res, err := f.svc.Article.Create(context.Background(), input, nil)
	require.NoError(t, err)
	return res.Article
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
