package benchmark

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/news-portal-api/internal/config"
	"github.com/news-portal-api/internal/media"
	"github.com/news-portal-api/internal/mocks"
	"github.com/news-portal-api/internal/models"
	"github.com/news-portal-api/internal/service"
	"github.com/news-portal-api/internal/validation"
	"github.com/rs/zerolog"
)

// BenchmarkSlugify benchmarks title to slug conversion
func BenchmarkSlugify(b *testing.B) {
	title := "Élection présidentielle: les résultats du premier tour, région par région"

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		service.Slugify(title)
	}
}

// BenchmarkReadingTime benchmarks word counting on a long article
func BenchmarkReadingTime(b *testing.B) {
	content := strings.Repeat("lorem ipsum dolor sit amet ", 2000)

	b.ResetTimer()
	b.ReportAllocs()
	b.SetBytes(int64(len(content)))

	for i := 0; i < b.N; i++ {
		service.ReadingTime(content, 0)
	}
}

// BenchmarkContactValidation benchmarks the contact form rules
func BenchmarkContactValidation(b *testing.B) {
	form := &models.ContactForm{
		Name:    "Test User",
		Email:   "test@example.com",
		Subject: "Story tip",
		Message: "There is something you should look into.",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.ValidateContact(form)
	}
}

// BenchmarkNormalize benchmarks downscaling and recompressing a wide upload
func BenchmarkNormalize(b *testing.B) {
	img := image.NewNRGBA(image.Rect(0, 0, 2400, 1600))
	for y := 0; y < 1600; y++ {
		for x := 0; x < 2400; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		b.Fatal(err)
	}
	original := buf.Bytes()

	store := mocks.NewMockMediaStore()
	normalizer := media.NewNormalizer(store, media.DefaultMaxWidth, media.DefaultJPEGQuality)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		store.Save(ctx, "bench.png", original)
		if res := normalizer.Normalize(ctx, "bench.png"); res.Status != models.ImageStatusNormalized {
			b.Fatalf("normalize failed: %s", res.Reason)
		}
	}
}

// BenchmarkSlugScan benchmarks article creation when many articles share a title
func BenchmarkSlugScan(b *testing.B) {
	repos, db := mocks.NewRepositories()
	ctx := context.Background()
	db.Categories[1] = &models.Category{ID: 1, Name: "World"}
	for i := 0; i < 100; i++ {
		slug := "daily-briefing"
		if i > 0 {
			slug += "-" + strconv.Itoa(i)
		}
		repos.Article.Create(ctx, &models.Article{ID: "seed-" + strconv.Itoa(i), Slug: slug, CategoryID: 1, CreatedAt: time.Now()})
	}

	cfg := &config.Config{Media: config.MediaConfig{MaxImageWidth: media.DefaultMaxWidth, JPEGQuality: media.DefaultJPEGQuality}}
	services := service.NewServices(repos, mocks.NewMockMediaStore(), cfg, zerolog.Nop())
	input := &models.ArticleInput{Title: "Daily Briefing", CategoryID: 1}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		res, err := services.Article.Create(ctx, input, nil)
		if err != nil {
			b.Fatal(err)
		}
		services.Article.Delete(ctx, res.Article.ID)
	}
}

// BenchmarkViewsParallel benchmarks concurrent view increments on one article
func BenchmarkViewsParallel(b *testing.B) {
	repos, db := mocks.NewRepositories()
	ctx := context.Background()
	db.Categories[1] = &models.Category{ID: 1, Name: "World"}
	repos.Article.Create(ctx, &models.Article{ID: "a1", Slug: "hot", CategoryID: 1, IsPublished: true, CreatedAt: time.Now()})

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			repos.Article.IncrementViews(ctx, "hot")
		}
	})
}
