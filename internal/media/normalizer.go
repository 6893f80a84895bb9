package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/news-portal-api/internal/metrics"
	"github.com/news-portal-api/internal/models"
)

// Default normalization parameters
const (
	DefaultMaxWidth    = 1200
	DefaultJPEGQuality = 85
)

// Normalizer downsizes, flattens and recompresses stored article images
type Normalizer struct {
	store    Store
	maxWidth int
	quality  int
}

// NewNormalizer creates a Normalizer writing back to store
func NewNormalizer(store Store, maxWidth, quality int) *Normalizer {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Normalizer{store: store, maxWidth: maxWidth, quality: quality}
}

// Normalize rewrites the image stored under key in place:
// images wider than the max width are scaled down with a Lanczos filter,
// images with transparency or a palette are flattened onto white,
// and the result is re-encoded as JPEG.
// It never returns an error; failures are reported in the result.
func (n *Normalizer) Normalize(ctx context.Context, key string) models.ImageResult {
	if key == "" {
		return models.ImageResult{Status: models.ImageStatusSkipped}
	}

	timer := metrics.NewTimer()
	result, err := n.normalize(ctx, key)
	if err != nil {
		result = models.ImageResult{Status: models.ImageStatusFailed, Reason: err.Error()}
	}
	metrics.ObserveImageNormalization(string(result.Status), timer.Elapsed())
	return result
}

func (n *Normalizer) normalize(ctx context.Context, key string) (models.ImageResult, error) {
	rc, err := n.store.Open(ctx, key)
	if err != nil {
		return models.ImageResult{}, fmt.Errorf("open image: %w", err)
	}
	defer rc.Close()

	src, err := imaging.Decode(rc)
	if err != nil {
		return models.ImageResult{}, fmt.Errorf("decode image: %w", err)
	}

	img, resized := n.fitWidth(src)
	if hasAlphaOrPalette(src) {
		img = flatten(img)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(n.quality)); err != nil {
		return models.ImageResult{}, fmt.Errorf("encode image: %w", err)
	}
	if err := n.store.Save(ctx, key, buf.Bytes()); err != nil {
		return models.ImageResult{}, fmt.Errorf("write image: %w", err)
	}

	bounds := img.Bounds()
	return models.ImageResult{
		Status:  models.ImageStatusNormalized,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		Resized: resized,
	}, nil
}

// fitWidth scales img down to the max width, keeping the aspect ratio.
// The new height is truncated, never below one pixel.
func (n *Normalizer) fitWidth(img image.Image) (image.Image, bool) {
	bounds := img.Bounds()
	if bounds.Dx() <= n.maxWidth {
		return img, false
	}

	height := bounds.Dy() * n.maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	return imaging.Resize(img, n.maxWidth, height, imaging.Lanczos), true
}

// hasAlphaOrPalette reports whether img is paletted or carries transparency
func hasAlphaOrPalette(img image.Image) bool {
	if _, ok := img.(*image.Paletted); ok {
		return true
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// flatten composites img over an opaque white background
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}
