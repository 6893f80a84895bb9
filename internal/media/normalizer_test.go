package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"testing"

	"github.com/news-portal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opaqueImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func storedFormat(t *testing.T, store Store, key string) string {
	t.Helper()
	rc, err := store.Open(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	_, format, err := image.DecodeConfig(rc)
	require.NoError(t, err)
	return format
}

func storedImage(t *testing.T, store Store, key string) image.Image {
	t.Helper()
	rc, err := store.Open(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()
	img, _, err := image.Decode(rc)
	require.NoError(t, err)
	return img
}

func newTestNormalizer(t *testing.T) (*Normalizer, *LocalStore) {
	t.Helper()
	store, err := NewLocalStore(t.TempDir(), "/media/")
	require.NoError(t, err)
	return NewNormalizer(store, 1200, 85), store
}

func TestNormalize_DownscalesWideImage(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "news/wide.png", pngBytes(t, opaqueImage(2400, 1000))))

	result := n.Normalize(ctx, "news/wide.png")

	assert.Equal(t, models.ImageStatusNormalized, result.Status)
	assert.True(t, result.Resized)
	assert.Equal(t, 1200, result.Width)
	assert.Equal(t, 500, result.Height)

	img := storedImage(t, store, "news/wide.png")
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
	assert.Equal(t, "jpeg", storedFormat(t, store, "news/wide.png"))
}

func TestNormalize_TruncatesScaledHeight(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "news/odd.png", pngBytes(t, opaqueImage(1300, 333))))

	result := n.Normalize(ctx, "news/odd.png")

	require.Equal(t, models.ImageStatusNormalized, result.Status)
	// 333 * 1200 / 1300 = 307.38
	assert.Equal(t, 307, result.Height)
}

func TestNormalize_RecompressesNarrowImageWithoutResizing(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "news/small.png", pngBytes(t, opaqueImage(800, 600))))

	result := n.Normalize(ctx, "news/small.png")

	assert.Equal(t, models.ImageStatusNormalized, result.Status)
	assert.False(t, result.Resized)
	assert.Equal(t, 800, result.Width)
	assert.Equal(t, 600, result.Height)
	assert.Equal(t, "jpeg", storedFormat(t, store, "news/small.png"))
}

func TestNormalize_ExactlyMaxWidthIsNotResized(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "news/edge.png", pngBytes(t, opaqueImage(1200, 10))))

	result := n.Normalize(ctx, "news/edge.png")
	assert.False(t, result.Resized)
	assert.Equal(t, 1200, result.Width)
}

func TestNormalize_FlattensTransparencyOntoWhite(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()

	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	img.Set(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	require.NoError(t, store.Save(ctx, "news/alpha.png", pngBytes(t, img)))

	result := n.Normalize(ctx, "news/alpha.png")
	require.Equal(t, models.ImageStatusNormalized, result.Status)

	out := storedImage(t, store, "news/alpha.png")
	r, g, b, _ := out.At(30, 30).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestNormalize_FlattensPalettedImage(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()

	palette := color.Palette{color.Transparent, color.RGBA{R: 255, A: 255}}
	img := image.NewPaletted(image.Rect(0, 0, 20, 20), palette)
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))
	require.NoError(t, store.Save(ctx, "news/anim.gif", buf.Bytes()))

	result := n.Normalize(ctx, "news/anim.gif")
	require.Equal(t, models.ImageStatusNormalized, result.Status)
	assert.Equal(t, "jpeg", storedFormat(t, store, "news/anim.gif"))
}

func TestNormalize_CorruptImageFailsWithoutTouchingFile(t *testing.T) {
	n, store := newTestNormalizer(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "news/broken.jpg", []byte("definitely not an image")))

	result := n.Normalize(ctx, "news/broken.jpg")

	assert.Equal(t, models.ImageStatusFailed, result.Status)
	assert.Contains(t, result.Reason, "decode image")

	rc, err := store.Open(ctx, "news/broken.jpg")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "definitely not an image", string(data))
}

func TestNormalize_MissingFile(t *testing.T) {
	n, _ := newTestNormalizer(t)

	result := n.Normalize(context.Background(), "news/none.jpg")
	assert.Equal(t, models.ImageStatusFailed, result.Status)
	assert.Contains(t, result.Reason, "open image")
}

func TestNormalize_NoImageIsSkipped(t *testing.T) {
	n, _ := newTestNormalizer(t)
	assert.Equal(t, models.ImageStatusSkipped, n.Normalize(context.Background(), "").Status)
}

func TestHasAlphaOrPalette(t *testing.T) {
	assert.False(t, hasAlphaOrPalette(opaqueImage(2, 2)))
	assert.True(t, hasAlphaOrPalette(image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	assert.True(t, hasAlphaOrPalette(image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black})))
	assert.False(t, hasAlphaOrPalette(image.NewGray(image.Rect(0, 0, 2, 2))))
}
