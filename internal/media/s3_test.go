package media

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory
type fakeS3 struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	client := newFakeS3()
	store := NewS3StoreWithClient(client, "news-media", "https://cdn.example.com")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "news/2024/01/01/a.png", pngBytes(t, opaqueImage(10, 10))))
	require.Len(t, client.puts, 1)
	assert.Equal(t, "image/png", *client.puts[0].ContentType)

	rc, err := store.Open(ctx, "news/2024/01/01/a.png")
	require.NoError(t, err)
	rc.Close()

	assert.Equal(t, "https://cdn.example.com/news/2024/01/01/a.png", store.URL("news/2024/01/01/a.png"))

	require.NoError(t, store.Delete(ctx, "news/2024/01/01/a.png"))
	_, err = store.Open(ctx, "news/2024/01/01/a.png")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestS3Store_NormalizeInPlace(t *testing.T) {
	client := newFakeS3()
	store := NewS3StoreWithClient(client, "news-media", "https://cdn.example.com/")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "news/a.png", pngBytes(t, opaqueImage(1600, 800))))

	result := NewNormalizer(store, 1200, 85).Normalize(ctx, "news/a.png")
	assert.Equal(t, "normalized", string(result.Status))
	assert.Equal(t, 1200, result.Width)
	assert.Equal(t, 600, result.Height)
	assert.Equal(t, "jpeg", storedFormat(t, store, "news/a.png"))
}
