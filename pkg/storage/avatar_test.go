package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateAvatar(t *testing.T) {
	t.Run("Should accept a PNG image", func(t *testing.T) {
		mime, err := ValidateAvatar(pngBytes(t, 10, 10))
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)
	})

	t.Run("Should reject plain text", func(t *testing.T) {
		_, err := ValidateAvatar([]byte("definitely not an image"))
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("Should reject empty data", func(t *testing.T) {
		_, err := ValidateAvatar(nil)
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})
}

func TestProcessAvatar(t *testing.T) {
	t.Run("Should shrink a wide image keeping the aspect ratio", func(t *testing.T) {
		out, err := ProcessAvatar(pngBytes(t, 1024, 256))
		require.NoError(t, err)

		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, AvatarMaxDimension, img.Bounds().Dx())
		assert.Equal(t, 128, img.Bounds().Dy())
	})

	t.Run("Should keep small images at their size", func(t *testing.T) {
		out, err := ProcessAvatar(pngBytes(t, 40, 60))
		require.NoError(t, err)

		img, err := jpeg.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 40, img.Bounds().Dx())
		assert.Equal(t, 60, img.Bounds().Dy())
	})

	t.Run("Should fail on undecodable data", func(t *testing.T) {
		_, err := ProcessAvatar([]byte{0xFF, 0xD8, 0xFF, 0x00})
		assert.Error(t, err)
	})
}

type fakePutter struct {
	input *s3.PutObjectInput
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	return &s3.PutObjectOutput{}, nil
}

func TestS3AvatarStore(t *testing.T) {
	t.Run("Should upload to the bucket and return the public URL", func(t *testing.T) {
		putter := &fakePutter{}
		store := &S3AvatarStore{client: putter, cfg: S3Config{Bucket: "media", Region: "eu-west-1"}}

		url, err := store.PutAvatar(context.Background(), "avatars/abc.jpg", []byte{1, 2, 3}, AvatarContentType)
		require.NoError(t, err)
		assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/avatars/abc.jpg", url)
		assert.Equal(t, "media", *putter.input.Bucket)
		assert.Equal(t, "avatars/abc.jpg", *putter.input.Key)
		assert.Equal(t, AvatarContentType, *putter.input.ContentType)
	})

	t.Run("Should prefer the configured public base URL", func(t *testing.T) {
		store := &S3AvatarStore{cfg: S3Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com/"}}
		assert.Equal(t, "https://cdn.example.com/avatars/x.jpg", store.URL("avatars/x.jpg"))
	})

	t.Run("Should use path style URLs for custom endpoints", func(t *testing.T) {
		store := &S3AvatarStore{cfg: S3Config{Provider: S3ProviderCustom, Endpoint: "http://minio:9000", Bucket: "media"}}
		assert.Equal(t, "http://minio:9000/media/avatars/x.jpg", store.URL("avatars/x.jpg"))
	})
}
