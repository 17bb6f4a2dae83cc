// Package storage validates, resizes and stores job avatars.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"net/http"

	"golang.org/x/image/draw"
)

const (
	AvatarMaxBytes     = 5 << 20
	AvatarMaxDimension = 512
	AvatarQuality      = 85
	AvatarContentType  = "image/jpeg"
)

var ErrUnsupportedImage = errors.New("avatar must be a JPEG, PNG or GIF image")

// Magic byte signatures for allowed avatar formats
var magicBytes = map[string][][]byte{
	"image/jpeg": {{0xFF, 0xD8, 0xFF}},
	"image/png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/gif":  {[]byte("GIF87a"), []byte("GIF89a")},
}

// ValidateAvatar checks the size, detected MIME type and magic bytes of data.
// It returns the detected MIME type.
func ValidateAvatar(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrUnsupportedImage
	}
	if len(data) > AvatarMaxBytes {
		return "", fmt.Errorf("avatar exceeds %d bytes", AvatarMaxBytes)
	}

	mime := http.DetectContentType(data)
	signatures, ok := magicBytes[mime]
	if !ok {
		return "", ErrUnsupportedImage
	}
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return mime, nil
		}
	}
	return "", ErrUnsupportedImage
}

// ProcessAvatar scales the image down to fit AvatarMaxDimension, keeping the
// aspect ratio, and re-encodes it as JPEG.
func ProcessAvatar(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), AvatarMaxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: AvatarQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func fitWithin(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}
	if width > height {
		return limit, atLeastOne(height * limit / width)
	}
	return atLeastOne(width * limit / height), limit
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
