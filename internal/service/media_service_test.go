package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/daybookhq/journal-sync-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// mp3Bytes fakes an ID3-tagged audio file of the given size.
func mp3Bytes(size int) []byte {
	content := make([]byte, size)
	copy(content, []byte("ID3"))
	return content
}

func TestMediaIngestRejectsOversize(t *testing.T) {
	svc := NewMediaService(nil, testConfig())

	// over the 5MB hard cap: rejected before any decode work
	_, err := svc.Ingest(context.Background(), 1, "big.png", make([]byte, 6*1024*1024))
	require.Error(t, err)
	assert.Equal(t, code.ErrorPayloadTooLarge.Code(), err.(*code.Code).Code())
}

func TestMediaIngestImageCompression(t *testing.T) {
	svc := NewMediaService(nil, testConfig())

	content := pngBytes(t, 1600, 1200)
	result, err := svc.Ingest(context.Background(), 1, "photo.png", content)
	require.NoError(t, err)

	assert.Equal(t, "image", result.Kind)
	assert.True(t, result.Inline)
	assert.Empty(t, result.URL)
	assert.LessOrEqual(t, result.Size, int64(800*1024))

	decoded, err := base64.StdEncoding.DecodeString(result.Data)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, img.Bounds().Dx(), 800)
	assert.LessOrEqual(t, img.Bounds().Dy(), 800)
}

func TestMediaIngestSmallImageKeepsDimensions(t *testing.T) {
	svc := NewMediaService(nil, testConfig())

	result, err := svc.Ingest(context.Background(), 1, "small.png", pngBytes(t, 200, 100))
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(result.Data)
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestMediaIngestAudioInline(t *testing.T) {
	svc := NewMediaService(nil, testConfig())

	content := mp3Bytes(512 * 1024)
	result, err := svc.Ingest(context.Background(), 1, "voice.mp3", content)
	require.NoError(t, err)

	assert.Equal(t, "audio", result.Kind)
	assert.True(t, result.Inline)
	assert.Equal(t, int64(len(content)), result.Size)

	decoded, err := base64.StdEncoding.DecodeString(result.Data)
	require.NoError(t, err)
	assert.Equal(t, content, decoded)
}

func TestMediaIngestAudioOverInlineLimitNoStorage(t *testing.T) {
	svc := NewMediaService(nil, testConfig())

	_, err := svc.Ingest(context.Background(), 1, "long.mp3", mp3Bytes(2*1024*1024))
	require.Error(t, err)
	assert.Equal(t, code.ErrorPayloadTooLarge.Code(), err.(*code.Code).Code())
}

func TestMediaIngestUnsupportedType(t *testing.T) {
	svc := NewMediaService(nil, testConfig())

	_, err := svc.Ingest(context.Background(), 1, "notes.txt", []byte("plain text, not media"))
	require.Error(t, err)
	assert.Equal(t, code.ErrorUnsupportedMediaType.Code(), err.(*code.Code).Code())
}
