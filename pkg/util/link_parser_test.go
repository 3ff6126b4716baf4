package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidVideoLink(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc123",
		"http://youtube.com/watch?v=abc123",
		"youtu.be/abc123",
		"https://youtu.be/abc123",
		"https://drive.google.com/file/d/1xYz/view",
	}
	for _, link := range valid {
		assert.True(t, IsValidVideoLink(link), link)
	}

	invalid := []string{
		"https://vimeo.com/12345",
		"https://example.com/watch?v=abc",
		"",
		"ftp://youtube.com/watch?v=abc",
	}
	for _, link := range invalid {
		assert.False(t, IsValidVideoLink(link), link)
	}
}

func TestVideoEmbedID(t *testing.T) {
	kind, id, ok := VideoEmbedID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	assert.True(t, ok)
	assert.Equal(t, "youtube", kind)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	kind, id, ok = VideoEmbedID("https://youtu.be/abc123")
	assert.True(t, ok)
	assert.Equal(t, "youtube", kind)
	assert.Equal(t, "abc123", id)

	kind, id, ok = VideoEmbedID("https://youtu.be/abc123?t=42")
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	kind, id, ok = VideoEmbedID("https://drive.google.com/file/d/1xYzAbC/view?usp=sharing")
	assert.True(t, ok)
	assert.Equal(t, "gdrive", kind)
	assert.Equal(t, "1xYzAbC", id)

	_, _, ok = VideoEmbedID("https://www.youtube.com/watch")
	assert.False(t, ok)

	_, _, ok = VideoEmbedID("https://drive.google.com/drive/folders/xyz")
	assert.False(t, ok)
}

func TestVideoEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/abc123", VideoEmbedURL("https://youtu.be/abc123"))
	assert.Equal(t, "https://drive.google.com/file/d/1xYz/preview", VideoEmbedURL("https://drive.google.com/file/d/1xYz/view"))
	assert.Equal(t, "", VideoEmbedURL("https://www.youtube.com/channel/foo"))
}
