package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeEmbedURLNormalizesAllForms(t *testing.T) {
	want := "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0&modestbranding=1&playsinline=1&enablejsapi=1"

	forms := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?si=abc",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ?rel=1",
	}

	for _, form := range forms {
		assert.Equal(t, want, YouTubeEmbedURL(form, ""), "input: %s", form)
	}
}

func TestYouTubeEmbedURLBindsOrigin(t *testing.T) {
	got := YouTubeEmbedURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://academy.example.com")
	assert.Equal(t,
		"https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0&modestbranding=1&playsinline=1&enablejsapi=1&origin=https%3A%2F%2Facademy.example.com",
		got)
}

func TestYouTubeEmbedURLPassesThroughUnrecognizedInput(t *testing.T) {
	cases := []string{
		"https://vimeo.com/123456789",
		"https://example.com/video.mp4",
		"not a url at all",
	}
	for _, raw := range cases {
		assert.Equal(t, raw, YouTubeEmbedURL(raw, "https://academy.example.com"))
	}
}

func TestYouTubeEmbedURLRejectsWrongLengthIDs(t *testing.T) {
	// Ids that are not exactly 11 characters are treated as non-matches
	assert.Equal(t, "https://www.youtube.com/watch?v=short", YouTubeEmbedURL("https://www.youtube.com/watch?v=short", ""))
	assert.Equal(t, "https://youtu.be/waytoolongvideoid", YouTubeEmbedURL("https://youtu.be/waytoolongvideoid", ""))
}

func TestYouTubeEmbedURLEmptyInput(t *testing.T) {
	assert.Equal(t, "", YouTubeEmbedURL("", "https://academy.example.com"))
}

func TestExtractYouTubeID(t *testing.T) {
	assert.Equal(t, "dQw4w9WgXcQ", ExtractYouTubeID("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.Equal(t, "", ExtractYouTubeID("https://vimeo.com/123456789"))
	assert.Equal(t, "", ExtractYouTubeID("https://www.youtube.com/watch?v=abc"))
}
