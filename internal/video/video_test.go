package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"empty", "", ""},
		{"youtube watch", "https://www.youtube.com/watch?v=YaXPRqUwItQ", "https://www.youtube.com/embed/YaXPRqUwItQ"},
		{"youtube watch with extra params", "https://www.youtube.com/watch?v=YaXPRqUwItQ&t=30s", "https://www.youtube.com/embed/YaXPRqUwItQ"},
		{"youtube short link", "https://youtu.be/op9kVnSso6Q", "https://www.youtube.com/embed/op9kVnSso6Q"},
		{"youtube short link with query", "https://youtu.be/op9kVnSso6Q?si=abc", "https://www.youtube.com/embed/op9kVnSso6Q"},
		{"youtube embed passthrough", "https://www.youtube.com/embed/gRVjAtPip0Y", "https://www.youtube.com/embed/gRVjAtPip0Y"},
		{"youtube nocookie passthrough", "https://www.youtube-nocookie.com/embed/gRVjAtPip0Y", "https://www.youtube-nocookie.com/embed/gRVjAtPip0Y"},
		{"vimeo page", "https://vimeo.com/123456789", "https://player.vimeo.com/video/123456789"},
		{"vimeo channel page", "https://vimeo.com/channels/staffpicks/123456789", "https://player.vimeo.com/video/123456789"},
		{"vimeo player passthrough", "https://player.vimeo.com/video/123456789", "https://player.vimeo.com/video/123456789"},
		{"vimeo non-numeric id unchanged", "https://vimeo.com/about", "https://vimeo.com/about"},
		{"unknown host unchanged", "https://example.com/video.mp4", "https://example.com/video.mp4"},
		{"leading whitespace trimmed", "  https://youtu.be/abc123", "https://www.youtube.com/embed/abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestLookup(t *testing.T) {
	info, ok := Lookup("Squat")
	require.True(t, ok)
	assert.Equal(t, "How to Squat Properly", info.Title)
	assert.Equal(t, "https://www.youtube.com/embed/YaXPRqUwItQ", info.Embed)

	// Equipment qualifiers are stripped before lookup.
	info, ok = Lookup("Barbell Squat")
	require.True(t, ok)
	assert.Equal(t, "How to Squat Properly", info.Title)

	info, ok = Lookup("Dumbbell Bench Press")
	require.True(t, ok)
	assert.Equal(t, "How to Bench Press", info.Title)

	info, ok = Lookup("Leg Press Machine")
	require.True(t, ok)
	assert.Equal(t, "Leg Press Machine", info.Title)

	_, ok = Lookup("Underwater Basket Weaving")
	assert.False(t, ok)

	_, ok = Lookup("")
	assert.False(t, ok)
}
