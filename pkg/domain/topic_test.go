package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want Platform
	}{
		{in: "Reddit", want: PlatformReddit},
		{in: "reddit", want: PlatformReddit},
		{in: "Google Trends", want: PlatformGoogleTrends},
		{in: "google-trends", want: PlatformGoogleTrends},
		{in: "GOOGLE_TRENDS", want: PlatformGoogleTrends},
		{in: "hackernews", want: PlatformHackerNews},
		{in: " youtube ", want: PlatformYouTube},
		{in: "github", want: PlatformGitHub},
		{in: "Mastodon", want: Platform("Mastodon")},
		{in: "", want: Platform("")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePlatform(tt.in))
		})
	}
}

func TestPlatforms(t *testing.T) {
	assert.Equal(t, []Platform{"Reddit", "YouTube", "Google Trends", "Hacker News", "GitHub"}, Platforms())
}
