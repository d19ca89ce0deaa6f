package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormats(t *testing.T) {
	assert.Equal(t, []string{"bmp", "gif", "ico", "jpeg", "png", "pdf", "tiff", "webp"}, OutputFormats(CategoryImage))
	assert.Equal(t, []string{"mp3", "wav", "flac", "ogg", "aac"}, OutputFormats(CategoryAudio))
	assert.Equal(t, []string{"mp4", "avi", "mov", "mkv", "flv", "webm"}, OutputFormats(CategoryVideo))

	// callers get a copy
	formats := OutputFormats(CategoryImage)
	formats[0] = "changed"
	assert.Equal(t, "bmp", OutputFormats(CategoryImage)[0])
}

func TestIsSupportedFormat(t *testing.T) {
	tests := []struct {
		category Category
		token    string
		want     bool
	}{
		{CategoryImage, "png", true},
		{CategoryImage, "PNG", true},
		{CategoryImage, ".webp", true},
		{CategoryImage, "jpg", true},
		{CategoryImage, "tif", true},
		{CategoryImage, "heic", false},
		{CategoryImage, "mp3", false},
		{CategoryAudio, "FLAC", true},
		{CategoryAudio, "m4a", false},
		{CategoryVideo, "webm", true},
		{CategoryVideo, "jpg", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupportedFormat(tt.category, tt.token), "%s %s", tt.category, tt.token)
	}
}

func TestCanonicalFormat(t *testing.T) {
	assert.Equal(t, "jpeg", CanonicalFormat(CategoryImage, "JPG"))
	assert.Equal(t, "tiff", CanonicalFormat(CategoryImage, "tif"))
	assert.Equal(t, "mp3", CanonicalFormat(CategoryAudio, ".MP3"))
}

func TestMatchesCategory(t *testing.T) {
	assert.True(t, MatchesCategory(CategoryImage, `C:\photos\IMG_001.JPG`))
	assert.True(t, MatchesCategory(CategoryAudio, "/music/track.m4a"))
	assert.True(t, MatchesCategory(CategoryVideo, "clip.MKV"))
	assert.False(t, MatchesCategory(CategoryImage, "notes.txt"))
	assert.False(t, MatchesCategory(CategoryAudio, "clip.mp4"))
}

func TestImageLibraryFormat(t *testing.T) {
	tests := map[string]string{
		"jpg":  "JPEG",
		"jpeg": "JPEG",
		"ico":  "ICO",
		"pdf":  "PDF",
		"png":  "PNG",
		"webp": "WEBP",
		"tiff": "TIFF",
		"tif":  "TIFF",
		".TIF": "TIFF",
	}
	for token, want := range tests {
		assert.Equal(t, want, ImageLibraryFormat(token), token)
	}
}

func TestMenuExtensions(t *testing.T) {
	assert.Nil(t, MenuExtensions(CategoryImage))
	assert.Contains(t, MenuExtensions(CategoryAudio), ".wma")
	assert.Len(t, MenuExtensions(CategoryVideo), 6)
	assert.Equal(t, "mp3, wav, flac, ogg, aac", SupportedList(CategoryAudio))
}
