// common/formats.go

package common

import (
	"path/filepath"
	"strings"
)

// Category is one of the media families the converter handles.
type Category string

const (
	CategoryImage Category = "image"
	CategoryAudio Category = "audio"
	CategoryVideo Category = "video"
)

// Categories lists every category in menu order
var Categories = []Category{CategoryImage, CategoryAudio, CategoryVideo}

// formatSet holds the static data for one category
type formatSet struct {
	outputs    []string
	extensions []string
	menuExts   []string
	aliases    map[string]string
}

var formatRegistry = map[Category]formatSet{
	CategoryImage: {
		outputs:    []string{"bmp", "gif", "ico", "jpeg", "png", "pdf", "tiff", "webp"},
		extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tiff", ".tif", ".ico"},
		aliases:    map[string]string{"jpg": "jpeg", "tif": "tiff"},
	},
	CategoryAudio: {
		outputs:    []string{"mp3", "wav", "flac", "ogg", "aac"},
		extensions: []string{".mp3", ".wav", ".flac", ".ogg", ".aac", ".m4a", ".wma"},
		menuExts:   []string{".mp3", ".wav", ".flac", ".ogg", ".aac", ".m4a", ".wma"},
	},
	CategoryVideo: {
		outputs:    []string{"mp4", "avi", "mov", "mkv", "flv", "webm"},
		extensions: []string{".mp4", ".avi", ".mov", ".mkv", ".flv", ".webm"},
		menuExts:   []string{".mp4", ".avi", ".mov", ".mkv", ".flv", ".webm"},
	},
}

// OutputFormats returns the lower-case output format tokens of a category, in menu order.
// The returned slice is a copy.
func OutputFormats(category Category) []string {
	return append([]string(nil), formatRegistry[category].outputs...)
}

// RecognizedExtensions returns the extensions scanned for a category during directory walks
func RecognizedExtensions(category Category) []string {
	return append([]string(nil), formatRegistry[category].extensions...)
}

// MenuExtensions returns the extensions that get their own context-menu class key.
// Images share the generic image class and return nil.
func MenuExtensions(category Category) []string {
	return append([]string(nil), formatRegistry[category].menuExts...)
}

// NormalizeFormat lower-cases a format token and strips a leading dot
func NormalizeFormat(token string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(token)), ".")
}

// CanonicalFormat resolves aliases such as jpg to their canonical token
func CanonicalFormat(category Category, token string) string {
	token = NormalizeFormat(token)
	if canonical, ok := formatRegistry[category].aliases[token]; ok {
		return canonical
	}
	return token
}

// IsSupportedFormat reports whether token is an output format of the category. Aliases count.
func IsSupportedFormat(category Category, token string) bool {
	canonical := CanonicalFormat(category, token)
	for _, f := range formatRegistry[category].outputs {
		if f == canonical {
			return true
		}
	}
	return false
}

// SupportedList renders the output formats as a comma separated list
func SupportedList(category Category) string {
	return strings.Join(formatRegistry[category].outputs, ", ")
}

// MatchesCategory reports whether path has one of the category's recognized extensions
func MatchesCategory(category Category, path string) bool {
	return HasExtension(filepath.Base(path), formatRegistry[category].extensions)
}

// ImageLibraryFormat translates an image format token to the encoder format name
func ImageLibraryFormat(token string) string {
	switch NormalizeFormat(token) {
	case "jpg", "jpeg":
		return "JPEG"
	case "ico":
		return "ICO"
	case "pdf":
		return "PDF"
	case "tif", "tiff":
		return "TIFF"
	}
	return strings.ToUpper(NormalizeFormat(token))
}
