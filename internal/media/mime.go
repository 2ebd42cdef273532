package media

import (
	"fmt"
	"mime"
	"strings"
)

// Product imagery accepts raster image formats only.
var allowedImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

func sniffMimeType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("mime type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("mime type invalid: %w", err)
	}
	if mediaType == "" {
		return "", fmt.Errorf("mime type missing")
	}
	return strings.ToLower(mediaType), nil
}

// extensionFor maps an approved image mime type to its object name
// extension. The second return is false for anything outside the
// approved set.
func extensionFor(mimeType string) (string, bool) {
	ext, ok := allowedImageTypes[mimeType]
	return ext, ok
}
