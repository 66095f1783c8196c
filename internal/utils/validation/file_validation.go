package validation

import (
	"fmt"
	"net/http"
	"strings"
)

// AllowedDocumentTypes lists the sniffed MIME types accepted as supporting documents.
var AllowedDocumentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"image/webp":      true,
	"image/bmp":       true,
}

// DetectDocumentType checks the file signature (magic bytes) and returns the
// normalized MIME type when it is a PDF or an image.
func DetectDocumentType(content []byte) (string, error) {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	detected := http.DetectContentType(head)
	detected = strings.ToLower(strings.TrimSpace(strings.Split(detected, ";")[0]))
	if !AllowedDocumentTypes[detected] {
		return detected, fmt.Errorf("file type '%s' is not allowed, only PDF or images", detected)
	}
	return detected, nil
}

// ValidateDocumentSize rejects empty files and files above maxBytes.
func ValidateDocumentSize(name string, size, maxBytes int64) error {
	if size == 0 {
		return fmt.Errorf("file '%s' is empty", name)
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("file '%s' is %d bytes, limit is %d", name, size, maxBytes)
	}
	return nil
}
