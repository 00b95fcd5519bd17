package validation

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxScreenshotBytes is the upload ceiling for payment screenshots.
const MaxScreenshotBytes int64 = 5 << 20

const (
	msgNotImage = "Please upload an image file"
	msgTooLarge = "File size should be less than 5MB"
	msgEmpty    = "The selected file is empty"
)

// CheckScreenshot validates the declared type and size and returns the field message, or "".
func CheckScreenshot(contentType string, size int64) string {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return msgNotImage
	}
	if size <= 0 {
		return msgEmpty
	}
	if size > MaxScreenshotBytes {
		return msgTooLarge
	}
	return ""
}

// SniffImage detects the real type from the file header. The declared type from the
// client is not trusted on the server.
func SniffImage(head []byte) (string, bool) {
	m := mimetype.Detect(head)
	ct := m.String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct, strings.HasPrefix(ct, "image/")
}
