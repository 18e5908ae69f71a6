package media

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// imagePrefix marks a value as inline image bytes rather than a URL.
const imagePrefix = "data:image"

var dataURIHeader = regexp.MustCompile(`^data:image/[\w.+-]+;base64,`)

// IsDataURI reports whether s carries inline image bytes.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, imagePrefix)
}

// DecodeImage returns the bytes of a base64 image. The data URI header is
// optional; padded and unpadded base64 are both accepted.
func DecodeImage(s string) ([]byte, error) {
	payload := dataURIHeader.ReplaceAllString(strings.TrimSpace(s), "")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return nil, apperr.Invalid("image data is not valid base64")
	}
	if len(data) == 0 {
		return nil, apperr.Invalid("image data is empty")
	}
	return data, nil
}
