package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// ImageType marks whether an image came from an upload or the analyzer.
type ImageType string

const (
	ImageOriginal ImageType = "original"
	ImageAnalyzed ImageType = "analyzed"
)

// Image points at an uploaded file or an external URL.
type Image struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	URL       string             `json:"url"       bson:"url"`
	Type      ImageType          `json:"type"      bson:"type"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// UploadRequest is the JSON body for POST /api/upload. URL is either a
// resolvable URL or a base64 image data URI.
type UploadRequest struct {
	URL string `json:"url"`
}

func (r *UploadRequest) Validate() error {
	if blank(r.URL) {
		return apperr.Invalid("'url' field is empty")
	}
	return nil
}

// AnalyzeRequest is the JSON body for POST /api/analyze-image.
type AnalyzeRequest struct {
	ImageData string `json:"imageData"`
}

func (r *AnalyzeRequest) Validate() error {
	if blank(r.ImageData) {
		return apperr.Invalid("'imageData' is empty")
	}
	return nil
}
