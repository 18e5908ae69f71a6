package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// Diary is a single diary entry. UserID is whatever the caller sent; it is
// not checked against the users collection.
type Diary struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id,omitempty"`
	UserID    string             `json:"userId"    bson:"userId"`
	Title     string             `json:"title"     bson:"title"`
	Content   string             `json:"content"   bson:"content"`
	Photos    []string           `json:"photos"    bson:"photos"`
	Keywords  []string           `json:"keywords"  bson:"keywords"`
	Emotion   string             `json:"emotion"   bson:"emotion"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateDiaryRequest is the JSON body for POST /api/diary.
type CreateDiaryRequest struct {
	UserID   string   `json:"userId"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Photos   []string `json:"photos"`
	Keywords []string `json:"keywords"`
	Emotion  string   `json:"emotion"`
}

func (r *CreateDiaryRequest) Validate() error {
	if blank(r.UserID) {
		return apperr.Invalid("userId is missing, check that you are logged in")
	}
	if blank(r.Title) || blank(r.Content) {
		return apperr.Invalid("title and content are required")
	}
	return nil
}

// Diary builds the record to insert. Photos keep their order; keywords are
// deduplicated keeping the first occurrence. Nil slices become empty.
func (r *CreateDiaryRequest) Diary() *Diary {
	photos := make([]string, 0, len(r.Photos))
	photos = append(photos, r.Photos...)
	return &Diary{
		UserID:   r.UserID,
		Title:    r.Title,
		Content:  r.Content,
		Photos:   photos,
		Keywords: uniqueStrings(r.Keywords),
		Emotion:  r.Emotion,
	}
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
