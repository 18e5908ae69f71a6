package diary

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayush/ai-diary/backend/internal/apperr"
	"github.com/ayush/ai-diary/backend/internal/models"
	"github.com/ayush/ai-diary/backend/internal/web"
)

// DiaryStore defines the interface for diary persistence.
type DiaryStore interface {
	InsertDiary(ctx context.Context, d *models.Diary) (*models.Diary, error)
	ListDiariesByUser(ctx context.Context, userID string) ([]models.Diary, error)
}

// Handler holds diary HTTP handlers.
type Handler struct {
	diaries DiaryStore
	log     *zap.Logger
}

func NewHandler(diaries DiaryStore, log *zap.Logger) *Handler {
	return &Handler{diaries: diaries, log: log}
}

// Create saves a diary entry for the userId in the body. The user is not
// looked up; the caller is trusted.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateDiaryRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	saved, err := h.diaries.InsertDiary(r.Context(), req.Diary())
	if err != nil {
		return apperr.Internal("diary.InsertDiary", err)
	}

	h.log.Info("Diary saved",
		zap.String("diary_id", saved.ID.Hex()),
		zap.String("user_id", saved.UserID),
		zap.String("title", saved.Title),
	)
	return web.WriteJSON(w, http.StatusOK, web.Message{"message": "diary saved", "diary": saved})
}

// ListByUser returns all diaries of the user in the path, newest first.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "userId")
	diaries, err := h.diaries.ListDiariesByUser(r.Context(), userID)
	if err != nil {
		return apperr.Internal("diary.ListDiariesByUser", err)
	}
	if diaries == nil {
		diaries = []models.Diary{}
	}
	return web.WriteJSON(w, http.StatusOK, diaries)
}
