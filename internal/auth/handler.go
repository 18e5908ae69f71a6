package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayush/ai-diary/backend/internal/apperr"
	"github.com/ayush/ai-diary/backend/internal/models"
	"github.com/ayush/ai-diary/backend/internal/web"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds account HTTP handlers.
type Handler struct {
	users UserStore
	log   *zap.Logger
}

func NewHandler(users UserStore, log *zap.Logger) *Handler {
	return &Handler{users: users, log: log}
}

// Register creates a new user. The email must not be registered yet.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	var req models.RegisterRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := r.Context()
	existing, err := h.users.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		return apperr.Conflict("email is already registered")
	case err != nil && !apperr.Is(err, apperr.ENotFound):
		return apperr.Internal("auth.GetUserByEmail", err)
	}

	// The unique index still guards against a concurrent registration.
	user, err := h.users.CreateUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if apperr.Is(err, apperr.EConflict) {
			return err
		}
		return apperr.Internal("auth.CreateUser", err)
	}

	h.log.Info("User registered", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return web.WriteJSON(w, http.StatusOK, web.Message{"message": "user registered", "user": user})
}

// Login checks the password against the stored one by plain equality.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if apperr.Is(err, apperr.ENotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal("auth.GetUserByEmail", err)
	}
	if user.Password != req.Password {
		return apperr.Unauthorized("Invalid password")
	}

	h.log.Info("User logged in", zap.String("user_id", user.ID))
	return web.WriteJSON(w, http.StatusOK, web.Message{"message": "login successful", "user": user})
}
