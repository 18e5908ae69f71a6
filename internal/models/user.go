package models

import (
	"strings"
	"time"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// User is a registered account. The password is kept and returned as
// submitted; login compares it by plain equality.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest is the JSON body for POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if blank(r.Username) || blank(r.Email) || blank(r.Password) {
		return apperr.Invalid("username, email, and password are required")
	}
	return nil
}

// LoginRequest is the JSON body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if blank(r.Email) || blank(r.Password) {
		return apperr.Invalid("email and password are required")
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
