// Package store holds the persistence adapters: record stores for users,
// images and diaries, and blob stores for the upload area.
package store

import "github.com/ayush/ai-diary/backend/internal/apperr"

var (
	// ErrEmailTaken is returned when a user with the same email exists.
	ErrEmailTaken = apperr.Conflict("email is already registered")
	// ErrUserNotFound is returned when no user matches a lookup.
	ErrUserNotFound = apperr.NotFound("User not found")
	// ErrFileNotFound is returned when a blob is missing from the upload area.
	ErrFileNotFound = apperr.NotFound("file not found")
	// ErrFileExists is returned when an upload would replace a stored blob.
	ErrFileExists = apperr.Conflict("file already exists")
)
