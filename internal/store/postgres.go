package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/ai-diary/backend/internal/clock"
	"github.com/ayush/ai-diary/backend/internal/models"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresStore keeps users in PostgreSQL. It is selected with
// USER_STORE=postgres; images and diaries stay in Mongo.
type PostgresStore struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPostgresStore(pool *pgxpool.Pool, clk clock.Clock) *PostgresStore {
	return &PostgresStore{pool: pool, clock: clk}
}

// Migrate creates the users table if it doesn't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY,
			username   TEXT         NOT NULL,
			email      VARCHAR(255) UNIQUE NOT NULL,
			password   TEXT         NOT NULL,
			created_at TIMESTAMPTZ  NOT NULL
		)
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	u := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: s.clock.Now().UTC().Truncate(time.Microsecond),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Username, u.Email, u.Password, u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password, created_at FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
