package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush/ai-diary/backend/internal/clock"
	"github.com/ayush/ai-diary/backend/internal/models"
)

// MemoryStore is an in-process record store with the same contract as
// MongoStore. It backs STORE=memory and the handler tests.
type MemoryStore struct {
	mu      sync.RWMutex
	users   []models.User
	images  []models.Image
	diaries []models.Diary
	clock   clock.Clock
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{clock: clk}
}

func (s *MemoryStore) CreateUser(_ context.Context, username, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}
	u := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: s.clock.Now(),
	}
	s.users = append(s.users, u)
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) InsertImage(_ context.Context, img *models.Image) (*models.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *img
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = s.clock.Now()
	s.images = append(s.images, saved)
	return &saved, nil
}

func (s *MemoryStore) ListImages(_ context.Context) ([]models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Image, 0, len(s.images))
	for i := len(s.images) - 1; i >= 0; i-- {
		out = append(out, s.images[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) InsertDiary(_ context.Context, d *models.Diary) (*models.Diary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *d
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = s.clock.Now()
	s.diaries = append(s.diaries, saved)
	return &saved, nil
}

func (s *MemoryStore) ListDiariesByUser(_ context.Context, userID string) ([]models.Diary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Diary{}
	for i := len(s.diaries) - 1; i >= 0; i-- {
		if s.diaries[i].UserID == userID {
			out = append(out, s.diaries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
