package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/ai-diary/backend/internal/apperr"
	"github.com/ayush/ai-diary/backend/internal/models"
)

type recordStore interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertImage(ctx context.Context, img *models.Image) (*models.Image, error)
	ListImages(ctx context.Context) ([]models.Image, error)
	InsertDiary(ctx context.Context, d *models.Diary) (*models.Diary, error)
	ListDiariesByUser(ctx context.Context, userID string) ([]models.Diary, error)
}

var start = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// testRecordStore runs the shared contract against s. The store's clock
// must advance between reads.
func testRecordStore(t *testing.T, s recordStore) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		u, err := s.CreateUser(ctx, "kim", "kim@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "secret", u.Password)

		_, err = s.CreateUser(ctx, "kim2", "kim@example.com", "other")
		assert.True(t, apperr.Is(err, apperr.EConflict), "got %v", err)

		_, err = s.CreateUser(ctx, "kim3", "KIM@example.com", "other")
		assert.NoError(t, err, "email match is case-sensitive")

		got, err := s.GetUserByEmail(ctx, "kim@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "kim", got.Username)
		assert.Equal(t, "secret", got.Password)

		_, err = s.GetUserByEmail(ctx, "nobody@example.com")
		assert.True(t, apperr.Is(err, apperr.ENotFound), "got %v", err)
	})

	t.Run("images newest first", func(t *testing.T) {
		first, err := s.InsertImage(ctx, &models.Image{URL: "http://a/1.png", Type: models.ImageOriginal})
		require.NoError(t, err)
		second, err := s.InsertImage(ctx, &models.Image{URL: "http://a/2.png", Type: models.ImageAnalyzed})
		require.NoError(t, err)
		assert.False(t, first.ID.IsZero())

		imgs, err := s.ListImages(ctx)
		require.NoError(t, err)
		require.Len(t, imgs, 2)
		assert.Equal(t, second.ID, imgs[0].ID)
		assert.Equal(t, first.ID, imgs[1].ID)
		assert.Equal(t, models.ImageAnalyzed, imgs[0].Type)
	})

	t.Run("diaries by user", func(t *testing.T) {
		empty, err := s.ListDiariesByUser(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		var ids []string
		for _, title := range []string{"one", "two", "three"} {
			d, err := s.InsertDiary(ctx, &models.Diary{
				UserID:   "u1",
				Title:    title,
				Content:  "c",
				Photos:   []string{"p1", "p2"},
				Keywords: []string{"Nature"},
			})
			require.NoError(t, err)
			ids = append(ids, d.ID.Hex())
		}
		_, err = s.InsertDiary(ctx, &models.Diary{UserID: "u2", Title: "other", Content: "c", Photos: []string{}, Keywords: []string{}})
		require.NoError(t, err)

		list, err := s.ListDiariesByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, ids[2], list[0].ID.Hex())
		assert.Equal(t, ids[0], list[2].ID.Hex())
		for i := 1; i < len(list); i++ {
			assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
		}
		assert.Equal(t, []string{"p1", "p2"}, list[0].Photos)
	})
}
