package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/ai-diary/backend/internal/clock"
	"github.com/ayush/ai-diary/backend/internal/models"
)

// Collection names match the ones the mongoose models used.
const (
	usersCollection   = "users"
	imagesCollection  = "images"
	diariesCollection = "diaries"
)

// newestFirst sorts by creation time, breaking ties on insertion order.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// MongoStore persists users, images and diaries in MongoDB.
type MongoStore struct {
	users   *mongo.Collection
	images  *mongo.Collection
	diaries *mongo.Collection
	clock   clock.Clock
}

func NewMongoStore(db *mongo.Database, clk clock.Clock) *MongoStore {
	return &MongoStore{
		users:   db.Collection(usersCollection),
		images:  db.Collection(imagesCollection),
		diaries: db.Collection(diariesCollection),
		clock:   clk,
	}
}

// EnsureIndexes creates the unique email index and the listing indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("mongo users index: %w", err)
	}
	if _, err := s.images.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: newestFirst,
	}); err != nil {
		return fmt.Errorf("mongo images index: %w", err)
	}
	if _, err := s.diaries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	}); err != nil {
		return fmt.Errorf("mongo diaries index: %w", err)
	}
	return nil
}

// now returns the clock time at the precision BSON dates keep.
func (s *MongoStore) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *userDoc) user() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

func (s *MongoStore) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: s.now(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("mongo insert user: %w", err)
	}
	return doc.user(), nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return doc.user(), nil
}

func (s *MongoStore) InsertImage(ctx context.Context, img *models.Image) (*models.Image, error) {
	saved := *img
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = s.now()
	if _, err := s.images.InsertOne(ctx, saved); err != nil {
		return nil, fmt.Errorf("mongo insert image: %w", err)
	}
	return &saved, nil
}

func (s *MongoStore) ListImages(ctx context.Context) ([]models.Image, error) {
	cur, err := s.images.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("mongo find images: %w", err)
	}
	defer cur.Close(ctx)

	imgs := []models.Image{}
	if err := cur.All(ctx, &imgs); err != nil {
		return nil, fmt.Errorf("mongo decode images: %w", err)
	}
	return imgs, nil
}

func (s *MongoStore) InsertDiary(ctx context.Context, d *models.Diary) (*models.Diary, error) {
	saved := *d
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = s.now()
	if _, err := s.diaries.InsertOne(ctx, saved); err != nil {
		return nil, fmt.Errorf("mongo insert diary: %w", err)
	}
	return &saved, nil
}

func (s *MongoStore) ListDiariesByUser(ctx context.Context, userID string) ([]models.Diary, error) {
	cur, err := s.diaries.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("mongo find diaries: %w", err)
	}
	defer cur.Close(ctx)

	diaries := []models.Diary{}
	if err := cur.All(ctx, &diaries); err != nil {
		return nil, fmt.Errorf("mongo decode diaries: %w", err)
	}
	return diaries, nil
}
