package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ayush/ai-diary/backend/internal/apperr"
)

// MinioConfig selects the bucket that backs the upload area.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps uploaded files in a MinIO bucket. It is selected with
// UPLOAD_BACKEND=minio and serves the same /uploads/{name} URLs as DiskStore.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to cfg.Endpoint and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	s := &MinioStore{client: client, bucket: cfg.Bucket}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket %s: %w", s.bucket, err)
	}
	if ok {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio make bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Upload stores data under key. Stored files are immutable: an existing
// object makes the call fail with ErrFileExists.
func (s *MinioStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if !ValidKey(key) {
		return apperr.Invalid("invalid file name")
	}
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return ErrFileExists
	}
	if terr := s.translate(key, err); !errors.Is(terr, ErrFileNotFound) {
		return terr
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", key, err)
	}
	return nil
}

// Download returns the object bytes and its content type. Objects stored
// without a usable type fall back to one guessed from the extension.
func (s *MinioStore) Download(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", s.translate(key, err)
	}
	defer obj.Close()

	// GetObject is lazy; a missing key surfaces on the first Stat.
	info, err := obj.Stat()
	if err != nil {
		return nil, "", s.translate(key, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", fmt.Errorf("minio read %s: %w", key, err)
	}
	return data, objectType(key, info.ContentType), nil
}

func objectType(key, stored string) string {
	if stored != "" && stored != "application/octet-stream" && stored != "binary/octet-stream" {
		return stored
	}
	return mime.TypeByExtension(filepath.Ext(key))
}

func (s *MinioStore) translate(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrFileNotFound
	}
	return fmt.Errorf("minio %s: %w", key, err)
}
