package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// unsetenv removes key for the duration of the test. godotenv only fills
// variables that are absent, so an empty value is not enough.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	unsetenv(t, "PORT", "PUBLIC_URL", "STORE", "MONGO_URI", "MONGO_DB", "USER_STORE",
		"UPLOAD_BACKEND", "UPLOAD_DIR", "REDIS_ADDR", "BODY_LIMIT_BYTES", "CORS_ORIGINS", "LOG_FORMAT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "http://localhost:3001", cfg.PublicURL)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.MongoURI)
	assert.Equal(t, "diary", cfg.MongoDB)
	assert.Equal(t, UploadDisk, cfg.UploadBackend)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(10<<20), cfg.BodyLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Env(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8080")
	unsetenv(t, "PUBLIC_URL", "UPLOAD_BACKEND", "BODY_LIMIT_BYTES", "LOG_FORMAT")
	t.Setenv("STORE", "memory")
	t.Setenv("USER_STORE", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/diary")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173,")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, StorePostgres, cfg.UserStore)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.MinioUseSSL)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	unsetenv(t, "MONGO_DB", "STORE", "USER_STORE", "UPLOAD_BACKEND", "BODY_LIMIT_BYTES", "LOG_FORMAT")
	t.Setenv("LOG_LEVEL", "warn")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MONGO_DB=from_file\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.MongoDB)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over .env")
}

func TestLoad_Invalid(t *testing.T) {
	chdirTemp(t)
	tests := map[string]string{
		"STORE":            "redis",
		"UPLOAD_BACKEND":   "ftp",
		"USER_STORE":       "postgres",
		"BODY_LIMIT_BYTES": "lots",
		"LOG_FORMAT":       "xml",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			unsetenv(t, "STORE", "USER_STORE", "POSTGRES_DSN", "UPLOAD_BACKEND", "BODY_LIMIT_BYTES", "LOG_FORMAT")
			t.Setenv(k, v)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
