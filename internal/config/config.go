package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend selectors.
const (
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	UploadDisk  = "disk"
	UploadMinio = "minio"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port      string
	PublicURL string

	Store       string
	MongoURI    string
	MongoDB     string
	UserStore   string
	PostgresDSN string

	UploadBackend  string
	UploadDir      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	RedisAddr     string
	RedisPassword string

	BodyLimit   int64
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

// Load reads .env (if present) into the environment, then builds a Config.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	port := getenv("PORT", "3001")
	bodyLimit, err := strconv.ParseInt(getenv("BODY_LIMIT_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("BODY_LIMIT_BYTES: %w", err)
	}

	cfg := &Config{
		Port:           port,
		PublicURL:      getenv("PUBLIC_URL", "http://localhost:"+port),
		Store:          getenv("STORE", StoreMongo),
		MongoURI:       getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:        getenv("MONGO_DB", "diary"),
		UserStore:      getenv("USER_STORE", StoreMongo),
		PostgresDSN:    getenv("POSTGRES_DSN", ""),
		UploadBackend:  getenv("UPLOAD_BACKEND", UploadDisk),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "diary-uploads"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		BodyLimit:      bodyLimit,
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "json"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backend names and incomplete backend settings.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE: unknown value %q", c.Store)
	}
	switch c.UserStore {
	case StoreMongo:
	case StorePostgres:
		if c.PostgresDSN == "" {
			return errors.New("USER_STORE=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("USER_STORE: unknown value %q", c.UserStore)
	}
	switch c.UploadBackend {
	case UploadDisk, UploadMinio:
	default:
		return fmt.Errorf("UPLOAD_BACKEND: unknown value %q", c.UploadBackend)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT: unknown value %q", c.LogFormat)
	}
	if c.BodyLimit <= 0 {
		return errors.New("BODY_LIMIT_BYTES must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
