package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ayush/ai-diary/backend/internal/auth"
	"github.com/ayush/ai-diary/backend/internal/clock"
	"github.com/ayush/ai-diary/backend/internal/config"
	"github.com/ayush/ai-diary/backend/internal/diary"
	"github.com/ayush/ai-diary/backend/internal/media"
	"github.com/ayush/ai-diary/backend/internal/server"
	"github.com/ayush/ai-diary/backend/internal/store"
)

// recordStore is what the Mongo and in-memory stores both provide.
type recordStore interface {
	auth.UserStore
	media.ImageStore
	diary.DiaryStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		os.Exit(fail(log, err))
	}
	_ = log.Sync()
}

// fail logs err and flushes the logger, returning the process exit code.
func fail(log *zap.Logger, err error) int {
	log.Error("Server stopped", zap.Error(err))
	_ = log.Sync()
	return 1
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()
	clk := clock.Real{}

	// ── Records: users, images, diaries ──────────────────────
	var records recordStore
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		records = store.NewMemoryStore(clk)
	default:
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		defer mongoClient.Disconnect(context.Background())
		if err := mongoClient.Ping(ctx, nil); err != nil {
			return fmt.Errorf("mongo ping: %w", err)
		}
		mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB), clk)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			return err
		}
		log.Info("MongoDB connected", zap.String("db", cfg.MongoDB))
		records = mongoStore
	}

	// ── Users may live in PostgreSQL instead ─────────────────
	var users auth.UserStore = records
	if cfg.UserStore == config.StorePostgres {
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool, clk)
		if err := pgStore.Migrate(ctx); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
		log.Info("PostgreSQL user store ready")
		users = pgStore
	}

	// ── Upload area ──────────────────────────────────────────
	var files media.FileStore
	switch cfg.UploadBackend {
	case config.UploadMinio:
		minioStore, err := store.NewMinioStore(ctx, store.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return fmt.Errorf("minio connect: %w", err)
		}
		log.Info("MinIO upload area ready", zap.String("bucket", cfg.MinioBucket))
		files = minioStore
	default:
		diskStore, err := store.NewDiskStore(cfg.UploadDir)
		if err != nil {
			return err
		}
		log.Info("Upload directory ready", zap.String("dir", diskStore.Dir()))
		files = diskStore
	}

	// ── File-name sequence ───────────────────────────────────
	var seq media.Sequencer = media.NewLocalSequencer()
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()
		seq = store.NewRedisCounter(rdb, "diary:upload-seq:", 2*time.Second)
	}

	// ── Handlers ─────────────────────────────────────────────
	router := server.NewRouter(server.Deps{
		Auth:        auth.NewHandler(users, log),
		Diary:       diary.NewHandler(records, log),
		Media:       media.NewHandler(records, files, media.NewNamer(clk, seq), media.StubAnalyzer{}, cfg.PublicURL, log),
		Log:         log,
		BodyLimit:   cfg.BodyLimit,
		CORSOrigins: cfg.CORSOrigins,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr), zap.String("public_url", cfg.PublicURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
