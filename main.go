package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filecms/filecms/handlers"
	"github.com/filecms/filecms/internal/config"
	"github.com/filecms/filecms/internal/database"
	"github.com/filecms/filecms/internal/document/repository"
	"github.com/filecms/filecms/internal/document/service"
	"github.com/filecms/filecms/internal/revisions"
	"github.com/filecms/filecms/internal/sessions"
	"github.com/filecms/filecms/internal/storage"
	"github.com/filecms/filecms/internal/users"
	"github.com/filecms/filecms/pkg/logger"
	"github.com/filecms/filecms/pkg/metrics"
	"github.com/filecms/filecms/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("log level %s", logger.LevelString())
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := connectRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	var db *mongo.Database
	if cfg.MongoDB.URI != "" {
		db, err = database.Connect(ctx, cfg.MongoDB, 5, time.Second)
		if err != nil {
			logger.Warnf("%v; falling back to file storage", err)
		} else {
			defer func() { _ = db.Client().Disconnect(context.Background()) }()
		}
	}

	history, err := newHistory(db, cfg.Content.HistoryFile)
	if err != nil {
		logger.Fatalf("revision log: %v", err)
	}
	usersSvc, err := newUsers(ctx, db, cfg.Content.UsersFile)
	if err != nil {
		logger.Fatalf("credential store: %v", err)
	}
	if created, err := usersSvc.SeedAdmin(ctx, cfg.Content.AdminPassword); err != nil {
		logger.Fatalf("seed admin: %v", err)
	} else if created {
		logger.Infof("seeded %q account", users.AdminUsername)
	}

	images, err := newImages(ctx, cfg)
	if err != nil {
		logger.Fatalf("image area: %v", err)
	}
	store := service.NewStore(repository.NewFileRepo(cfg.Content.DataDir), images)

	var limiters []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiters = append(limiters, middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			limiters = append(limiters, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := handlers.NewCMSRouter(handlers.CMSDeps{
		Store:    store,
		History:  history,
		Users:    usersSvc,
		Sessions: sessions.NewService(newSessionRepo(ctx, rdb, db), cfg.Session.TTL),
		Cookie: sessions.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secret: cfg.Session.Secret,
			Secure: cfg.Server.Environment == "production",
		},
		AuthLimiters: limiters,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("CMS listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Host, cfg.Port, err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to Redis at %s:%s", cfg.Host, cfg.Port)
	return client
}

// newSessionRepo prefers Redis, then MongoDB, then process memory.
func newSessionRepo(ctx context.Context, rdb *redis.Client, db *mongo.Database) sessions.Repository {
	if rdb != nil {
		logger.Infof("using Redis for session storage")
		return sessions.NewRedisRepository(rdb, "session:")
	}
	if db != nil {
		repo := sessions.NewMongoRepository(db.Collection(database.SessionsCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warnf("session indexes: %v", err)
		}
		logger.Infof("using MongoDB for session storage")
		return repo
	}
	logger.Infof("using in-memory session storage")
	return sessions.NewMemoryRepository()
}

func newHistory(db *mongo.Database, path string) (*revisions.Service, error) {
	if db != nil {
		return revisions.NewService(revisions.NewMongoRepository(db.Collection(database.RevisionsCollection))), nil
	}
	repo, err := revisions.NewFileRepository(path)
	if err != nil {
		return nil, err
	}
	return revisions.NewService(repo), nil
}

func newUsers(ctx context.Context, db *mongo.Database, path string) (*users.Service, error) {
	if db != nil {
		repo := users.NewMongoUserRepository(db.Collection(database.UsersCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return users.NewService(repo), nil
	}
	repo, err := users.NewFileUserRepository(path)
	if err != nil {
		return nil, err
	}
	return users.NewService(repo), nil
}

func newImages(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	if cfg.MinIO.Endpoint == "" {
		return repository.NewFileRepo(cfg.Content.ImagesDir), nil
	}
	s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return nil, err
	}
	logger.Infof("storing images in MinIO bucket %q", cfg.MinIO.Bucket)
	return s, nil
}
