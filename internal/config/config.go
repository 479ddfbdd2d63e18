package config

import (
	"os"
	"time"

	"github.com/filecms/filecms/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Books     BooksConfig
	Session   SessionConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ContentConfig locates the CMS data on disk.
type ContentConfig struct {
	DataDir       string
	ImagesDir     string
	HistoryFile   string
	UsersFile     string
	AdminPassword string
}

type BooksConfig struct {
	DataDir string
	Title   string
	Port    string
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "4567")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("CMS_DATA_DIR", "data")
	viper.SetDefault("CMS_IMAGES_DIR", "public/images")
	viper.SetDefault("CMS_HISTORY_FILE", "history/history.yml")
	viper.SetDefault("CMS_USERS_FILE", "users/users.yml")
	viper.SetDefault("BOOK_DATA_DIR", "books")
	viper.SetDefault("BOOK_TITLE", "The Adventures of Sherlock Holmes")
	viper.SetDefault("BOOK_PORT", "4568")
	viper.SetDefault("SESSION_TTL_MINUTES", 1440)
	viper.SetDefault("SESSION_COOKIE_NAME", "cms_session")
	viper.SetDefault("MONGODB_DATABASE", "filecms")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("MINIO_BUCKET", "cms-images")
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Content: ContentConfig{
			DataDir:       viper.GetString("CMS_DATA_DIR"),
			ImagesDir:     viper.GetString("CMS_IMAGES_DIR"),
			HistoryFile:   viper.GetString("CMS_HISTORY_FILE"),
			UsersFile:     viper.GetString("CMS_USERS_FILE"),
			AdminPassword: os.Getenv("CMS_ADMIN_PASSWORD"),
		},
		Books: BooksConfig{
			DataDir: viper.GetString("BOOK_DATA_DIR"),
			Title:   viper.GetString("BOOK_TITLE"),
			Port:    viper.GetString("BOOK_PORT"),
		},
		Session: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Basic validation
	if cfg.Session.Secret == "" {
		logger.Warnf("SESSION_SECRET is not set; using an insecure development secret")
		cfg.Session.Secret = "development-session-secret"
	}

	return cfg, nil
}
