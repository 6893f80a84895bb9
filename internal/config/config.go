package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Media storage configuration
	Media MediaConfig

	// Reader content configuration
	Content ContentConfig

	// Editor access configuration
	Admin AdminConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MigrationsPath  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// MediaConfig holds article image storage settings
type MediaConfig struct {
	Backend       string // "local" or "s3"
	Root          string // local backend directory
	URLPrefix     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	MaxUploadSize int64 // in bytes
	MaxImageWidth int
	JPEGQuality   int
}

// ContentConfig holds reader-facing behaviour switches
type ContentConfig struct {
	CommentsAutoApprove bool
	DefaultPageSize     int
	MaxPageSize         int
	MostReadCount       int
}

// AdminConfig holds the editor API token
type AdminConfig struct {
	Token string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "news_portal"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Media: MediaConfig{
			Backend:       getEnv("MEDIA_BACKEND", "local"),
			Root:          getEnv("MEDIA_ROOT", "./data/media"),
			URLPrefix:     getEnv("MEDIA_URL", "/media/"),
			S3Bucket:      getEnv("MEDIA_S3_BUCKET", ""),
			S3Region:      getEnv("MEDIA_S3_REGION", "us-east-1"),
			S3Endpoint:    getEnv("MEDIA_S3_ENDPOINT", ""),
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 20*1024*1024), // 20MB
			MaxImageWidth: getIntEnv("IMAGE_MAX_WIDTH", 1200),
			JPEGQuality:   getIntEnv("IMAGE_JPEG_QUALITY", 85),
		},
		Content: ContentConfig{
			CommentsAutoApprove: getBoolEnv("COMMENTS_AUTO_APPROVE", false),
			DefaultPageSize:     getIntEnv("PAGE_SIZE", 10),
			MaxPageSize:         getIntEnv("MAX_PAGE_SIZE", 50),
			MostReadCount:       getIntEnv("MOST_READ_COUNT", 5),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	switch c.Media.Backend {
	case "local":
		if c.Media.Root == "" {
			return fmt.Errorf("MEDIA_ROOT is required for the local media backend")
		}
	case "s3":
		if c.Media.S3Bucket == "" {
			return fmt.Errorf("MEDIA_S3_BUCKET is required for the s3 media backend")
		}
	default:
		return fmt.Errorf("MEDIA_BACKEND must be one of: local, s3")
	}
	if c.Media.MaxImageWidth < 1 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be at least 1")
	}
	if c.Media.JPEGQuality < 1 || c.Media.JPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be between 1 and 100")
	}
	if c.Content.DefaultPageSize < 1 || c.Content.MaxPageSize < c.Content.DefaultPageSize {
		return fmt.Errorf("PAGE_SIZE must be at least 1 and not exceed MAX_PAGE_SIZE")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
