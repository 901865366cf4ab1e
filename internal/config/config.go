// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	AI       AIConfig
	Media    MediaConfig
	Mail     MailConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds SQL connection settings.
type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	URL      string // DATABASE_DSN, overrides the fields below when set
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Backend           string // sql or firestore
	FirebaseProjectID string
	CredentialsFile   string
}

// AIConfig configures the generative AI client.
type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// MediaConfig configures where uploaded images are hosted.
type MediaConfig struct {
	Backend   string // gcs, s3 or http
	Bucket    string
	Region    string
	UploadURL string
	APIKey    string
}

// MailConfig configures outbound email.
type MailConfig struct {
	SendGridAPIKey string
	From           string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev           bool
	Migrations    bool
	AdminEmail    string
	SessionSecret string
	SeedFile      string
	LogLevel      string
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == "sqlite" {
		name := d.DBName
		if !strings.HasSuffix(name, ".db") {
			name += ".db"
		}
		return name
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			URL:      getEnv("DATABASE_DSN", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "yazzfolio"),
			Password: getEnv("DB_PASSWORD", "yazzfolio"),
			DBName:   getEnv("DB_NAME", "yazzfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Store: StoreConfig{
			Backend:           getEnv("STORE_BACKEND", "sql"),
			FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsFile:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		AI: AIConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		},
		Media: MediaConfig{
			Backend:   getEnv("MEDIA_BACKEND", "http"),
			Bucket:    getEnv("MEDIA_BUCKET", ""),
			Region:    getEnv("MEDIA_REGION", "us-east-1"),
			UploadURL: getEnv("MEDIA_UPLOAD_URL", "https://api.imgbb.com/1/upload"),
			APIKey:    getEnv("MEDIA_API_KEY", ""),
		},
		Mail: MailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			From:           getEnv("MAIL_FROM", ""),
		},
		App: AppConfig{
			Dev:           getEnvBool("DEV", true),
			Migrations:    getEnvBool("MIGRATIONS", true),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SeedFile:      getEnv("SEED_FILE", ""),
			LogLevel:      getEnv("LOG_LEVEL", "info"),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
