package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	LogLevel       string
	JWTSecret      string
	JWTExpiry      time.Duration
	UploadDir      string
	MaxUploadBytes int64
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SenderEmail    string
	WelcomeEmail   bool
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=tasks sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "no-reply@taskhive.local"),
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRE", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}
	cfg.JWTExpiry = expiry

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "5242880"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
	}
	cfg.MaxUploadBytes = maxUpload

	welcome, err := strconv.ParseBool(getEnv("WELCOME_EMAIL", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid WELCOME_EMAIL: %w", err)
	}
	// Sending mail without an SMTP host can only fail
	cfg.WelcomeEmail = welcome && cfg.SMTPHost != ""

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
