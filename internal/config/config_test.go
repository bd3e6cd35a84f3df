package config

import (
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWTExpiry != 168*time.Hour {
		t.Errorf("JWTExpiry = %v, want 168h", cfg.JWTExpiry)
	}
	if cfg.MaxUploadBytes != 5242880 {
		t.Errorf("MaxUploadBytes = %d, want 5 MiB", cfg.MaxUploadBytes)
	}
	if cfg.WelcomeEmail {
		t.Error("welcome mail must be off without an SMTP host")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRE", "24h")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if !cfg.WelcomeEmail {
		t.Error("welcome mail must be on with an SMTP host configured")
	}
}

func TestNewConfigRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "soon")
	if _, err := NewConfig(); err == nil {
		t.Error("expected error for invalid JWT_EXPIRE")
	}
}
