package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodfindr/services"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MENU_DELAY_MS", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_PASSWORD_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxFeatures != services.DefaultMaxFeatures {
		t.Errorf("MaxFeatures: got %d, want %d", cfg.MaxFeatures, services.DefaultMaxFeatures)
	}
	if cfg.MenuDelayMs != 5000 {
		t.Errorf("MenuDelayMs: got %d, want 5000", cfg.MenuDelayMs)
	}
	if cfg.MaxRetries != 1 {
		t.Errorf("MaxRetries: got %d, want 1", cfg.MaxRetries)
	}
	if cfg.PostgresPassword != "" {
		t.Errorf("password must not have a default, got %q", cfg.PostgresPassword)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadPasswordFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pgpass")
	if err := os.WriteFile(path, []byte("s3cret\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_PASSWORD_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PostgresPassword != "s3cret" {
		t.Errorf("password: got %q, want %q", cfg.PostgresPassword, "s3cret")
	}
}

func TestLoadPasswordFileMissing(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_PASSWORD_FILE", filepath.Join(t.TempDir(), "nope"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing password file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"bad fetch mode", func(c *Config) { c.FetchMode = "curl" }, false},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, false},
		{"zero features", func(c *Config) { c.MaxFeatures = 0 }, false},
		{"negative delay", func(c *Config) { c.MenuDelayMs = -1 }, false},
		{"empty listing url", func(c *Config) { c.ListingURL = "" }, false},
	}

	for _, tt := range tests {
		cfg := &Config{
			BaseURL:     "http://example.com",
			ListingURL:  "http://example.com/all/",
			FetchMode:   FetchModeHTTP,
			MaxRetries:  1,
			MaxFeatures: 10,
		}
		tt.mutate(cfg)
		err := cfg.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db.internal",
		PostgresPort:     "5432",
		PostgresUser:     "food",
		PostgresPassword: "it's secret",
		PostgresDB:       "food_db",
		PostgresSSLMode:  "require",
	}

	dsn := cfg.DSN()
	if !strings.Contains(dsn, "dbname=food_db") {
		t.Errorf("DSN missing dbname: %s", dsn)
	}
	if !strings.Contains(dsn, `password='it\'s secret'`) {
		t.Errorf("DSN password not quoted: %s", dsn)
	}
	if !strings.Contains(cfg.AdminDSN(), "dbname=postgres") {
		t.Errorf("AdminDSN should target the maintenance db: %s", cfg.AdminDSN())
	}

	cfg.PostgresPassword = ""
	if strings.Contains(cfg.DSN(), "password=") {
		t.Errorf("empty password should be omitted: %s", cfg.DSN())
	}
}
