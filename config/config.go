package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"foodfindr/services"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL    string
	ListingURL string
	UserAgent  string
	FetchMode  string

	RequestTimeoutMs int
	MenuDelayMs      int
	MaxRetries       int
	RetryBaseDelayMs int
	MaxFeatures      int

	OutputDir string
	ChromeBin string
	LogLevel  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
// The database password is never defaulted; it comes from POSTGRES_PASSWORD or
// from the file named by POSTGRES_PASSWORD_FILE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	password, err := secret("POSTGRES_PASSWORD")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:    getEnv("BASE_URL", "http://boston.menupages.com"),
		ListingURL: getEnv("LISTING_URL", "http://boston.menupages.com/restaurants/all-areas/all-neighborhoods/all-cuisines/"),
		UserAgent:  getEnv("USER_AGENT", "Mozilla/5.0 (Linux i686)"),
		FetchMode:  strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),

		RequestTimeoutMs: getEnvInt("REQUEST_TIMEOUT_MS", 30000),
		MenuDelayMs:      getEnvInt("MENU_DELAY_MS", 5000),
		MaxRetries:       getEnvInt("MAX_RETRIES", 1),
		RetryBaseDelayMs: getEnvInt("RETRY_BASE_DELAY_MS", 2000),
		MaxFeatures:      getEnvInt("MAX_FEATURES", services.DefaultMaxFeatures),

		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		ChromeBin: getEnv("CHROME_BIN", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "foodfindr"),
		PostgresPassword: password,
		PostgresDB:       getEnv("POSTGRES_DB", "food_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("BASE_URL must not be empty"))
	}
	if c.ListingURL == "" {
		errs = append(errs, errors.New("LISTING_URL must not be empty"))
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		errs = append(errs, fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.FetchMode))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("MAX_RETRIES must be at least 1, got %d", c.MaxRetries))
	}
	if c.MaxFeatures < 1 {
		errs = append(errs, fmt.Errorf("MAX_FEATURES must be at least 1, got %d", c.MaxFeatures))
	}
	if c.MenuDelayMs < 0 || c.RequestTimeoutMs < 0 || c.RetryBaseDelayMs < 0 {
		errs = append(errs, errors.New("delays and timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection string for the target database.
func (c *Config) DSN() string {
	return c.dsn(c.PostgresDB)
}

// AdminDSN points at the maintenance database, used to create the target database.
func (c *Config) AdminDSN() string {
	return c.dsn("postgres")
}

func (c *Config) dsn(dbname string) string {
	parts := []string{
		"host=" + quoteDSN(c.PostgresHost),
		"port=" + quoteDSN(c.PostgresPort),
		"user=" + quoteDSN(c.PostgresUser),
	}
	if c.PostgresPassword != "" {
		parts = append(parts, "password="+quoteDSN(c.PostgresPassword))
	}
	parts = append(parts,
		"dbname="+quoteDSN(dbname),
		"sslmode="+quoteDSN(c.PostgresSSLMode),
	)
	return strings.Join(parts, " ")
}

// quoteDSN quotes a key/value connection string value when it needs it.
func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// secret reads key from the environment, or from the file named by key_FILE.
func secret(key string) (string, error) {
	if val := os.Getenv(key); val != "" {
		return val, nil
	}
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("config: read %s_FILE: %w", key, err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
