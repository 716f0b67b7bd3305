package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Upstream holds the base URLs of the booking backend collaborators
type Upstream struct {
	BusListingURL  string `yaml:"bus_listing_url" validate:"required,url"`
	OwnerLookupURL string `yaml:"owner_lookup_url" validate:"required,url"`
	CityLookupURL  string `yaml:"city_lookup_url" validate:"required,url"`
	UserListingURL string `yaml:"user_listing_url" validate:"required,url"`
	CityAdminURL   string `yaml:"city_admin_url" validate:"required,url"`
}

// Config is the service configuration. LookupConcurrency caps the in-flight
// resolution lookups of one bus page; 0 means no cap.
type Config struct {
	Environment       string        `yaml:"environment" validate:"required"`
	Port              string        `yaml:"port" validate:"required,numeric"`
	LogLevel          string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	DatabaseURL       string        `yaml:"database_url"`
	JWTSecret         string        `yaml:"jwt_secret"`
	RequestTimeout    time.Duration `yaml:"request_timeout" validate:"gt=0"`
	LookupConcurrency int           `yaml:"lookup_concurrency" validate:"gte=0"`
	Upstream          Upstream      `yaml:"upstream"`
}

// Load reads the configuration from the environment, applies the optional
// CONFIG_FILE overlay and validates the result
func Load() (*Config, error) {
	backendURL := strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000"), "/")

	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "dev"),
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RequestTimeout:    getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		LookupConcurrency: getEnvAsInt("LOOKUP_CONCURRENCY", 16),
		Upstream: Upstream{
			BusListingURL:  getEnv("BUS_LISTING_URL", backendURL+"/admin/list"),
			OwnerLookupURL: getEnv("OWNER_LOOKUP_URL", backendURL+"/api/users"),
			CityLookupURL:  getEnv("CITY_LOOKUP_URL", backendURL+"/api/cities/city"),
			UserListingURL: getEnv("USER_LISTING_URL", backendURL+"/api/users"),
			CityAdminURL:   getEnv("CITY_ADMIN_URL", backendURL+"/api/cities"),
		},
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AuthEnabled reports whether admin routes require a bearer token
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// overlayFile replaces values with the ones set in a YAML file.
// Keys missing from the file keep their environment values.
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("5s") or a plain number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
