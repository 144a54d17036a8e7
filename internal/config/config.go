package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	// StoreDriverFile keeps categories in a flat JSON file
	StoreDriverFile = "file"
	// StoreDriverPostgres keeps categories in PostgreSQL
	StoreDriverPostgres = "postgres"

	envTest = "test"
)

// Config holds all application configuration
type Config struct {
	Port        string `validate:"required,numeric"`
	StorePath   string `validate:"required"`
	StoreDriver string `validate:"oneof=file postgres"`
	Env         string
	Database    DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "3024"),
		StorePath:   getEnv("STORE_PATH", "db_card.json"),
		StoreDriver: getEnv("STORE_DRIVER", StoreDriverFile),
		Env:         os.Getenv("APP_ENV"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "braincards"),
			User:     getEnv("DB_USER", "braincards"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and driver-specific requirements
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.StoreDriver == StoreDriverPostgres && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required for the postgres store")
	}

	return nil
}

// IsTest reports whether the process runs under tests, which suppresses the startup banner
func (c *Config) IsTest() bool {
	return c.Env == envTest
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
