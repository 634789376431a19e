package config

import (
	"errors"  // For validation errors
	"fmt"     // For DSN formatting
	"strings" // For driver normalization
	"time"    // For durations

	"github.com/caarlos0/env/v11" // Environment decoding into structs
	"github.com/joho/godotenv"    // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"5000"`  // Application port
	IsProd   bool   `env:"IS_PROD" envDefault:"false"`  // Is production environment
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"` // Logrus level name

	DBDriver       string `env:"DB_DRIVER" envDefault:"mysql"`      // mysql, postgres or sqlite
	DBUser         string `env:"DB_USER"`                           // Database user
	DBPassword     string `env:"DB_PASSWORD"`                       // Database password
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`    // Database host
	DBPort         string `env:"DB_PORT"`                           // Database port, driver default when empty
	DBName         string `env:"DB_NAME" envDefault:"leave_system"` // Database name
	DBPath         string `env:"DB_PATH" envDefault:"leave.db"`     // SQLite file path
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"` // Pool size
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`  // Idle connections kept

	JWTSecret    string        `env:"JWT_SECRET"`                       // JWT secret key
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"` // Token lifetime

	RedisAddr string        `env:"REDIS_ADDR"`                 // Redis server address, empty disables caching
	RedisPass string        `env:"REDIS_PASS"`                 // Redis password
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`    // Redis database number
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"60s"` // Lifetime of cached list pages

	SMTPHost string `env:"SMTP_HOST"`                  // SMTP server, empty disables notifications
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"` // SMTP port
	SMTPUser string `env:"SMTP_USER"`                  // SMTP username
	SMTPPass string `env:"SMTP_PASS"`                  // SMTP password
	SMTPFrom string `env:"SMTP_FROM"`                  // Sender address, defaults to SMTPUser

	UploadDir   string   `env:"UPLOAD_DIR" envDefault:"uploads"` // Where attachments are written
	MaxUploadMB int64    `env:"MAX_UPLOAD_MB" envDefault:"5"`    // Attachment size limit
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`   // Allowed origins, empty allows all
	RateLimit   float64  `env:"AUTH_RATE_LIMIT" envDefault:"5"`  // Auth requests per second per client
	RateBurst   int      `env:"AUTH_RATE_BURST" envDefault:"10"` // Auth burst size per client

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@company.com"` // Seeded admin email
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`       // Seeded admin password
}

// LoadConfig loads configuration from .env and environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	// Decode environment into the struct, applying defaults
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver) // Normalize driver name
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432" // Postgres default port
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, port, c.DBUser, c.DBPassword, c.DBName)
	case DriverSQLite:
		return c.DBPath + "?_foreign_keys=on" // Cascades need foreign keys enabled
	default:
		port := c.DBPort
		if port == "" {
			port = "3306" // MySQL default port
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&loc=UTC"
	}
}

// SMTPEnabled reports whether a mail transport is configured
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// MaxUploadBytes is the attachment size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
