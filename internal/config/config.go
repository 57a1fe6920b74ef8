package config

import (
	"fmt"     // Error formatting
	"strings" // String manipulation
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // Environment lookup with defaults
)

// Supported database drivers
const (
	DriverMySQL  = "mysql"  // Production database
	DriverSQLite = "sqlite" // Local development database
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	IsProd          bool          // Is production environment
	ShutdownTimeout time.Duration // Grace period for in-flight requests
	CORSOrigins     []string      // Allowed CORS origins, "*" for any
	DB              DBConfig      // Database settings
	Redis           RedisConfig   // Cache settings
	Auth            AuthConfig    // Token and password settings
	Log             LogConfig     // Logger settings
	Admin           AdminConfig   // Seeded administrator
}

// DBConfig holds database connection settings
type DBConfig struct {
	Driver   string // mysql or sqlite
	User     string // Database user
	Password string // Database password
	Host     string // Database host
	Port     string // Database port
	Name     string // Database name
	Path     string // SQLite file path
}

// RedisConfig holds cache connection settings
type RedisConfig struct {
	Addr     string        // Redis server address, empty disables caching
	Password string        // Redis password
	DB       int           // Redis database number
	TTL      time.Duration // Cache entry lifetime
}

// AuthConfig holds token and password settings
type AuthConfig struct {
	JWTSecret  string        // JWT secret key
	TokenTTL   time.Duration // Token lifetime
	BcryptCost int           // bcrypt cost factor
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string // logrus level name
	Format string // text or json
}

// AdminConfig describes the administrator seeded by the migrate command
type AdminConfig struct {
	Name     string // Display name
	Email    string // Login email, empty disables seeding
	Password string // Initial password
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_PORT", "9999")
	v.SetDefault("IS_PROD", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "vocab")
	v.SetDefault("DB_USER", "vocab")
	v.SetDefault("DB_PATH", "./vocab.db")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("JWT_TTL", "168h") // 7 days
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("ADMIN_NAME", "Administrator")

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		IsProd:          v.GetBool("IS_PROD"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			Path:     v.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASS"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("JWT_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DB.Driver != DriverMySQL && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	return cfg, nil
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.DB.Driver == DriverSQLite {
		return c.DB.Path + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return c.DB.User + ":" + c.DB.Password + "@tcp(" + c.DB.Host + ":" + c.DB.Port + ")/" + c.DB.Name + "?parseTime=true"
}

// splitList parses a comma-separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
