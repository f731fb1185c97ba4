// internal/config/config.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database struct {
		Host        string `json:"host"`
		Port        string `json:"port"`
		User        string `json:"user"`
		Password    string `json:"password"`
		Name        string `json:"name"`
		SSLMode     string `json:"sslmode"`
		SearchPath  string `json:"schema"`
		AutoMigrate bool   `json:"auto_migrate"`
		LogSQL      bool   `json:"log_sql"`
	} `json:"database"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
		CORSOrigins  []string      `json:"cors_origins"`
	} `json:"server"`
	RateLimit struct {
		MaxRequests int           `json:"max_requests"`
		Window      time.Duration `json:"window"`
	} `json:"rate_limit"`
	Wigle struct {
		BaseURL  string        `json:"base_url"`
		APIName  string        `json:"api_name"`
		APIToken string        `json:"api_token"`
		Timeout  time.Duration `json:"timeout"`
	} `json:"wigle"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	AMQP struct {
		URL      string `json:"url"`
		Exchange string `json:"exchange"`
	} `json:"amqp"`
	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
	BaseURL string `json:"base_url"`
}

// Load reads the configuration from the environment, after merging an
// optional .env file from the working directory.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "apmap")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")
	cfg.Database.AutoMigrate = getEnvBool("DB_AUTO_MIGRATE", false)
	cfg.Database.LogSQL = getEnvBool("DB_LOG_SQL", false)

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.ExpiryPeriod = getEnvDuration("JWT_EXPIRY", 7*24*time.Hour)

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "3001")
	cfg.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	cfg.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	cfg.Server.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	// Rate limiting
	cfg.RateLimit.MaxRequests = getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100)
	cfg.RateLimit.Window = getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute)

	// WiGLE
	cfg.Wigle.BaseURL = getEnv("WIGLE_BASE_URL", "https://api.wigle.net/api/v2")
	cfg.Wigle.APIName = getEnv("WIGLE_API_NAME", "")
	cfg.Wigle.APIToken = getEnv("WIGLE_API_TOKEN", "")
	cfg.Wigle.Timeout = getEnvDuration("WIGLE_TIMEOUT", 10*time.Second)

	// Redis, disabled when no address is set
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	// AMQP, disabled when no URL is set
	cfg.AMQP.URL = getEnv("AMQP_URL", "")
	cfg.AMQP.Exchange = getEnv("AMQP_EXCHANGE", "apmap.events")

	// Sendgrid configuration
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "no-reply@apmap.local")

	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:3000")

	return cfg
}

// DSN returns the postgres connection string for the database section.
func (c *Config) DSN() string {
	return "host=" + c.Database.Host +
		" port=" + c.Database.Port +
		" user=" + c.Database.User +
		" password=" + c.Database.Password +
		" dbname=" + c.Database.Name +
		" sslmode=" + c.Database.SSLMode +
		" search_path=" + c.Database.SearchPath
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return b
}

// getEnvDuration accepts Go durations ("15m") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
