// Package config loads process configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	LogLevel     string
	AllowOrigins []string
}

// MongoConfig describes how to reach the document store.
// Host lists and credentials are only ever supplied from the environment.
type MongoConfig struct {
	URI        string
	Hosts      []string
	SRVHost    string
	User       string
	Password   string
	Database   string
	ReplicaSet string
	AuthSource string
	TLS        bool
	Timeout    time.Duration
}

// RedisConfig is optional; an empty Host disables the project cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type SecurityConfig struct {
	BcryptCost int
	// LoginRateLimit uses the "<limit>-<period>" format, e.g. "10-M". Empty disables it.
	LoginRateLimit string
}

// Load reads .env (if any) and the environment, applies defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Environment:  getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Mongo: MongoConfig{
			URI:        os.Getenv("MONGODB_URI"),
			Hosts:      getEnvAsList("MONGODB_HOSTS", nil),
			SRVHost:    os.Getenv("MONGODB_SRV_HOST"),
			User:       os.Getenv("MONGODB_USER"),
			Password:   os.Getenv("MONGODB_PASSWORD"),
			Database:   getEnv("MONGODB_DATABASE", "studentProjects"),
			ReplicaSet: os.Getenv("MONGODB_REPLICA_SET"),
			AuthSource: getEnv("MONGODB_AUTH_SOURCE", "admin"),
			TLS:        getEnvAsBool("MONGODB_TLS", true),
			Timeout:    getEnvAsDuration("MONGODB_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("PROJECTS_CACHE_TTL", 5*time.Minute),
		},
		Security: SecurityConfig{
			BcryptCost:     getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
			LoginRateLimit: os.Getenv("LOGIN_RATE_LIMIT"),
		},
	}
}

// Validate rejects configurations the server cannot run with.
// Having no store descriptor at all is allowed; the server then runs degraded.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("MONGODB_DATABASE is required")
	}
	if c.Mongo.Timeout <= 0 {
		return errors.New("MONGODB_TIMEOUT must be positive")
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return errors.New("BCRYPT_COST is out of range")
	}
	return nil
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (c ServerConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Addr returns host:port, or "" when Redis is not configured.
func (c RedisConfig) Addr() string {
	if c.Host == "" {
		return ""
	}
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "default", defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
