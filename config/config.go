// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	Backend string
	Path    string
}

type DBConfig struct {
	// DSN, when set, replaces the discrete connection settings.
	DSN          string
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	API      APIConfig
	Session  SessionConfig
	DB       DBConfig
	Redis    RedisConfig
	Telegram struct {
		Token string
	}
	Server struct {
		Port string
	}
	Log struct {
		Development bool
	}
	ShutdownTimeout time.Duration
}

// envNames maps config keys to the environment variables that override
// them, with or without a config file.
var envNames = map[string]string{
	"API.BaseURL":     "GYM_API_BASE_URL",
	"API.Timeout":     "GYM_API_TIMEOUT",
	"Session.Backend": "SESSION_BACKEND",
	"Session.Path":    "SESSION_PATH",
	"DB.DSN":          "DATABASE_URL",
	"DB.Host":         "DB_HOST",
	"DB.Port":         "DB_PORT",
	"DB.User":         "DB_USER",
	"DB.Password":     "DB_PASSWORD",
	"DB.DBName":       "DB_NAME",
	"DB.SSLMode":      "DB_SSL_MODE",
	"DB.MaxOpenConns": "DB_MAX_OPEN_CONNS",
	"DB.MaxIdleConns": "DB_MAX_IDLE_CONNS",
	"DB.ConnLifetime": "DB_CONN_LIFETIME",
	"Redis.Addr":      "REDIS_ADDR",
	"Redis.Password":  "REDIS_PASSWORD",
	"Redis.DB":        "REDIS_DB",
	"Telegram.Token":  "TELEGRAM_TOKEN",
	"Server.Port":     "SERVER_PORT",
	"Log.Development": "LOG_DEVELOPMENT",
	"ShutdownTimeout": "SHUTDOWN_TIMEOUT",
}

// Load reads .env, then a config file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("$HOME/.gymclub")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		return fromEnv(), nil
	}

	// Process any ${ENV_VAR} syntax in the config values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			if envValue := os.Getenv(envVar); envValue != "" {
				v.Set(key, envValue)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Session.Path = os.ExpandEnv(cfg.Session.Path)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API.BaseURL", "")
	v.SetDefault("API.Timeout", 10*time.Second)
	v.SetDefault("Session.Backend", BackendFile)
	v.SetDefault("Session.Path", defaultSessionPath())
	v.SetDefault("DB.Host", "localhost")
	v.SetDefault("DB.Port", "5432")
	v.SetDefault("DB.User", "postgres")
	v.SetDefault("DB.Password", "postgres")
	v.SetDefault("DB.DBName", "gymclub")
	v.SetDefault("DB.SSLMode", "disable")
	v.SetDefault("DB.MaxOpenConns", 10)
	v.SetDefault("DB.MaxIdleConns", 2)
	v.SetDefault("DB.ConnLifetime", 5*time.Minute)
	v.SetDefault("Redis.Addr", "localhost:6379")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("Log.Development", false)
	v.SetDefault("ShutdownTimeout", 10*time.Second)
}

// fromEnv builds the configuration when no config file exists.
func fromEnv() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = os.Getenv("GYM_API_BASE_URL")
	cfg.API.Timeout = getDurationOr("GYM_API_TIMEOUT", 10*time.Second)
	cfg.Session.Backend = getEnvOr("SESSION_BACKEND", BackendFile)
	cfg.Session.Path = getEnvOr("SESSION_PATH", defaultSessionPath())
	cfg.DB.DSN = os.Getenv("DATABASE_URL")
	cfg.DB.Host = getEnvOr("DB_HOST", "localhost")
	cfg.DB.Port = getEnvOr("DB_PORT", "5432")
	cfg.DB.User = getEnvOr("DB_USER", "postgres")
	cfg.DB.Password = getEnvOr("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnvOr("DB_NAME", "gymclub")
	cfg.DB.SSLMode = getEnvOr("DB_SSL_MODE", "disable")
	cfg.DB.MaxOpenConns = getIntOr("DB_MAX_OPEN_CONNS", 10)
	cfg.DB.MaxIdleConns = getIntOr("DB_MAX_IDLE_CONNS", 2)
	cfg.DB.ConnLifetime = getDurationOr("DB_CONN_LIFETIME", 5*time.Minute)
	cfg.Redis.Addr = getEnvOr("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getIntOr("REDIS_DB", 0)
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
	cfg.Log.Development = getEnvOr("LOG_DEVELOPMENT", "false") == "true"
	cfg.ShutdownTimeout = getDurationOr("SHUTDOWN_TIMEOUT", 10*time.Second)

	return cfg
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API.BaseURL is not configured"))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("API.Timeout must be positive"))
	}
	switch c.Session.Backend {
	case BackendFile:
		if c.Session.Path == "" {
			errs = append(errs, errors.New("Session.Path is required for the file backend"))
		}
	case BackendPostgres:
		if c.DB.DSN == "" && (c.DB.Host == "" || c.DB.DBName == "") {
			errs = append(errs, errors.New("DB.DSN or DB.Host and DB.DBName are required for the postgres backend"))
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("Redis.Addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", c.Session.Backend))
	}
	if c.Telegram.Token == "" {
		errs = append(errs, errors.New("Telegram.Token is not configured"))
	}
	return errors.Join(errs...)
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gymclub", "session.json")
}

// Helper function to get environment variable with default value
func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOr(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getDurationOr(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}
