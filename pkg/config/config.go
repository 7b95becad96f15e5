// Файл: pkg/config/config.go
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendRest     = "rest"
	BackendPostgres = "postgres"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type SupabaseConfig struct {
	URL        string
	AnonKey    string
	ServiceKey string
	// JWTSecret включает локальную проверку access-токенов. Пустое значение - проверка через Auth API.
	JWTSecret string
	Timeout   time.Duration
}

type PostgresConfig struct {
	DSN         string
	AutoMigrate bool
}

type RedisConfig struct {
	Address  string
	Password string
}

type AuthConfig struct {
	ResetPasswordCooldown time.Duration
	ResetRedirectURL      string
}

type LogConfig struct {
	Level string
	File  string
}

type Config struct {
	Server   ServerConfig
	Supabase SupabaseConfig
	Backend  string
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Log      LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8000"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Supabase: SupabaseConfig{
			URL:        getEnv("SUPABASE_URL", ""),
			AnonKey:    getEnv("SUPABASE_KEY", ""),
			ServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
			JWTSecret:  getEnv("SUPABASE_JWT_SECRET", ""),
			Timeout:    getDuration("SUPABASE_TIMEOUT", 15*time.Second),
		},
		Backend: strings.ToLower(getEnv("DATA_BACKEND", BackendRest)),
		Postgres: PostgresConfig{
			DSN:         getEnv("DATABASE_URL", ""),
			AutoMigrate: getBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			ResetPasswordCooldown: getDuration("RESET_PASSWORD_COOLDOWN", time.Minute),
			ResetRedirectURL:      getEnv("RESET_PASSWORD_REDIRECT_URL", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

// Validate проверяет обязательные параметры до старта сервера.
func (c *Config) Validate() error {
	var errs []error
	if c.Supabase.URL == "" {
		errs = append(errs, errors.New("SUPABASE_URL is required"))
	}
	if c.Supabase.AnonKey == "" {
		errs = append(errs, errors.New("SUPABASE_KEY is required"))
	}
	switch c.Backend {
	case BackendRest:
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, errors.New("DATA_BACKEND must be either 'rest' or 'postgres'"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Предупреждение: некорректное значение %s=%q, используется %s", key, value, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
