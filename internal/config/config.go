package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Directory DirectoryConfig
	Logger    LoggerConfig
}

type AppConfig struct {
	Name                string
	Env                 string
	Port                string
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

// PostgresConfig: DSN vacío => stores en memoria.
type PostgresConfig struct {
	DSN           string
	MaxOpenConns  int
	MaxIdleConns  int
	RunMigrations bool
}

// RedisConfig: Addr vacío => sin cache de directorios.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

// DirectoryConfig: URLs vacías => directorios locales (pets/users de este servicio).
type DirectoryConfig struct {
	PetsURL        string
	UsersURL       string
	TimeoutSeconds int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Load lee .env (si existe) y luego variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return &Config{
		App: AppConfig{
			Name:                getEnv("APP_NAME", "gestion-citas"),
			Env:                 getEnv("APP_ENV", "development"),
			Port:                getEnv("PORT", "8080"),
			ReadTimeoutSeconds:  getEnvAsInt("HTTP_READ_TIMEOUT_SECONDS", 5),
			WriteTimeoutSeconds: getEnvAsInt("HTTP_WRITE_TIMEOUT_SECONDS", 10),
		},
		Postgres: PostgresConfig{
			DSN:           os.Getenv("DB_DSN"),
			MaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			RunMigrations: getEnvAsBool("DB_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         redisDB,
			TTLSeconds: getEnvAsInt("DIRECTORY_CACHE_TTL_SECONDS", 300),
		},
		Directory: DirectoryConfig{
			PetsURL:        os.Getenv("PETS_DIRECTORY_URL"),
			UsersURL:       os.Getenv("USERS_DIRECTORY_URL"),
			TimeoutSeconds: getEnvAsInt("DIRECTORY_TIMEOUT_SECONDS", 5),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

func (a AppConfig) Addr() string {
	return ":" + a.Port
}

func (a AppConfig) ReadTimeout() time.Duration  { return seconds(a.ReadTimeoutSeconds) }
func (a AppConfig) WriteTimeout() time.Duration { return seconds(a.WriteTimeoutSeconds) }

func (r RedisConfig) TTL() time.Duration { return seconds(r.TTLSeconds) }

func (d DirectoryConfig) Timeout() time.Duration { return seconds(d.TimeoutSeconds) }

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
