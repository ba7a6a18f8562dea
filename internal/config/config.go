package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultSecretKey используется, только если SECRET_KEY не задан.
// В продакшене его нужно переопределить.
const DefaultSecretKey = "insecure-development-secret-change-me"

// Config хранит все конфигурационные параметры приложения.
// Создается один раз в di.BuildApp и дальше только читается.
type Config struct {
	ProjectName string `env:"PROJECT_NAME" envDefault:"Movie Library"`
	APIV1Str    string `env:"API_V1_STR" envDefault:"/api/v1"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`

	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"sqlite://movie_library.db"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`

	SecretKey                string `env:"SECRET_KEY" envDefault:"insecure-development-secret-change-me"`
	Algorithm                string `env:"ALGORITHM" envDefault:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"10"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LoginRateLimit     int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`

	FirstSuperuser struct {
		Username string `env:"FIRST_SUPERUSER_USERNAME"`
		Email    string `env:"FIRST_SUPERUSER_EMAIL" envDefault:"admin@example.com"`
		Password string `env:"FIRST_SUPERUSER_PASSWORD"`
	}

	// Настройки для MinIO (загрузка постеров). Пустой endpoint отключает загрузку.
	MinioEndpoint        string `env:"MINIO_ENDPOINT"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"posters"`
	MinioRegion          string `env:"MINIO_REGION" envDefault:"us-east-1"`
	MinioPublicURL       string `env:"MINIO_PUBLIC_URL"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"catalog_events"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Если рядом лежит .env файл, сначала подгружает его.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.AccessTokenExpireMinutes)
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive, got %d", c.LoginRateLimit)
	}
	if !strings.HasPrefix(c.APIV1Str, "/") {
		return fmt.Errorf("API_V1_STR must start with '/', got %q", c.APIV1Str)
	}
	return nil
}

// AccessTokenTTL — время жизни токена, выдаваемого при логине.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// UsesDefaultSecret сообщает, что подпись токенов идет на ключе по умолчанию.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// PosterStorageEnabled — включена ли загрузка постеров в S3/MinIO.
func (c *Config) PosterStorageEnabled() bool {
	return c.MinioEndpoint != ""
}

// EventsEnabled — публикуются ли события каталога в RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// BootstrapSuperuser — нужно ли создать первого суперпользователя при старте.
func (c *Config) BootstrapSuperuser() bool {
	return c.FirstSuperuser.Username != "" && c.FirstSuperuser.Password != ""
}
