package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	FrontendURL string        `env:"FRONTEND_URL, default=http://localhost:3000"`
	UploadDir   string        `env:"UPLOAD_DIR,   default=./uploads"`

	Postgres PostgresConfig
	Redis    RedisConfig
	SendGrid SendGridConfig
}

type PostgresConfig struct {
	DSN      string `env:"POSTGRES_DSN, default=postgres://localhost:5432/lms?sslmode=disable"`
	MaxConns int32  `env:"POSTGRES_MAX_CONNS, default=20"`
	MinConns int32  `env:"POSTGRES_MIN_CONNS, default=2"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SendGridConfig struct {
	APIKey    string `env:"SENDGRID_API_KEY"`
	FromName  string `env:"MAIL_FROM_NAME,  default=MKA LMS"`
	FromEmail string `env:"MAIL_FROM_EMAIL, default=no-reply@mka-lms.com"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
