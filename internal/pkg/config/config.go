package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	JWTSecret string `env:"AUTH_SECRET"`

	// Host is the apex host as it appears in the Host header (may carry a
	// port); CleanHost is the bare apex used as the suffix of tenant
	// subdomains and in recovery links.
	Host      string `env:"HOST,       default=localhost:8080"`
	CleanHost string `env:"CLEAN_HOST, default=localhost"`

	MaxUsers int    `env:"MAX_USERS,   default=100"`
	DBPath   string `env:"DB_PATH,     default=poyobook.db"`
	DataDir  string `env:"DATA_DIR,    default=data"`

	// CaptchaBackend selects where outstanding challenges live:
	// "memory" (single process) or "redis".
	CaptchaBackend string `env:"CAPTCHA_BACKEND, default=memory"`

	Redis RedisConfig
	Mail  MailConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	Host     string `env:"MAILER_HOST, default=smtp.gmail.com"`
	Port     int    `env:"MAILER_PORT, default=587"`
	Address  string `env:"MAILER_ADDRESS"`
	Password string `env:"MAILER_PASSWORD"`
	Alias    string `env:"MAILER_ALIAS"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
