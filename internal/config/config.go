package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME, default=pet-place"`
	Port        int    `env:"PORT, default=5000"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	LogPretty   bool   `env:"LOG_PRETTY, default=false"`

	DatabaseURL string `env:"DATABASE_URL, default=shop.db"`

	JWTSecret         string        `env:"JWT_SECRET, required"`
	TokenTTL          time.Duration `env:"TOKEN_TTL, default=24h"`
	TrustUserIDHeader bool          `env:"TRUST_USER_ID_HEADER, default=true"`

	Admin  AdminConfig
	Kafka  KafkaConfig
	Search SearchConfig
}

// AdminConfig describes the account ensured at startup. Seeding is skipped
// unless all three values are set.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

func (a AdminConfig) Enabled() bool {
	return a.Username != "" && a.Email != "" && a.Password != ""
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS"`
}

type SearchConfig struct {
	URL      string `env:"ES_URL"`
	User     string `env:"ES_USER"`
	Password string `env:"ES_PASSWORD"`
	Index    string `env:"ES_INDEX, default=products"`
}

func (s SearchConfig) Enabled() bool {
	return strings.TrimSpace(s.URL) != ""
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env (when present) into the process environment and then
// decodes the environment into Config.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Err(err).Msg("notice: .env file not found, using system environment variables")
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}
