package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "shop.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.TrustUserIDHeader)
	assert.False(t, cfg.Admin.Enabled())
	assert.False(t, cfg.Search.Enabled())
	assert.Equal(t, "products", cfg.Search.Index)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "secret",
		"PORT":                 "8081",
		"TOKEN_TTL":            "15m",
		"TRUST_USER_ID_HEADER": "false",
		"KAFKA_BROKERS":        "kafka-1:9092,kafka-2:9092",
		"ADMIN_USERNAME":       "admin",
		"ADMIN_EMAIL":          "admin@example.com",
		"ADMIN_PASSWORD":       "admin123",
		"ES_URL":               "http://es:9200",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.TrustUserIDHeader)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Admin.Enabled())
	assert.True(t, cfg.Search.Enabled())
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoadFrom_NonPositiveTTL(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
		"TOKEN_TTL":  "0s",
	}))
	require.Error(t, err)
}
