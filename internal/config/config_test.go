package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kudoswall/internal/logger"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.UsesMemoryStore())
	assert.NotEmpty(t, cfg.Server.JwtSecretKey)
	assert.Equal(t, 8, cfg.Mongo.FetchConcurrency)
	assert.False(t, cfg.AI.IsEnabled())
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout())
	assert.Equal(t, 6*time.Hour, cfg.Insights.CacheTTL())
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadBytes)
	assert.False(t, cfg.Storage.IsEnabled())
	assert.Empty(t, cfg.Server.EmbedScriptURL)
	assert.Empty(t, cfg.Server.TrustedProxies)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_TIMEOUT_MS", "2500")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
	assert.True(t, cfg.AI.IsEnabled())
	assert.Equal(t, 2500*time.Millisecond, cfg.AI.Timeout())
	assert.Equal(t, "0123456789abcdef0123", cfg.Server.JwtSecretKey)
	assert.False(t, cfg.UsesMemoryStore())
}

func TestLoadConfigProductionNeedsSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestValidateConfigStorageNeedsPublicURL(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Environment: EnvDevelopment, JwtSecretKey: "0123456789abcdef"},
		Mongo:     MongoConfig{URI: MemoryStore, FetchConcurrency: 2},
		AI:        DefaultAIConfig(),
		RateLimit: RateLimitConfig{SubmissionsPerWindow: 1, WindowSeconds: 1},
		Storage: StorageConfig{
			Bucket:          "uploads",
			AccessKeyID:     "id",
			SecretAccessKey: "secret",
			MaxUploadBytes:  1024,
		},
	}

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_PUBLIC_URL")

	cfg.Storage.PublicURL = "https://cdn.example.com"
	assert.NoError(t, validateConfig(cfg))
}

func TestTrustedProxyPrefixes(t *testing.T) {
	cfg := ServerConfig{TrustedProxies: "10.0.0.0/8, 192.0.2.10 ,::1"}
	prefixes, err := cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.10/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())

	empty, err := ServerConfig{}.TrustedProxyPrefixes()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadConfigRejectsBadTrustedProxy(t *testing.T) {
	t.Setenv("MONGO_URI", "memory")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,not-an-ip")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trusted proxy")
}
