package initializers

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sandbox", cfg.GatewayEnv)
	assert.Equal(t, "2023-08-01", cfg.GatewayAPIVersion)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Origins())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("CORS_ORIGINS", "https://maxtech.in, https://admin.maxtech.in")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("GATEWAY_SKIP_WEBHOOK_VERIFY", "true")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.GatewaySkipWebhookVerify)
	assert.Equal(t, []string{"https://maxtech.in", "https://admin.maxtech.in"}, cfg.Origins())
}

func TestSkipVerifyIgnoredInProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GATEWAY_ENV", "production")
	t.Setenv("GATEWAY_SKIP_WEBHOOK_VERIFY", "true")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.False(t, cfg.GatewaySkipWebhookVerify)
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := OpenDatabase("oracle", "dsn")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
