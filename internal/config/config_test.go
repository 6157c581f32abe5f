package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "EGP", cfg.StoreCurrency)
	assert.Equal(t, 12, cfg.CartTTLHours)
	assert.False(t, cfg.ApplyStockOnCommit)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APPLY_STOCK_ON_COMMIT", "true")
	t.Setenv("STORE_LANGUAGE", "ar")
	t.Setenv("CORS_ORIGINS", " http://till-1.local , ,http://till-2.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.ApplyStockOnCommit)
	assert.Equal(t, "ar", cfg.StoreLanguage)
	assert.Equal(t, []string{"http://till-1.local", "http://till-2.local"}, cfg.AllowedOrigins())
}
