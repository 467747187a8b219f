package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postDomain "github.com/uramit/channel-caption-bot/internal/modules/post/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("CHANNEL_USERNAME", "@MyChannel")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, postDomain.DialectMarkdownV2, cfg.Dialect)
	assert.Equal(t, 4, cfg.BroadcastConcurrency)
	assert.Equal(t, 25, cfg.BroadcastRatePerSec)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, AppEnvProduction, cfg.AppEnv)
}

func TestLoad_Dialect(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("CHANNEL_USERNAME", "@MyChannel")

	t.Run("valid dialect is applied", func(t *testing.T) {
		t.Setenv("DIALECT", "plain")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, postDomain.DialectPlain, cfg.Dialect)
	})

	t.Run("invalid dialect fails loading", func(t *testing.T) {
		t.Setenv("DIALECT", "bogus")

		cfg, err := Load()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "bogus")
	})
}
