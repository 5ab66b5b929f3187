package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")

	cfg := Load()

	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "./data/gentle_habits.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.MaxDBConnections)
	assert.Equal(t, 15, cfg.StreakUpdateInterval)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, ToneGentle, cfg.AffirmationTone)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_DB_CONNECTIONS", "10")
	t.Setenv("TIMEZONE", "Australia/Hobart")
	t.Setenv("AFFIRMATION_TONE", "firm")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.MaxDBConnections)
	assert.Equal(t, "Australia/Hobart", cfg.Timezone)
	assert.Equal(t, ToneFirm, cfg.AffirmationTone)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("MAX_DB_CONNECTIONS", "not-a-number")
	t.Setenv("STREAK_UPDATE_INTERVAL", "-3")
	t.Setenv("AFFIRMATION_TONE", "aggressive")

	cfg := Load()

	assert.Equal(t, 5, cfg.MaxDBConnections)
	assert.Equal(t, 15, cfg.StreakUpdateInterval)
	assert.Equal(t, ToneGentle, cfg.AffirmationTone)
}
