package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT", "TELEGRAM_BOT_TOKEN",
		"TELEGRAM_CHAT_ID", "NOTIFICATION_START_HOUR", "NOTIFICATION_END_HOUR",
		"OPENAI_API_KEY",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 8, cfg.NotificationStartHour)
	assert.Equal(t, 22, cfg.NotificationEndHour)
	assert.Empty(t, cfg.TelegramToken)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("NOTIFICATION_START_HOUR", "10")
	t.Setenv("NOTIFICATION_END_HOUR", "20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
	assert.Equal(t, 10, cfg.NotificationStartHour)
	assert.Equal(t, 20, cfg.NotificationEndHour)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadChatID(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TELEGRAM_CHAT_ID", "abc")
	_, err := Load()
	assert.Error(t, err)
}

func TestOutOfRangeHoursKeepDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("NOTIFICATION_START_HOUR", "25")
	t.Setenv("NOTIFICATION_END_HOUR", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.NotificationStartHour)
	assert.Equal(t, 22, cfg.NotificationEndHour)
}
