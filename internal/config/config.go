package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration, read from environment variables.
// A .env file loaded by main can supply them during development.
type Config struct {
	// HTTPPort is the port the REST API listens on
	HTTPPort int
	// LogLevel is a logrus level name ("debug", "info", ...)
	LogLevel string
	// LogFormat is "text" or "json"
	LogFormat string
	// TelegramToken enables the reminder notifier when set
	TelegramToken string
	// TelegramChatID is the chat that receives reminders
	TelegramChatID int64
	// NotificationStartHour is the first hour reminders may be sent
	NotificationStartHour int
	// NotificationEndHour is the last hour reminders may be sent
	NotificationEndHour int
	// OpenAIKey enables the word enrichment endpoint when set
	OpenAIKey string
}

// Load reads configuration from the environment, applying defaults
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:              8080,
		LogLevel:              "info",
		LogFormat:             "text",
		TelegramToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		NotificationStartHour: 8,
		NotificationEndHour:   22,
		OpenAIKey:             os.Getenv("OPENAI_API_KEY"),
	}

	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid HTTP_PORT %q", v)
		}
		cfg.HTTPPort = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", v)
		}
		cfg.TelegramChatID = id
	}

	cfg.NotificationStartHour = hourFromEnv("NOTIFICATION_START_HOUR", cfg.NotificationStartHour)
	cfg.NotificationEndHour = hourFromEnv("NOTIFICATION_END_HOUR", cfg.NotificationEndHour)

	return cfg, nil
}

// hourFromEnv reads an hour-of-day variable, keeping the default when the
// value is missing or out of range.
func hourFromEnv(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	h, err := strconv.Atoi(v)
	if err != nil || h < 0 || h > 23 {
		return def
	}
	return h
}
