package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Affirmation tones understood by the check-in and briefing flows.
const (
	ToneGentle   = "gentle"
	ToneBalanced = "balanced"
	ToneFirm     = "firm"
)

type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Discord
	DiscordToken      string
	ReminderChannelID string

	// Database
	DBPath           string
	MaxDBConnections int

	// Scheduling
	Timezone             string
	StreakUpdateInterval int // minutes between streak board refreshes
	AffirmationTone      string

	// External services (all optional; empty disables the integration)
	WeatherAPIURL    string
	GeocodingAPIURL  string
	GoogleMapsAPIKey string
	OpenAIAPIKey     string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppEnv:   envString("APP_ENV", "development"),
		LogLevel: envString("LOG_LEVEL", "info"),

		DiscordToken:      envRequired("DISCORD_TOKEN"),
		ReminderChannelID: envString("REMINDER_CHANNEL_ID", ""),

		DBPath:           envString("DB_PATH", "./data/gentle_habits.db"),
		MaxDBConnections: envInt("MAX_DB_CONNECTIONS", 5),

		Timezone:             envString("TIMEZONE", "UTC"),
		StreakUpdateInterval: envInt("STREAK_UPDATE_INTERVAL", 15),
		AffirmationTone:      envTone("AFFIRMATION_TONE", ToneGentle),

		WeatherAPIURL:    envString("WEATHER_API_URL", "https://api.open-meteo.com"),
		GeocodingAPIURL:  envString("GEOCODING_API_URL", "https://nominatim.openstreetmap.org"),
		GoogleMapsAPIKey: envString("GOOGLE_MAPS_API_KEY", ""),
		OpenAIAPIKey:     envString("OPENAI_API_KEY", ""),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.ReminderChannelID == "" {
		slog.Warn("REMINDER_CHANNEL_ID not set, reminders and dashboards are disabled")
	}
	if cfg.MaxDBConnections < 1 {
		slog.Warn("config invalid pool size, using default", "key", "MAX_DB_CONNECTIONS", "default", 5)
		cfg.MaxDBConnections = 5
	}
	if cfg.StreakUpdateInterval < 1 {
		slog.Warn("config invalid interval, using default", "key", "STREAK_UPDATE_INTERVAL", "default", 15)
		cfg.StreakUpdateInterval = 15
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envTone(key, def string) string {
	v := envString(key, def)
	switch v {
	case ToneGentle, ToneBalanced, ToneFirm:
		return v
	}
	slog.Warn("config invalid affirmation tone, using default", "key", key, "value", v, "default", def)
	return def
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
