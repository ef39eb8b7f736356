package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"zombiezen.com/go/log"
)

// Config stores runtime configuration loaded from environment
// variables.
type Config struct {
	Port                 string
	MetricsPort          int
	StoreBackend         string
	DatabaseURL          string
	SQLitePath           string
	RedisHostPort        string
	ReminderCron         string
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	LocalTimezone        *time.Location
}

// Load reads configuration values and prepares defaults where
// applicable.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Warnf(context.Background(), "config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:                 getenvDefault("PORT", "8080"),
		MetricsPort:          parseIntEnv("METRICS_PORT", 9090),
		StoreBackend:         getenvDefault("STORE_BACKEND", "sqlite"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SQLitePath:           getenvDefault("SQLITE_PATH", "policyminder.db"),
		RedisHostPort:        getenvDefault("REDIS_HOST_PORT", "localhost:6379"),
		ReminderCron:         getenvDefault("REMINDER_CRON", "0 8 * * *"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		LocalTimezone:        location,
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func parseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Warnf(context.Background(), "config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}
