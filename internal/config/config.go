package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Empty means no broker: sync notifications are dropped.
	AMQPURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCalendarID   string

	CronSecret string
	// Cron expression for unattended runs; empty disables the scheduler.
	SyncSchedule string

	SyncDaysBack  int
	SyncDaysAhead int
}

func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "cakebucket"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "cakebucket"),

		AMQPURL: getEnv("AMQP_URL", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCalendarID:   getEnv("GOOGLE_CALENDAR_ID", "primary"),

		CronSecret:   getEnv("CALENDAR_SYNC_CRON_SECRET", ""),
		SyncSchedule: getEnv("CALENDAR_SYNC_SCHEDULE", ""),

		SyncDaysBack:  getEnvInt("SYNC_DAYS_BACK", 30),
		SyncDaysAhead: getEnvInt("SYNC_DAYS_AHEAD", 365),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
