package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Authentication
	Secret     string
	SecretHash string

	// Persistence
	BackupFile string

	// Output
	ColorOutput bool
}

func LoadConfig() *Config {
	return &Config{
		// Auth. QUEUE_SECRET_HASH, when set, takes precedence over the
		// plain secret and must be a bcrypt hash.
		Secret:     getEnv("QUEUE_SECRET", "53rocks"),
		SecretHash: getEnv("QUEUE_SECRET_HASH", ""),

		// Persistence
		BackupFile: getEnv("QUEUE_BACKUP_FILE", "backup.txt"),

		// Output
		ColorOutput: getEnvAsBool("QUEUE_COLOR", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
