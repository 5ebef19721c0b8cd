package app

import (
	"os"
	"strconv"

	// Load a .env file from the working directory, if present, before any
	// variable is read.
	_ "github.com/joho/godotenv/autoload"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./doorman.db)
	DatabaseURL    string // Required for postgres: lib/pq connection URL
	AutoMigrate    bool   // Optional: apply pending migrations on start (default: true)
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	SettingsFile   string // Optional: YAML feature switches (default: ./settings.yml, missing file means defaults)
	Env            string // Environment (dev, staging, prod) (default: dev)
	LogLevel       string // Log level (debug, info, warn, error) (default: info)
	LogFormat      string // Log format (json, text) (default: json)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: getEnvOrDefault("DOORMAN_DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:   getEnvOrDefault("DOORMAN_DATABASE_FILE", "doorman.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AutoMigrate:    getEnvBoolOrDefault("DOORMAN_AUTO_MIGRATE", true),
		PepperFile:     getEnvOrDefault("DOORMAN_PEPPER_FILE", "pepper"),
		SettingsFile:   getEnvOrDefault("DOORMAN_SETTINGS_FILE", "settings.yml"),
		Env:            getEnvOrDefault("ENV", "dev"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}
