package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every runtime setting the application reads from the
// environment. A .env file in the working directory is loaded first when
// present.
type Config struct {
	Port                 string
	DataDir              string
	DBPath               string
	StorageBackend       string // "sqlite", "file" or "memory"
	LogLevel             string
	FitnessTimeframeDays int
}

// LoadConfig reads the environment (optionally seeded from .env) and
// returns a Config with defaults applied for anything unset.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DataDir:              getEnv("DATA_DIR", "./data"),
		DBPath:               getEnv("DB_PATH", ""),
		StorageBackend:       getEnv("STORAGE_BACKEND", "sqlite"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		FitnessTimeframeDays: getEnvInt("FITNESS_TIMEFRAME_DAYS", 30),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = cfg.DataDir + "/soberlog.db"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithField("key", key).Warnf("Invalid integer %q, using default %d", value, fallback)
		return fallback
	}
	return n
}
