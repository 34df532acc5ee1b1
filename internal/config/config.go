// Package config loads service settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the settings of the local studio service.
type Config struct {
	Port        string
	Environment string
	DBPath      string
	Model       string
	FontDir     string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AITimeout    time.Duration
}

// Load reads STUDIO_* variables, falling back to defaults.
func Load() *Config {
	return &Config{
		Port:         getEnv("STUDIO_PORT", "3000"),
		Environment:  getEnv("STUDIO_ENV", "development"),
		DBPath:       getEnv("STUDIO_DB_PATH", "data/studio.db"),
		Model:        getEnv("STUDIO_MODEL", ""),
		FontDir:      getEnv("STUDIO_FONT_DIR", ""),
		ReadTimeout:  getEnvAsSeconds("STUDIO_READ_TIMEOUT", 30),
		WriteTimeout: getEnvAsSeconds("STUDIO_WRITE_TIMEOUT", 180),
		AITimeout:    getEnvAsSeconds("STUDIO_AI_TIMEOUT", 120),
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Production reports whether STUDIO_ENV is "production".
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsSeconds(key string, defaultVal int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultVal)) * time.Second
}
