package config

import (
	"os"
	"time"
)

// parseEnv overlays values from the environment. The entrypoint loads a
// .env file via godotenv before this runs, so both real environment
// variables and .env entries land here.
//
//	STUDYAUTH_ADDRESS       HTTP bind address
//	STUDYAUTH_DATABASE_DSN  PostgreSQL DSN
//	STUDYAUTH_RESET_TTL     reset-code lifetime ("15m")
//	STUDYAUTH_CORS_ORIGIN   allowed CORS origin
func parseEnv(config *Config) {
	if v := os.Getenv("STUDYAUTH_ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("STUDYAUTH_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("STUDYAUTH_RESET_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ResetTokenValidity = d
		}
	}
	if v := os.Getenv("STUDYAUTH_CORS_ORIGIN"); v != "" {
		config.AllowedOrigin = v
	}
}
