package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("STUDYAUTH_ADDRESS", ":6060")
	t.Setenv("STUDYAUTH_DATABASE_DSN", "postgres://env/planner")
	t.Setenv("STUDYAUTH_RESET_TTL", "20m")
	t.Setenv("STUDYAUTH_CORS_ORIGIN", "https://env.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, "postgres://env/planner", cfg.DatabaseDSN)
	assert.Equal(t, 20*time.Minute, cfg.ResetTokenValidity)
	assert.Equal(t, "https://env.example", cfg.AllowedOrigin)
}

func Test_parseEnv_InvalidDurationIgnored(t *testing.T) {
	t.Setenv("STUDYAUTH_RESET_TTL", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 15*time.Minute, cfg.ResetTokenValidity)
}
