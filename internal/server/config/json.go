package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/studyplanner/studyauth/internal/flagx"
	"github.com/studyplanner/studyauth/internal/timex"
)

// JsonConfig is the file-facing DTO. Duration fields use timex.Duration so
// both "15m" strings and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddr       string         `json:"endpoint_addr"`
	DatabaseDSN        string         `json:"database_dsn"`
	ResetTokenValidity timex.Duration `json:"reset_token_validity"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	AllowedOrigin      string         `json:"allowed_origin"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// A missing flag means nothing is loaded; an unreadable or invalid file is
// a startup fault and panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.ResetTokenValidity != 0 {
		config.ResetTokenValidity = time.Duration(c.ResetTokenValidity)
	}
	if c.ShutdownTimeout != 0 {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeout)
	}
	if c.AllowedOrigin != "" {
		config.AllowedOrigin = c.AllowedOrigin
	}
}
