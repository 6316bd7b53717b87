package config

import (
	"flag"
	"os"
	"time"

	"github.com/studyplanner/studyauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN, or "memory"
//	-r int      reset-code validity, minutes
//	-o string   allowed CORS origin
//
// Arguments are first filtered to the flags handled here, so the config
// file flags (-c/-config) and flags of other components do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	resetValidity := fs.Int("r", int(config.ResetTokenValidity.Minutes()), "reset code validity (in minutes)")
	fs.StringVar(&config.AllowedOrigin, "o", config.AllowedOrigin, "allowed CORS origin")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ResetTokenValidity = time.Duration(*resetValidity) * time.Minute
}
