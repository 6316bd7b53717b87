package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/studyplanner/studyauth/internal/cli"
	"github.com/studyplanner/studyauth/internal/server/auth"
	"github.com/studyplanner/studyauth/internal/server/config"
	"github.com/studyplanner/studyauth/internal/server/shared/db"
)

// valueFlags are the config flags whose separate value must be skipped when
// extracting the positional command words.
var valueFlags = map[string]bool{
	"-a": true, "-d": true, "-r": true, "-o": true, "-c": true, "-config": true,
}

func positionalArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			if !strings.Contains(arg, "=") && valueFlags[arg] &&
				i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

func main() {

	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	var manager db.RepositoryManager
	var err error

	if cfg.DatabaseDSN == "memory" {
		manager = db.NewInMemoryRepositoryManager()
	} else {
		manager, err = db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("db init error: %v", err)
		}
	}
	defer func() { _ = manager.Close() }()

	if err := manager.RunMigrations(ctx); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	app := cli.NewApp(auth.NewService(manager.Accounts(), cfg), os.Stdin, os.Stdout)

	if err := app.Execute(ctx, positionalArgs(os.Args[1:])); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
