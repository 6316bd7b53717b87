package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/studyplanner/studyauth/internal/server"
	"github.com/studyplanner/studyauth/internal/server/config"
)

func main() {

	// Optional .env overlay for local development.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
