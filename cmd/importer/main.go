package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	var (
		amount  = flag.Int("amount", 20, "Questions to request from each source")
		sources = flag.String("sources", app.SourceOpenTDB, "Comma separated sources: opentdb, triviaapi")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	stats, err := app.RunImport(ctx, cfg, *amount, strings.Split(*sources, ","))
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Int("fetched", stats.Fetched).
		Int("imported", stats.Imported).
		Int("duplicate", stats.Duplicate).
		Int("unmapped", stats.Unmapped).
		Int("failed", stats.Failed).
		Msg("import complete")
}
