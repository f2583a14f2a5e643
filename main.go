package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatcal/chatcal/internal/config"
	"github.com/chatcal/chatcal/internal/database"
	"github.com/chatcal/chatcal/internal/gcal"
	"github.com/chatcal/chatcal/internal/llm"
	"github.com/chatcal/chatcal/internal/server"
	"github.com/chatcal/chatcal/internal/timeutil"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.LoadFromEnv()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	completer := llm.NewClient(cfg.OllamaURL, cfg.Model, llm.SamplingConfig{
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
		TopK:        cfg.TopK,
		MaxTokens:   cfg.MaxTokens,
	})

	gcalClient, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create calendar client")
	}
	if !gcalClient.IsAuthenticated() {
		log.Warn().Str("auth_url", gcalClient.GetAuthURL()).
			Msg("calendar client not authenticated; visit the auth URL to connect")
	}

	// Unset timezone means the system's local one, matching what the user's
	// calendar most likely uses.
	loc := time.Local
	if cfg.Timezone != "" {
		var fallback bool
		loc, fallback = timeutil.ResolveLocation(cfg.Timezone)
		if fallback {
			log.Warn().Str("timezone", cfg.Timezone).Msg("unknown timezone, using UTC")
		}
	}

	srv := server.New(server.Config{
		DB:            db,
		Completer:     completer,
		Calendar:      gcalClient,
		Auth:          gcalClient,
		Port:          cfg.HTTPPort,
		WindowSize:    cfg.HistoryWindow,
		LookaheadDays: cfg.DeleteLookaheadDays,
		Location:      loc,
		Logger:        log,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
}
