package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BerylCAtieno/nutrigen/internal/assets"
	"github.com/BerylCAtieno/nutrigen/internal/config"
	"github.com/BerylCAtieno/nutrigen/internal/gemini"
	"github.com/BerylCAtieno/nutrigen/internal/nutrition"
	"github.com/BerylCAtieno/nutrigen/internal/server"
	"github.com/BerylCAtieno/nutrigen/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, gemini.Options{
		Model:           cfg.GeminiModel,
		Temperature:     cfg.GeminiTemperature,
		TopP:            cfg.GeminiTopP,
		MaxOutputTokens: cfg.GeminiMaxOutputTokens,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}
	defer geminiClient.Close()

	sessions, err := session.NewStore(session.Options{
		Secret:    sessionSecret(cfg),
		Secure:    cfg.IsProduction(),
		CacheSize: cfg.SessionCacheSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}

	animation, err := assets.LoadAnimation(cfg.AnimationPath)
	if err != nil {
		log.Warn().Err(err).Msg("home page animation disabled")
	}

	srv := server.New(cfg, server.Deps{
		Assistant: nutrition.NewAssistant(geminiClient),
		Sessions:  sessions,
		Animation: animation,
	})

	done := make(chan struct{})
	go gracefulShutdown(srv, done)

	log.Info().Str("port", cfg.Port).Str("model", cfg.GeminiModel).Msg("NutriGen starting")
	log.Info().Msgf("Pages available at: http://localhost:%s/", cfg.Port)
	log.Info().Msgf("A2A endpoint available at: http://localhost:%s/a2a/nutrition", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed to start")
	}

	<-done
	log.Info().Msg("graceful shutdown complete")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

// sessionSecret falls back to a per-process key, which logs everyone out on
// restart.
func sessionSecret(cfg *config.Config) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	log.Warn().Msg("SESSION_SECRET not set, generating a per-process key")
	return securecookie.GenerateRandomKey(32)
}

func gracefulShutdown(srv *http.Server, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	close(done)
}
