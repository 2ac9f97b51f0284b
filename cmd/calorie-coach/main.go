// cmd/calorie-coach/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"calorie-coach/internal/analyzer"
	"calorie-coach/internal/coach"
	"calorie-coach/internal/config"
	"calorie-coach/internal/server"
	"calorie-coach/internal/storage"
)

var (
	port    = flag.Int("port", 0, "Port for HTTP transport (default $PORT or 8011)")
	host    = flag.String("host", "", "Host address (default $HOST or 0.0.0.0)")
	address = flag.String("address", "", "Address (alias for host)")
	dbPath  = flag.String("db-path", "", "SQLite path for analysis history (empty disables history)")
	model   = flag.String("model", "", "Gemini model (default $GEMINI_MODEL or "+config.DefaultModel+")")
	envFile = flag.String("env-file", ".env", "Optional dotenv file")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("calorie-coach version 1.0.0")
		os.Exit(0)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	applyFlags(cfg)
	log.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var requester analyzer.Requester
	if err := cfg.Validate(); err != nil {
		// Metrics stay available; analysis requests report this error.
		log.WithError(err).Error("food analysis disabled")
	} else {
		gemini, err := analyzer.NewGeminiClient(ctx, analyzer.GeminiConfig{
			APIKey:   cfg.APIKey,
			Model:    cfg.Model,
			Style:    cfg.PromptStyle,
			Language: cfg.Language,
		})
		if err != nil {
			log.WithError(err).Fatal("failed to create analysis client")
		}
		requester = gemini
	}

	opts := []coach.Option{coach.WithLogger(log), coach.WithModel(cfg.Model)}
	var history server.History
	if cfg.DBPath != "" {
		stor, err := storage.NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize storage")
		}
		defer stor.Close()
		opts = append(opts, coach.WithRecorder(stor))
		history = stor
	}

	srv, err := server.NewCoachServer(cfg, coach.New(requester, opts...), history, log)
	if err != nil {
		log.WithError(err).Fatal("failed to create server")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Info("received shutdown signal")
	case err := <-errCh:
		log.WithError(err).Error("server error")
	}

	log.Info("shutting down")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}

// applyFlags lets explicit command-line flags override the environment.
func applyFlags(cfg *config.Config) {
	if *host != "" {
		cfg.Host = *host
	}
	if *address != "" {
		cfg.Host = *address
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *model != "" {
		cfg.Model = *model
	}
}
