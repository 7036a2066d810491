package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/readlog/internal/ai"
	"github.com/example/readlog/internal/config"
	"github.com/example/readlog/internal/database"
	"github.com/example/readlog/internal/notify"
	"github.com/example/readlog/internal/review"
	"github.com/example/readlog/internal/scheduler"
	"github.com/example/readlog/internal/server"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	if err := database.Connect(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	books := database.NewBookRepository()
	sessions := database.NewSessionRepository()
	words := database.NewWordRepository()
	logs := database.NewReviewLogRepository()
	stats := database.NewStatisticsRepository()

	reviews := review.NewService(words, logs, logger)

	var enricher *ai.Client
	if cfg.OpenAIKey != "" {
		enricher, err = ai.New(cfg.OpenAIKey)
		if err != nil {
			logger.Fatalf("Failed to create AI client: %v", err)
		}
	} else {
		logger.Info("OPENAI_API_KEY is not set, word enrichment is disabled")
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			logger.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		reminders := scheduler.New(notifier, words, cfg, logger)
		reminders.Start()
		defer reminders.Stop()
	} else {
		logger.Info("Telegram credentials are not set, reminders are disabled")
	}

	srv := server.New(server.RouterConfig{
		Books:    server.NewBookHandler(books),
		Sessions: server.NewSessionHandler(sessions, books),
		Words:    server.NewWordHandler(words, books, logs, enricher),
		Review:   server.NewReviewHandler(reviews),
		Stats:    server.NewStatsHandler(stats),
	})

	go func() {
		logger.Infof("HTTP server listening on port %d", cfg.HTTPPort)
		if err := srv.Run(cfg.HTTPPort); err != nil {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Infof("Received signal: %v, shutting down", sig)
}
