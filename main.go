package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"study-agent/config"
	"study-agent/corpus"
	"study-agent/dictionary"
	"study-agent/download"
	"study-agent/llmclient"
	"study-agent/pipeline"
	"study-agent/web"
	"study-agent/web/services"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Load config (which includes log level setting)
	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	store, err := corpus.Load(cfg.StudiesFile)
	if err != nil {
		logger.Fatal("Failed to load study corpus", zap.Error(err))
	}
	logger.Info("Study corpus loaded",
		zap.String("file", cfg.StudiesFile),
		zap.Int("studies", store.Len()))

	if err := store.LoadAbstracts(cfg.AbstractsFile); err != nil {
		logger.Warn("Abstracts unavailable; study details will omit them",
			zap.String("file", cfg.AbstractsFile),
			zap.Error(err))
	}

	// The mappings file is merged first: Merge never overwrites, so on a
	// colliding key the file's canonical form wins over the builtin one.
	dict := dictionary.New()
	if fileDict, err := dictionary.LoadFile(cfg.MappingsFile); err != nil {
		logger.Warn("Term mappings unavailable; continuing with builtin synonyms only",
			zap.String("file", cfg.MappingsFile),
			zap.Error(err))
	} else {
		dict.Merge(fileDict)
	}
	if cfg.UseBuiltinSynonyms {
		dict.Merge(dictionary.Builtin())
	}
	logger.Info("Term dictionary ready", zap.Int("entries", dict.Len()))

	urls, err := corpus.LoadURLTable(cfg.URLFile)
	if err != nil {
		logger.Warn("URL table unavailable; downloads disabled",
			zap.String("file", cfg.URLFile),
			zap.Error(err))
		urls = nil
	} else {
		logger.Info("URL table loaded", zap.Int("projects", urls.Len()))
	}

	llm := llmclient.New(cfg, logger)
	p := pipeline.New(cfg, llm, dict, store, logger)
	downloads := download.New(urls, cfg, logger)

	sessions := services.NewSessionService(cfg.SessionRetentionAge, logger)
	stopCleanup := sessions.StartCleanup(cfg.CleanupInterval)
	defer stopCleanup()

	webServer := web.NewServer(p, store, downloads, sessions, logger, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := webServer.Start(ctx, fmt.Sprintf(":%d", cfg.WebPort)); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
