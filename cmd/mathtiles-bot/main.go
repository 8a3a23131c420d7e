package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"svw.info/mathtiles/corpusdata"
	"svw.info/mathtiles/internal/adapters/telegram"
	"svw.info/mathtiles/internal/config"
	"svw.info/mathtiles/internal/corpus"
	"svw.info/mathtiles/internal/generator"
	"svw.info/mathtiles/internal/hint"
	"svw.info/mathtiles/internal/infrastructure/storage"
	"svw.info/mathtiles/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	dbPath := flag.String("db", "./data/mathtiles.db", "SQLite path for corpus and scoreboard")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		logger.Error("BOT_TOKEN environment variable is required")
		os.Exit(1)
	}

	_ = os.MkdirAll("./data", 0o755)
	store, err := corpus.OpenSQLite(*dbPath)
	if err != nil {
		logger.Error("corpus db", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.ImportFS(ctx, corpusdata.FS()); err != nil {
		logger.Error("corpus import", "err", err)
		os.Exit(1)
	}
	stats, err := storage.NewStatsDB(store.DB())
	if err != nil {
		logger.Error("stats db", "err", err)
		os.Exit(1)
	}

	uc := usecase.NewService(store, generator.NewCorpusGenerator(store), hint.NewSample(), nil)

	bot, err := telegram.New(token, uc, stats, logger, cfg.DefaultK)
	if err != nil {
		logger.Error("telegram", "err", err)
		os.Exit(1)
	}
	logger.Info("bot starting", "db", *dbPath, "default_k", cfg.DefaultK)
	bot.Start(ctx)
}
