package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"svw.info/mathtiles/corpusdata"
	httpadapter "svw.info/mathtiles/internal/adapters/http"
	"svw.info/mathtiles/internal/config"
	"svw.info/mathtiles/internal/corpus"
	"svw.info/mathtiles/internal/generator"
	"svw.info/mathtiles/internal/hint"
	"svw.info/mathtiles/internal/infrastructure/storage"
	"svw.info/mathtiles/internal/ports"
	"svw.info/mathtiles/internal/usecase"
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// requestLogger logs method, path, status, bytes, and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	levelStr := flag.String("log-level", "", "debug|info|warn|error (overrides config)")
	corpusDB := flag.String("corpus-db", "", "SQLite corpus path; empty serves the embedded corpus")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *levelStr != "" {
		cfg.LogLevel = *levelStr
	}
	if *corpusDB != "" {
		cfg.CorpusDB = *corpusDB
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	_ = os.MkdirAll(cfg.DataDir, 0o755)

	// Corpus: embedded FS directly, or an SQLite store seeded from it.
	var idx ports.Index = corpus.NewFSIndex(corpusdata.FS())
	if cfg.CorpusDB != "" {
		store, err := corpus.OpenSQLite(cfg.CorpusDB)
		if err != nil {
			logger.Error("corpus db", "err", err)
			os.Exit(1)
		}
		defer store.Close()
		if err := store.ImportFS(context.Background(), corpusdata.FS()); err != nil {
			logger.Error("corpus import", "err", err)
			os.Exit(1)
		}
		idx = store
	}

	// Wire providers → use cases → HTTP adapter
	g := generator.NewCorpusGenerator(idx)
	st := storage.NewFS(cfg.DataDir)
	uc := usecase.NewService(idx, g, hint.NewSample(), st)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	httpadapter.New(uc).Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", cfg.Addr, "data", cfg.DataDir, "corpus_db", cfg.CorpusDB)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
