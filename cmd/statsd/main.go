package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/docsource"
	"github.com/courtdata/stats-tracker/internal/export"
	"github.com/courtdata/stats-tracker/internal/extract"
	"github.com/courtdata/stats-tracker/internal/merge"
	"github.com/courtdata/stats-tracker/internal/parse"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/roster"
	"github.com/courtdata/stats-tracker/internal/server"
	"github.com/courtdata/stats-tracker/internal/service"
	"github.com/courtdata/stats-tracker/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.EnsureSchema(ctx, db, cfg.Database.DSN, logger); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	blobs, err := storage.NewFSStore(cfg.Storage.BlobDir, logger)
	if err != nil {
		logger.Error("failed to open blob store", "dir", cfg.Storage.BlobDir, "error", err)
		os.Exit(1)
	}

	teams := parse.TeamRules{Substring: cfg.Club.MatchSubstring, Canonical: cfg.Club.Name}
	names := parse.NameRules{CompoundSurnames: cfg.Club.CompoundSurnames}

	var clubRoster roster.Lookup
	if cfg.Club.RosterFile != "" {
		set, err := roster.LoadFile(cfg.Club.RosterFile)
		if err != nil {
			logger.Error("failed to load roster", "file", cfg.Club.RosterFile, "error", err)
			os.Exit(1)
		}
		clubRoster = set
		logger.Info("roster loaded", "file", cfg.Club.RosterFile, "players", len(set))
	}

	repo := repository.NewMatchRepository(db, cfg.Database.DSN, logger)
	reader := docsource.NewReader(docsource.Config{}, logger)
	extractor := extract.New(extract.Config{
		Teams:         teams,
		Names:         names,
		Roster:        clubRoster,
		OpponentLabel: cfg.Club.OpponentLabel,
	}, logger)
	merger := merge.New(teams, logger)
	upload := service.NewUploadService(reader, extractor, merger, repo, blobs, logger)
	exporter := export.NewService(repo, logger)

	router := server.NewRouter(server.Deps{
		Upload:   upload,
		Repo:     repo,
		Exporter: exporter,
		DB:       db,
		Cfg:      cfg.Server,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
