package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/docsource"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/export"
	"github.com/courtdata/stats-tracker/internal/extract"
	"github.com/courtdata/stats-tracker/internal/interchange"
	"github.com/courtdata/stats-tracker/internal/merge"
	"github.com/courtdata/stats-tracker/internal/parse"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/roster"
	"github.com/courtdata/stats-tracker/internal/service"
)

// printError prints to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		inmem = flag.Bool("inmem", false, "use an in-memory SQLite database instead of DB_URL")
		dir   = flag.String("dir", "", "directory holding one match's documents (required)")
		out   = flag.String("out", "", "output JSON file path (defaults to <dir>/../match.json)")
		xlsx  = flag.String("xlsx", "", "also write the match workbook to this path")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "match.json")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()
	if *inmem {
		cfg.Database.DSN = ":memory:"
		cfg.Database.MaxConns = 1
	}
	if cfg.Database.DSN == "" {
		printError("Error: DB_URL is required unless --inmem is set\n")
		os.Exit(1)
	}

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

	teams := parse.TeamRules{Substring: cfg.Club.MatchSubstring, Canonical: cfg.Club.Name}
	var clubRoster roster.Lookup
	if cfg.Club.RosterFile != "" {
		set, err := roster.LoadFile(cfg.Club.RosterFile)
		if err != nil {
			logger.Error("failed to load roster", "file", cfg.Club.RosterFile, "error", err)
			os.Exit(1)
		}
		clubRoster = set
	}

	repo := repository.NewMatchRepository(db, cfg.Database.DSN, logger)
	reader := docsource.NewReader(docsource.Config{}, logger)
	extractor := extract.New(extract.Config{
		Teams:         teams,
		Names:         parse.NameRules{CompoundSurnames: cfg.Club.CompoundSurnames},
		Roster:        clubRoster,
		OpponentLabel: cfg.Club.OpponentLabel,
	}, logger)
	upload := service.NewUploadService(reader, extractor, merge.New(teams, logger), repo, nil, logger)

	files, closeFiles, err := batchFiles(*dir)
	if err != nil {
		logger.Error("failed to read directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	defer closeFiles()
	if len(files) == 0 {
		printError("Error: no .pdf or .xlsx files under %s\n", *dir)
		os.Exit(1)
	}

	logger.Info("processing batch", "dir", *dir, "files", len(files))
	result, err := upload.ProcessBatch(ctx, files)
	if err != nil {
		logger.Error("batch rejected", "error", err)
		os.Exit(1)
	}

	m, err := repo.GetMatch(ctx, result.MatchID)
	if err != nil {
		logger.Error("failed to reload match", "match_id", result.MatchID, "error", err)
		os.Exit(1)
	}

	jsonFile, err := os.Create(*out)
	if err != nil {
		logger.Error("failed to create output file", "path", *out, "error", err)
		os.Exit(1)
	}
	encodeErr := interchange.Encode(jsonFile, []entity.Match{*m})
	if cerr := jsonFile.Close(); encodeErr == nil {
		encodeErr = cerr
	}
	if encodeErr != nil {
		logger.Error("failed to write JSON", "path", *out, "error", encodeErr)
		os.Exit(1)
	}

	if *xlsx != "" {
		raw, _, err := export.NewService(repo, logger).ExportMatchXLSX(ctx, result.MatchID)
		if err != nil {
			logger.Error("failed to export workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsx, raw, 0o644); err != nil {
			logger.Error("failed to write workbook", "path", *xlsx, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch complete",
		"match_id", result.MatchID,
		"home", result.HomeTeam,
		"away", result.AwayTeam,
		"documents", len(result.Documents),
		"json", *out,
	)
}

// batchFiles opens the match documents under dir in stable order. The
// returned func closes them all.
func batchFiles(dir string) ([]service.UploadFile, func(), error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".pdf" || ext == ".xlsx" || ext == ".xlsm" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make([]service.UploadFile, 0, len(names))
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{Filename: name, Content: f})
	}
	return files, closeAll, nil
}
