package extract

import (
	"log/slog"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
	"github.com/courtdata/stats-tracker/internal/roster"
)

// Config carries the club-specific knobs every extractor shares.
type Config struct {
	Teams parse.TeamRules
	Names parse.NameRules
	// Roster attributes anonymous table blocks to the tracked club.
	Roster roster.Lookup
	// OpponentLabel is the placeholder team for blocks the roster lookup
	// cannot claim. Defaults to "ADVERSAIRE".
	OpponentLabel string
}

// Extractor dispatches a classified document to its per-type extractor.
type Extractor struct {
	Logger *slog.Logger
	Cfg    Config
}

func New(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OpponentLabel == "" {
		cfg.OpponentLabel = "ADVERSAIRE"
	}
	return &Extractor{Logger: logger, Cfg: cfg}
}

// Extract runs the extractor for docType over the document's page text and
// table grids. Visual and unknown documents produce an ignored partial that
// only carries the source reference. Extract never fails on malformed rows;
// the report lists what was skipped.
func (e *Extractor) Extract(docType entity.DocumentType, pageText string, tables []Table) (*entity.PartialRecord, *Report) {
	var (
		rec *entity.PartialRecord
		rep *Report
	)
	switch docType {
	case entity.DocBoxScore:
		rec, rep = e.boxScore(pageText, tables)
	case entity.DocDetailedBox, entity.DocDetailedBoxWorkbook:
		rec, rep = e.detailedBox(docType, pageText, tables)
	case entity.DocLineupAnalysis:
		rec, rep = e.lineupAnalysis(pageText, tables)
	case entity.DocStatsSheet:
		rec, rep = e.statsSheet(pageText, tables)
	default:
		rec = &entity.PartialRecord{DocType: docType, Ignored: true}
		rep = &Report{}
	}
	rec.DocType = docType
	e.Logger.Info("extract.ok",
		"doc_type", string(docType),
		"players", len(rec.Players),
		"teams", len(rec.Teams),
		"periods", len(rec.Periods),
		"lineups", len(rec.Lineups),
		"skipped_rows", len(rep.Skipped),
	)
	return rec, rep
}

func (e *Extractor) teamName(s string) string   { return e.Cfg.Teams.TeamName(s) }
func (e *Extractor) playerName(s string) string { return e.Cfg.Names.PlayerName(s) }
