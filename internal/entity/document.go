package entity

// DocumentType identifies one of the known statistics document layouts.
type DocumentType string

const (
	// DocBoxScore is the primary box score. Every batch needs one: it is the
	// only document that carries match identity (teams, date, final score).
	DocBoxScore DocumentType = "BOX_SCORE"
	// DocDetailedBox carries per-period stats and team advanced stats.
	DocDetailedBox DocumentType = "DETAILED_BOX"
	// DocDetailedBoxWorkbook is the spreadsheet export of the detailed box.
	DocDetailedBoxWorkbook DocumentType = "DETAILED_BOX_WORKBOOK"
	// DocLineupAnalysis carries five-player lineup stints.
	DocLineupAnalysis DocumentType = "LINEUP_ANALYSIS"
	// DocStatsSheet carries interior/exterior shot splits and advanced metrics.
	DocStatsSheet DocumentType = "STATS_SHEET"
	// DocPlayerShotChart is a per-player shot chart (visual, retained only).
	DocPlayerShotChart DocumentType = "PLAYER_SHOT_CHART"
	// DocShotZones and DocShotPositions are shot visuals (retained only).
	DocShotZones     DocumentType = "SHOT_ZONES"
	DocShotPositions DocumentType = "SHOT_POSITIONS"
	// DocUnknown is the fallback for unrecognized files.
	DocUnknown DocumentType = "UNKNOWN"
)

// Visual reports whether the document carries no tabular stats and is kept
// only as a source reference.
func (d DocumentType) Visual() bool {
	switch d {
	case DocPlayerShotChart, DocShotZones, DocShotPositions:
		return true
	}
	return false
}

// SourceRef points at an archived source document.
type SourceRef struct {
	Filename string       `json:"filename"`
	BlobURL  string       `json:"blob_url,omitempty"`
	DocType  DocumentType `json:"doc_type"`
}
