// Package classify assigns a document type to an uploaded statistics file.
//
// Classification is a pure function of the extracted text of the first pages
// and the original filename. Content rules run first in a fixed priority
// order: literal document titles are the most reliable signal, structural
// column-header fingerprints cover exports that omit the title, and the
// filename is only a last resort because it is user-controlled.
package classify

import (
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
)

// Classify returns the document type for the given page text and filename,
// or entity.DocUnknown when nothing matches.
func Classify(text, filename string) entity.DocumentType {
	// Title containment checks, most specific first.
	if strings.Contains(text, "FIBA Box Score") {
		return entity.DocBoxScore
	}
	// The detailed box title varies between exports; the O/E and P/M column
	// headers only co-occur in that layout.
	if strings.Contains(text, "Boxscore Détaillée") ||
		(strings.Contains(text, "O/E") && strings.Contains(text, "P/M")) {
		return entity.DocDetailedBox
	}
	if strings.Contains(text, "Analyse des 5 en jeu") || strings.Contains(text, "5 en jeu") {
		return entity.DocLineupAnalysis
	}
	if strings.Contains(text, "Evaluation Joueur") {
		return entity.DocPlayerShotChart
	}
	if strings.Contains(text, "Zones de Tirs") {
		return entity.DocShotZones
	}
	if strings.Contains(text, "Position des Tirs") {
		return entity.DocShotPositions
	}
	// The stats sheet has no stable title; its interior/exterior two-point
	// columns are unique to it once the detailed box is ruled out above.
	if strings.Contains(text, "2 pts Ext") && strings.Contains(text, "2 pts Int") {
		return entity.DocStatsSheet
	}

	return classifyFilename(filename)
}

// classifyFilename applies substring heuristics in the same category order
// as the content rules.
func classifyFilename(filename string) entity.DocumentType {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "fiba") && strings.Contains(name, "box"):
		return entity.DocBoxScore
	case strings.Contains(name, "analyse") && strings.Contains(name, "5"):
		return entity.DocLineupAnalysis
	case strings.Contains(name, "boxscore") &&
		(strings.Contains(name, "détaillé") || strings.Contains(name, "detaille")):
		if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
			return entity.DocDetailedBoxWorkbook
		}
		return entity.DocDetailedBox
	case strings.Contains(name, "statistiques") || strings.Contains(name, "feuille"):
		return entity.DocStatsSheet
	case strings.Contains(name, "evaluation"):
		return entity.DocPlayerShotChart
	case strings.Contains(name, "zone") && strings.Contains(name, "tir"):
		return entity.DocShotZones
	case strings.Contains(name, "position") && strings.Contains(name, "tir"):
		return entity.DocShotPositions
	}
	return entity.DocUnknown
}

// ForFile resolves the workbook variant of the detailed box: the content
// rules cannot tell PDF from spreadsheet, only the file extension can.
func ForFile(text, filename string) entity.DocumentType {
	dt := Classify(text, filename)
	if dt == entity.DocDetailedBox {
		name := strings.ToLower(filename)
		if strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xls") {
			return entity.DocDetailedBoxWorkbook
		}
	}
	return dt
}
