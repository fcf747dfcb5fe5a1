package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtdata/stats-tracker/internal/entity"
)

func TestClassifyContentRules(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		filename string
		want     entity.DocumentType
	}{
		{
			name: "box score by title",
			text: "FIBA Box Score\nCSMF PARIS 72 – 65 US ARGENTEUIL",
			want: entity.DocBoxScore,
		},
		{
			name: "detailed box by title",
			text: "Boxscore Détaillée\nPériode 1",
			want: entity.DocDetailedBox,
		},
		{
			name: "detailed box by column fingerprint",
			text: "Stats du match O/E P/M rebonds",
			want: entity.DocDetailedBox,
		},
		{
			name: "lineup analysis by title",
			text: "Analyse des 5 en jeu",
			want: entity.DocLineupAnalysis,
		},
		{
			name: "player shot chart",
			text: "Evaluation Joueur - n°7",
			want: entity.DocPlayerShotChart,
		},
		{
			name: "shot zones",
			text: "Zones de Tirs",
			want: entity.DocShotZones,
		},
		{
			name: "shot positions",
			text: "Position des Tirs",
			want: entity.DocShotPositions,
		},
		{
			name: "stats sheet by column pair",
			text: "Min PTS Tirs 2 pts Ext % 2 pts Int % Du LF",
			want: entity.DocStatsSheet,
		},
		{
			name: "box score title wins over stats sheet columns",
			text: "FIBA Box Score 2 pts Ext 2 pts Int",
			want: entity.DocBoxScore,
		},
		{
			name:     "content beats filename",
			text:     "FIBA Box Score",
			filename: "Analyse_des_5_en_jeu.pdf",
			want:     entity.DocBoxScore,
		},
		{
			name:     "unknown",
			text:     "random newsletter",
			filename: "newsletter.pdf",
			want:     entity.DocUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, tt.filename))
		})
	}
}

func TestClassifyFilenameFallback(t *testing.T) {
	tests := []struct {
		filename string
		want     entity.DocumentType
	}{
		{"FIBA_Box_Score_J12.pdf", entity.DocBoxScore},
		{"Analyse_des_5_en_jeu.pdf", entity.DocLineupAnalysis},
		{"Boxscore_Détaillée.pdf", entity.DocDetailedBox},
		{"boxscore_detaillee.xlsx", entity.DocDetailedBoxWorkbook},
		{"Statistiques_détaillées.pdf", entity.DocStatsSheet},
		{"feuille_de_marque.pdf", entity.DocStatsSheet},
		{"Evaluation_Joueuse_7.pdf", entity.DocPlayerShotChart},
		{"zones_de_tirs.pdf", entity.DocShotZones},
		{"position_des_tirs.pdf", entity.DocShotPositions},
		{"notes.txt", entity.DocUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify("", tt.filename), "filename %q", tt.filename)
	}
}

// Classification must be a pure function of its inputs.
func TestClassifyDeterminism(t *testing.T) {
	text := "Boxscore Détaillée O/E P/M"
	name := "export.pdf"
	first := Classify(text, name)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text, name))
	}
}

func TestForFileWorkbookVariant(t *testing.T) {
	text := "Boxscore Détaillée"
	assert.Equal(t, entity.DocDetailedBoxWorkbook, ForFile(text, "export.xlsx"))
	assert.Equal(t, entity.DocDetailedBox, ForFile(text, "export.pdf"))
}
