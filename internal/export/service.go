// Package export produces the XLSX workbook for one stored match.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/repository"
)

// Service is a tiny façade over the match repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.MatchRepository
	logger *slog.Logger
}

func NewService(repo repository.MatchRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportMatchXLSX returns a workbook with one sheet per stat family plus a
// suggested download filename.
func (s *Service) ExportMatchXLSX(ctx context.Context, matchID int64) ([]byte, string, error) {
	start := time.Now()

	m, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, "", fmt.Errorf("load match: %w", err)
	}

	f := excelize.NewFile()
	if err := writeMatchSheet(f, m); err != nil {
		return nil, "", err
	}
	if err := writePlayersSheet(f, m); err != nil {
		return nil, "", err
	}
	if err := writeTeamsSheet(f, m); err != nil {
		return nil, "", err
	}
	if err := writePeriodsSheet(f, m); err != nil {
		return nil, "", err
	}
	if err := writeLineupsSheet(f, m); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("xlsx write: %w", err)
	}

	name := exportFilename(m)
	s.logger.Info("export.ok",
		"match_id", matchID,
		"filename", name,
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), name, nil
}

func exportFilename(m *entity.Match) string {
	clean := func(s string) string {
		s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
		return strings.ReplaceAll(s, "/", "-")
	}
	date := m.Date
	if date == "" {
		date = "match"
	}
	return fmt.Sprintf("%s_%s_vs_%s.xlsx", date, clean(m.HomeTeam), clean(m.AwayTeam))
}

// sheetWriter fills one sheet row by row, carrying the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func newSheet(f *excelize.File, name string) (*sheetWriter, error) {
	if index, _ := f.GetSheetIndex(name); index == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}
	return &sheetWriter{f: f, sheet: name}, nil
}

func (w *sheetWriter) writeRow(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			w.err = err
			return
		}
	}
}

func writeMatchSheet(f *excelize.File, m *entity.Match) error {
	const sheet = "Match"
	// reuse the default sheet so the workbook opens on the summary
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: sheet}

	w.writeRow("Date", m.Date)
	w.writeRow("Heure", m.Time)
	w.writeRow("Compétition", m.Competition)
	w.writeRow("Équipe domicile", m.HomeTeam)
	w.writeRow("Équipe extérieur", m.AwayTeam)
	w.writeRow("Score", scoreString(m.HomeScore, m.AwayScore))
	w.writeRow("Quart-temps", quartersString(m))
	w.writeRow("Lieu", m.Venue)
	w.writeRow("Ville", m.City)
	w.writeRow("Affluence", opt(m.Attendance))
	w.writeRow("Arbitres", m.Officials)

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 36)
	return w.err
}

func writePlayersSheet(f *excelize.File, m *entity.Match) error {
	w, err := newSheet(f, "Joueuses")
	if err != nil {
		return err
	}
	w.writeRow("Équipe", "No", "Nom", "5 de départ", "Min", "Pts",
		"Tirs", "2pts", "3pts", "LF", "2pts Int", "2pts Ext", "Dunks",
		"RO", "RD", "TOT", "PD", "IN", "BP", "CT", "CS", "FC", "FP",
		"+/-", "Éval")
	for _, p := range m.Players {
		w.writeRow(p.Team, p.Number, p.Name, starter(p.Starter), p.Minutes, p.Points,
			shots(p.FieldGoals), shots(p.TwoPoint), shots(p.ThreePoint), shots(p.FreeThrows),
			shotsPtr(p.TwoPointInterior), shotsPtr(p.TwoPointExterior), opt(p.Dunks),
			p.OffRebounds, p.DefRebounds, p.TotRebounds,
			p.Assists, p.Steals, p.Turnovers,
			p.Blocks, p.BlocksReceived, p.FoulsCommitted, p.FoulsDrawn,
			p.PlusMinus, p.Evaluation)
	}
	_ = f.SetColWidth(w.sheet, "A", "A", 18)
	_ = f.SetColWidth(w.sheet, "C", "C", 24)
	return w.err
}

func writeTeamsSheet(f *excelize.File, m *entity.Match) error {
	w, err := newSheet(f, "Equipes")
	if err != nil {
		return err
	}
	w.writeRow("Équipe", "Pts", "Tirs", "2pts", "3pts", "LF",
		"RO", "RD", "TOT", "PD", "IN", "BP", "CT", "FC", "Éval")
	for _, t := range m.Teams {
		w.writeRow(t.Team, t.Points,
			shots(t.FieldGoals), shots(t.TwoPoint), shots(t.ThreePoint), shots(t.FreeThrows),
			t.OffRebounds, t.DefRebounds, t.TotRebounds,
			t.Assists, t.Steals, t.Turnovers,
			t.Blocks, t.FoulsCommitted, t.Evaluation)
	}
	_ = f.SetColWidth(w.sheet, "A", "A", 18)
	return w.err
}

func writePeriodsSheet(f *excelize.File, m *entity.Match) error {
	w, err := newSheet(f, "Périodes")
	if err != nil {
		return err
	}
	w.writeRow("Équipe", "Période", "Pts", "Tirs", "2pts", "3pts", "LF",
		"RO", "RD", "TOT", "PD", "IN", "BP")
	for _, p := range m.Periods {
		w.writeRow(p.Team, p.Period, p.Points,
			shots(p.FieldGoals), shots(p.TwoPoint), shots(p.ThreePoint), shots(p.FreeThrows),
			p.OffRebounds, p.DefRebounds, p.TotRebounds,
			p.Assists, p.Steals, p.Turnovers)
	}
	_ = f.SetColWidth(w.sheet, "A", "A", 18)
	return w.err
}

func writeLineupsSheet(f *excelize.File, m *entity.Match) error {
	w, err := newSheet(f, "5 en jeu")
	if err != nil {
		return err
	}
	w.writeRow("Équipe", "Joueuses", "Durée (s)", "Pts marqués", "Pts encaissés",
		"+/-", "Pts/min", "Rebonds", "PD", "IN", "BP")
	for _, l := range m.Lineups {
		w.writeRow(l.Team, strings.Join(l.Players, " / "), l.DurationSeconds,
			l.PointsFor, l.PointsAgainst, l.Net, l.PointsPerMinute,
			l.Rebounds, l.Assists, l.Steals, l.Turnovers)
	}
	_ = f.SetColWidth(w.sheet, "A", "A", 18)
	_ = f.SetColWidth(w.sheet, "B", "B", 60)
	return w.err
}

func shots(s entity.ShotLine) string {
	return fmt.Sprintf("%d/%d", s.Made, s.Attempted)
}

func shotsPtr(s *entity.ShotLine) any {
	if s == nil {
		return nil
	}
	return shots(*s)
}

func scoreString(home, away *int) string {
	if home == nil || away == nil {
		return ""
	}
	return fmt.Sprintf("%d - %d", *home, *away)
}

func quartersString(m *entity.Match) string {
	pairs := [][2]*int{
		{m.Q1Home, m.Q1Away}, {m.Q2Home, m.Q2Away},
		{m.Q3Home, m.Q3Away}, {m.Q4Home, m.Q4Away},
	}
	var parts []string
	for _, p := range pairs {
		if p[0] == nil || p[1] == nil {
			return ""
		}
		parts = append(parts, fmt.Sprintf("%d-%d", *p[0], *p[1]))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func starter(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func opt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
