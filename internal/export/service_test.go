package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/repository"
)

type stubRepo struct {
	match *entity.Match
}

func (s *stubRepo) SaveMatch(context.Context, *entity.Match) (int64, error) { return 0, nil }
func (s *stubRepo) GetMatch(_ context.Context, id int64) (*entity.Match, error) {
	if s.match == nil || s.match.ID != id {
		return nil, common.ErrNotFound
	}
	return s.match, nil
}
func (s *stubRepo) ListMatches(context.Context) ([]*entity.Match, error) { return nil, nil }
func (s *stubRepo) LatestMatch(context.Context) (*entity.Match, error) {
	return nil, common.ErrNotFound
}
func (s *stubRepo) FindMatch(context.Context, string, string) (*entity.Match, error) {
	return nil, common.ErrNotFound
}
func (s *stubRepo) PlayerHistory(context.Context, string) ([]repository.PlayerGame, error) {
	return nil, nil
}
func (s *stubRepo) DeleteMatch(context.Context, int64) error { return nil }

var _ repository.MatchRepository = (*stubRepo)(nil)

func intp(v int) *int { return &v }

func exportedMatch() *entity.Match {
	return &entity.Match{
		ID:        42,
		Date:      "2023-10-14",
		HomeTeam:  "CSMF PARIS",
		AwayTeam:  "ALPHA BASKET",
		HomeScore: intp(72),
		AwayScore: intp(65),
		Q1Home:    intp(20), Q1Away: intp(15),
		Q2Home: intp(18), Q2Away: intp(17),
		Q3Home: intp(16), Q3Away: intp(18),
		Q4Home: intp(18), Q4Away: intp(15),
		Players: []entity.PlayerStat{
			{
				Team: "CSMF PARIS", Number: 7, Name: "SMITH", Starter: true,
				Minutes: 29, Points: 20,
				FieldGoals:       entity.ShotLine{Made: 8, Attempted: 15},
				TwoPointInterior: &entity.ShotLine{Made: 4, Attempted: 6},
			},
		},
		Teams: []entity.TeamStat{
			{Team: "CSMF PARIS", Points: 72},
			{Team: "ALPHA BASKET", Points: 65},
		},
		Periods: []entity.PeriodStat{
			{Team: "CSMF PARIS", Period: 1, Points: 20},
		},
		Lineups: []entity.LineupStint{
			{
				Team:            "CSMF PARIS",
				Players:         []string{"1-SMITH", "4-JONES", "7-LEE", "9-KO", "11-NOEL"},
				DurationSeconds: 330,
				PointsFor:       12, PointsAgainst: 8, Net: 4, PointsPerMinute: 2.4,
			},
		},
	}
}

func TestExportMatchXLSX(t *testing.T) {
	svc := NewService(&stubRepo{match: exportedMatch()},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	raw, name, err := svc.ExportMatchXLSX(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "2023-10-14_CSMF_PARIS_vs_ALPHA_BASKET.xlsx", name)

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer wb.Close()

	assert.ElementsMatch(t,
		[]string{"Match", "Joueuses", "Equipes", "Périodes", "5 en jeu"},
		wb.GetSheetList())

	score, err := wb.GetCellValue("Match", "B6")
	require.NoError(t, err)
	assert.Equal(t, "72 - 65", score)

	quarters, err := wb.GetCellValue("Match", "B7")
	require.NoError(t, err)
	assert.Equal(t, "(20-15, 18-17, 16-18, 18-15)", quarters)

	playerName, err := wb.GetCellValue("Joueuses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "SMITH", playerName)

	interior, err := wb.GetCellValue("Joueuses", "K2")
	require.NoError(t, err)
	assert.Equal(t, "4/6", interior)

	lineup, err := wb.GetCellValue("5 en jeu", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1-SMITH / 4-JONES / 7-LEE / 9-KO / 11-NOEL", lineup)
}

func TestExportMatchNotFound(t *testing.T) {
	svc := NewService(&stubRepo{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, _, err := svc.ExportMatchXLSX(context.Background(), 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
