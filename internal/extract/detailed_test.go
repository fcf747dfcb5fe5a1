package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
	"github.com/courtdata/stats-tracker/internal/roster"
)

func detailedConfig() Config {
	return Config{
		Teams:  parse.TeamRules{Substring: "CSMF", Canonical: "CSMF PARIS"},
		Roster: roster.FromNames([]string{"JACOB", "RIMBAUD", "SOYEZ"}...),
	}
}

func periodRow24(marker, pts, twoPt, threePt, fg, ft, ro, rd, tot, pd, in, bp string) []string {
	row := make([]string, 24)
	row[0], row[3] = marker, pts
	row[4], row[6], row[8], row[10] = twoPt, threePt, fg, ft
	row[16], row[17], row[18], row[19] = ro, rd, tot, pd
	row[21], row[23] = in, bp
	return row
}

func paddedRow(n int, cells map[int]string) []string {
	row := make([]string, n)
	for i, v := range cells {
		row[i] = v
	}
	return row
}

func TestDetailedWorkbookPeriodsAndAttribution(t *testing.T) {
	table := Table{
		paddedRow(39, map[int]string{0: "4", 1: "JACOB", 34: "Points dans la raquette", 38: "14"}),
		paddedRow(39, map[int]string{0: "5", 1: "RIMBAUD"}),
		paddedRow(39, map[int]string{0: totalsLabel}),
		periodRow24("Période 1", "18", "4/9", "2/5", "6/14", "3/4", "2", "5", "7", "4", "3", "2"),
		periodRow24("Période 2", "20", "5/8", "1/4", "6/12", "5/6", "1", "6", "7", "5", "2", "4"),
		paddedRow(39, map[int]string{0: "6", 1: "DUPONT"}),
		paddedRow(39, map[int]string{0: "7", 1: "MARTIN"}),
		paddedRow(39, map[int]string{0: "8", 1: "DURAND"}),
		paddedRow(39, map[int]string{0: "9", 1: "PETIT"}),
		paddedRow(39, map[int]string{0: "10", 1: "ROUX"}),
		paddedRow(39, map[int]string{0: "11", 1: "BLANC"}),
		paddedRow(39, map[int]string{0: "12", 1: "GIRAUD"}),
		paddedRow(39, map[int]string{0: totalsLabel}),
		periodRow24("Période 1", "15", "3/7", "1/3", "4/10", "6/8", "3", "4", "7", "2", "1", "5"),
	}

	e := testExtractor(detailedConfig())
	rec, rep := e.Extract(entity.DocDetailedBoxWorkbook, "", []Table{table})

	assert.Empty(t, rep.Skipped)
	require.Len(t, rec.Periods, 3)

	q1 := rec.Periods[0]
	assert.Equal(t, "CSMF PARIS", q1.Team)
	assert.Equal(t, 1, q1.Period)
	assert.Equal(t, 18, q1.Points)
	assert.Equal(t, entity.ShotLine{Made: 4, Attempted: 9}, q1.TwoPoint)
	assert.Equal(t, entity.ShotLine{Made: 2, Attempted: 5}, q1.ThreePoint)
	assert.Equal(t, entity.ShotLine{Made: 6, Attempted: 14}, q1.FieldGoals)
	assert.Equal(t, entity.ShotLine{Made: 3, Attempted: 4}, q1.FreeThrows)
	assert.Equal(t, 2, q1.OffRebounds)
	assert.Equal(t, 5, q1.DefRebounds)
	assert.Equal(t, 7, q1.TotRebounds)
	assert.Equal(t, 4, q1.Assists)
	assert.Equal(t, 3, q1.Steals)
	assert.Equal(t, 2, q1.Turnovers)

	assert.Equal(t, "CSMF PARIS", rec.Periods[1].Team)
	assert.Equal(t, 2, rec.Periods[1].Period)

	opp := rec.Periods[2]
	assert.Equal(t, "ADVERSAIRE", opp.Team)
	assert.Equal(t, 1, opp.Period)
	assert.Equal(t, 15, opp.Points)

	require.Contains(t, rec.TeamAdvanced, "CSMF PARIS")
	adv := rec.TeamAdvanced["CSMF PARIS"]
	require.NotNil(t, adv.PaintPoints)
	assert.Equal(t, 14, *adv.PaintPoints)
}

func TestDetailedPdfAdvancedFromText(t *testing.T) {
	text := `Boxscore Détaillée
ALPHA 72 - 65 BETA
% Rebonds Offensifs 32% 25%
% Rebonds Défensifs 71% 64%
% Rebond Total 55% 45%
Points dans la raquette 30 22
`
	e := testExtractor(detailedConfig())
	rec, _ := e.Extract(entity.DocDetailedBox, text, nil)

	require.NotNil(t, rec.HomeAdvanced.OffReboundPct)
	assert.Equal(t, 32, *rec.HomeAdvanced.OffReboundPct)
	assert.Equal(t, 25, *rec.AwayAdvanced.OffReboundPct)
	assert.Equal(t, 71, *rec.HomeAdvanced.DefReboundPct)
	assert.Equal(t, 64, *rec.AwayAdvanced.DefReboundPct)
	assert.Equal(t, 55, *rec.HomeAdvanced.TotReboundPct)
	assert.Equal(t, 45, *rec.AwayAdvanced.TotReboundPct)
	assert.Equal(t, 30, *rec.HomeAdvanced.PaintPoints)
	assert.Equal(t, 22, *rec.AwayAdvanced.PaintPoints)
	assert.Equal(t, "ALPHA", rec.HomeTeam)
}

func TestDetailedPeriodOutOfRangeSkipped(t *testing.T) {
	table := Table{
		paddedRow(39, map[int]string{0: "4", 1: "JACOB"}),
		paddedRow(39, map[int]string{0: totalsLabel}),
		periodRow24("Période 5", "7", "1/2", "0/1", "1/3", "4/4", "0", "1", "1", "0", "0", "1"),
	}

	e := testExtractor(detailedConfig())
	rec, rep := e.Extract(entity.DocDetailedBoxWorkbook, "", []Table{table})

	assert.Empty(t, rec.Periods)
	require.Len(t, rep.Skipped, 1)
	assert.Contains(t, rep.Skipped[0].Reason, "period")
}
