package merge

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
)

func testMerger() *Merger {
	return New(
		parse.TeamRules{Substring: "CSMF", Canonical: "CSMF PARIS"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func intp(n int) *int { return &n }

func basePartial() *entity.PartialRecord {
	return &entity.PartialRecord{
		DocType:   entity.DocBoxScore,
		Filename:  "box.pdf",
		HomeTeam:  "CSMF PARIS",
		AwayTeam:  "ALPHA BASKET",
		HomeScore: intp(72),
		AwayScore: intp(65),
		Date:      "2023-10-14",
		Players: []entity.PlayerStat{
			{Team: "CSMF PARIS", Number: 4, Name: "SMITH", Points: 20},
			{Team: "CSMF PARIS", Number: 7, Name: "LEE-DUPONT", Points: 12},
		},
		Teams: []entity.TeamStat{
			{Team: "CSMF PARIS", Points: 72},
			{Team: "ALPHA BASKET", Points: 65},
		},
	}
}

func TestMergeRequiresPrimary(t *testing.T) {
	m := testMerger()

	_, _, err := m.Merge(nil)
	assert.ErrorIs(t, err, common.ErrMissingPrimary)

	_, _, err = m.Merge(&entity.PartialRecord{DocType: entity.DocLineupAnalysis})
	assert.ErrorIs(t, err, common.ErrMissingPrimary)
}

func TestMergeFillsOnlyAbsentFields(t *testing.T) {
	m := testMerger()
	base := basePartial()
	base.HomeAdvanced.PaintPoints = nil
	sup := &entity.PartialRecord{
		DocType:      entity.DocDetailedBox,
		Date:         "2023-10-15", // base already has a date, must lose
		Venue:        "SALLE COUBERTIN",
		HomeAdvanced: entity.AdvancedStats{PaintPoints: intp(14)},
	}

	rec, rep, err := m.Merge(base, sup)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.DroppedDetails)

	assert.Equal(t, "2023-10-14", rec.Date)
	assert.Equal(t, "SALLE COUBERTIN", rec.Venue)
	require.NotNil(t, rec.HomeAdvanced.PaintPoints)
	assert.Equal(t, 14, *rec.HomeAdvanced.PaintPoints)
}

func TestMergeBaseWinsWhenPresent(t *testing.T) {
	m := testMerger()
	base := basePartial()
	base.HomeAdvanced.PaintPoints = intp(10)
	sup := &entity.PartialRecord{
		DocType:      entity.DocDetailedBox,
		HomeAdvanced: entity.AdvancedStats{PaintPoints: intp(14)},
	}

	rec, _, err := m.Merge(base, sup)
	require.NoError(t, err)
	assert.Equal(t, 10, *rec.HomeAdvanced.PaintPoints)
}

func TestMergeReplacesListsWholesale(t *testing.T) {
	m := testMerger()
	first := &entity.PartialRecord{
		DocType: entity.DocLineupAnalysis,
		Lineups: []entity.LineupStint{
			{Team: "CSMF PARIS", Players: []string{"1-A", "2-B", "3-C", "4-D", "5-E"}, DurationSeconds: 100},
		},
	}
	second := &entity.PartialRecord{
		DocType: entity.DocLineupAnalysis,
		Lineups: []entity.LineupStint{
			{Team: "CSMF PARIS", Players: []string{"1-A", "2-B", "3-C", "4-D", "6-F"}, DurationSeconds: 200},
			{Team: "CSMF PARIS", Players: []string{"1-A", "2-B", "3-C", "4-D", "7-G"}, DurationSeconds: 50},
		},
	}

	rec, _, err := m.Merge(basePartial(), first, second)
	require.NoError(t, err)
	require.Len(t, rec.Lineups, 2)
	assert.Equal(t, 200, rec.Lineups[0].DurationSeconds)
}

func TestMergeResolvesTeamLabels(t *testing.T) {
	m := testMerger()
	sup := &entity.PartialRecord{
		DocType: entity.DocDetailedBoxWorkbook,
		Periods: []entity.PeriodStat{
			{Team: "CSMF PARIS", Period: 1, Points: 18},
			{Team: "ADVERSAIRE", Period: 1, Points: 15},
		},
		TeamAdvanced: map[string]entity.AdvancedStats{
			"CSMF PARIS": {PaintPoints: intp(14)},
			"ADVERSAIRE": {PaintPoints: intp(9)},
		},
	}

	rec, rep, err := m.Merge(basePartial(), sup)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.UnresolvedLabels)

	require.Len(t, rec.Periods, 2)
	assert.Equal(t, "CSMF PARIS", rec.Periods[0].Team)
	assert.Equal(t, "ALPHA BASKET", rec.Periods[1].Team)

	assert.Equal(t, 14, *rec.HomeAdvanced.PaintPoints)
	assert.Equal(t, 9, *rec.AwayAdvanced.PaintPoints)
}

func TestMergeCountsUnresolvedLabels(t *testing.T) {
	m := testMerger()
	sup := &entity.PartialRecord{
		DocType: entity.DocStatsSheet,
		TeamAdvanced: map[string]entity.AdvancedStats{
			"SOME OTHER CLUB": {PaintPoints: intp(3)},
		},
	}

	rec, rep, err := m.Merge(basePartial(), sup)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.UnresolvedLabels)
	assert.Nil(t, rec.HomeAdvanced.PaintPoints)
	assert.Nil(t, rec.AwayAdvanced.PaintPoints)
}

func TestMergePlayerDetails(t *testing.T) {
	m := testMerger()
	sup := &entity.PartialRecord{
		DocType: entity.DocStatsSheet,
		PlayerDetails: []entity.PlayerDetail{
			{
				Name:             "SMITH (C)",
				TwoPointInterior: &entity.ShotLine{Made: 3, Attempted: 5},
				TwoPointExterior: &entity.ShotLine{Made: 2, Attempted: 6},
				Dunks:            intp(1),
			},
			{Name: "LEE", TwoPointInterior: &entity.ShotLine{Made: 1, Attempted: 2}},
			{Name: "NOBODY", Dunks: intp(2)},
		},
	}

	rec, rep, err := m.Merge(basePartial(), sup)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.DroppedDetails)

	smith := rec.Players[0]
	require.NotNil(t, smith.TwoPointInterior)
	assert.Equal(t, entity.ShotLine{Made: 3, Attempted: 5}, *smith.TwoPointInterior)
	assert.Equal(t, entity.ShotLine{Made: 2, Attempted: 6}, *smith.TwoPointExterior)
	assert.Equal(t, 1, *smith.Dunks)

	// Substring match: sheet "LEE" lands on base "LEE-DUPONT".
	require.NotNil(t, rec.Players[1].TwoPointInterior)
	assert.Equal(t, entity.ShotLine{Made: 1, Attempted: 2}, *rec.Players[1].TwoPointInterior)
}

func TestMergeRecordsSourceRefs(t *testing.T) {
	m := testMerger()
	sup := &entity.PartialRecord{
		DocType:  entity.DocShotZones,
		Filename: "zones.pdf",
		Ignored:  true,
	}

	rec, _, err := m.Merge(basePartial(), sup)
	require.NoError(t, err)
	require.Len(t, rec.SourceRefs, 2)
	assert.Equal(t, "box.pdf", rec.SourceRefs[0].Filename)
	assert.Equal(t, entity.DocBoxScore, rec.SourceRefs[0].DocType)
	assert.Equal(t, "zones.pdf", rec.SourceRefs[1].Filename)
}

func TestMergeIdempotent(t *testing.T) {
	m := testMerger()
	sup := &entity.PartialRecord{
		DocType: entity.DocLineupAnalysis,
		Lineups: []entity.LineupStint{
			{Team: "ADVERSAIRE", Players: []string{"1-A", "2-B", "3-C", "4-D", "5-E"}, DurationSeconds: 120, PointsFor: 6},
		},
	}

	a, _, err := m.Merge(basePartial(), sup)
	require.NoError(t, err)
	b, _, err := m.Merge(basePartial(), sup)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBatchStateMachine(t *testing.T) {
	b := NewBatch()
	assert.Equal(t, StateAwaitingPrimary, b.State())

	b.Add(&entity.PartialRecord{DocType: entity.DocLineupAnalysis})
	assert.Equal(t, StateAwaitingPrimary, b.State())

	b.Add(basePartial())
	assert.Equal(t, StateSupplementPending, b.State())

	rec, _, err := b.Finalize(testMerger())
	require.NoError(t, err)
	assert.Equal(t, StateComplete, b.State())
	assert.Equal(t, "CSMF PARIS", rec.HomeTeam)
}

func TestBatchRejectedWithoutPrimary(t *testing.T) {
	b := NewBatch()
	b.Add(&entity.PartialRecord{DocType: entity.DocLineupAnalysis})
	b.Add(&entity.PartialRecord{DocType: entity.DocStatsSheet})

	_, _, err := b.Finalize(testMerger())
	assert.ErrorIs(t, err, common.ErrMissingPrimary)
	assert.Equal(t, StateRejected, b.State())
}

func TestBatchPrimaryOnlyCompletes(t *testing.T) {
	b := NewBatch()
	b.Add(basePartial())
	assert.Equal(t, StatePrimaryExtracted, b.State())

	rec, rep, err := b.Finalize(testMerger())
	require.NoError(t, err)
	assert.Equal(t, 0, rep.DroppedDetails)
	// Finalize computes the evaluation the source omitted.
	assert.Equal(t, 20, rec.Players[0].Evaluation)
}
