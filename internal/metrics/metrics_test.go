package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtdata/stats-tracker/internal/entity"
)

func TestPlayerEvaluation(t *testing.T) {
	p := entity.PlayerStat{
		Points:      20,
		TotRebounds: 10,
		Assists:     5,
		Steals:      2,
		Blocks:      1,
		FieldGoals:  entity.ShotLine{Made: 8, Attempted: 15},
		FreeThrows:  entity.ShotLine{Made: 2, Attempted: 3},
		Turnovers:   3,
	}
	// 20+10+5+2+1 - (15-8) - (3-2) - 3
	assert.Equal(t, 27, PlayerEvaluation(&p))
}

func TestPlayerEvaluationMalformedShotLine(t *testing.T) {
	// attempted < made must not produce a negative miss count
	p := entity.PlayerStat{
		Points:     6,
		FieldGoals: entity.ShotLine{Made: 3, Attempted: 1},
	}
	assert.Equal(t, 6, PlayerEvaluation(&p))
}

func TestPointsPerMinute(t *testing.T) {
	tests := []struct {
		name     string
		points   int
		duration int
		want     float64
	}{
		{"normal", 12, 330, 12.0 / 5.5},
		{"whole minutes", 10, 120, 5},
		{"zero duration", 10, 0, 0},
		{"negative duration", 10, -5, 0},
		{"zero points", 0, 300, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, PointsPerMinute(tc.points, tc.duration), 1e-9)
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, 0.0, Sanitize(math.NaN()))
	assert.Equal(t, 0.0, Sanitize(math.Inf(1)))
	assert.Equal(t, 0.0, Sanitize(math.Inf(-1)))
	assert.Equal(t, 2.4, Sanitize(2.4))
}

func TestFinalizeIdempotent(t *testing.T) {
	rec := &entity.Match{
		Players: []entity.PlayerStat{{Points: 10, TotRebounds: 4}},
		Teams:   []entity.TeamStat{{Points: 60, TotRebounds: 30}},
		Lineups: []entity.LineupStint{
			{PointsFor: 12, PointsAgainst: 8, DurationSeconds: 330},
			{PointsFor: 0, PointsAgainst: 0, DurationSeconds: 0, PointsPerMinute: math.NaN()},
		},
	}

	Finalize(rec)
	assert.Equal(t, 14, rec.Players[0].Evaluation)
	assert.Equal(t, 90, rec.Teams[0].Evaluation)
	assert.Equal(t, 4, rec.Lineups[0].Net)
	assert.InDelta(t, 12.0/5.5, rec.Lineups[0].PointsPerMinute, 1e-9)
	assert.Equal(t, 0.0, rec.Lineups[1].PointsPerMinute)

	player, team, stint := rec.Players[0], rec.Teams[0], rec.Lineups[0]
	Finalize(rec)
	assert.Equal(t, player, rec.Players[0])
	assert.Equal(t, team, rec.Teams[0])
	assert.Equal(t, stint, rec.Lineups[0])
}
