// Package metrics computes the derived fields not present verbatim in the
// source documents: the composite evaluation index, lineup scoring pace,
// and the non-finite scrubbing that guarantees storage-safe output.
package metrics

import (
	"math"

	"github.com/courtdata/stats-tracker/internal/entity"
)

// PlayerEvaluation is the composite index used when the source omits one:
// points + total rebounds + assists + steals + blocks, minus missed field
// goals, missed free throws and turnovers.
func PlayerEvaluation(p *entity.PlayerStat) int {
	return p.Points + p.TotRebounds + p.Assists + p.Steals + p.Blocks -
		p.FieldGoals.Missed() - p.FreeThrows.Missed() - p.Turnovers
}

// TeamEvaluation applies the same formula at team level.
func TeamEvaluation(t *entity.TeamStat) int {
	return t.Points + t.TotRebounds + t.Assists + t.Steals + t.Blocks -
		t.FieldGoals.Missed() - t.FreeThrows.Missed() - t.Turnovers
}

// PointsPerMinute derives a stint's scoring pace. Zero-duration stints and
// non-finite divisions yield 0.
func PointsPerMinute(pointsFor, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return Sanitize(float64(pointsFor) / (float64(durationSeconds) / 60))
}

// Sanitize replaces NaN and infinities with 0 so no non-finite value ever
// reaches a storage collaborator.
func Sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Finalize fills every derived field the merged record is still missing and
// scrubs non-finite values. It mutates rec in place and returns it; calling
// it twice is a no-op the second time.
func Finalize(rec *entity.Match) *entity.Match {
	if rec == nil {
		return nil
	}
	for i := range rec.Players {
		if rec.Players[i].Evaluation == 0 {
			rec.Players[i].Evaluation = PlayerEvaluation(&rec.Players[i])
		}
	}
	for i := range rec.Teams {
		if rec.Teams[i].Evaluation == 0 {
			rec.Teams[i].Evaluation = TeamEvaluation(&rec.Teams[i])
		}
	}
	for i := range rec.Lineups {
		ln := &rec.Lineups[i]
		ln.PointsPerMinute = Sanitize(ln.PointsPerMinute)
		if ln.PointsPerMinute == 0 {
			ln.PointsPerMinute = PointsPerMinute(ln.PointsFor, ln.DurationSeconds)
		}
		if ln.Net == 0 && (ln.PointsFor != 0 || ln.PointsAgainst != 0) {
			ln.Net = ln.PointsFor - ln.PointsAgainst
		}
	}
	return rec
}
