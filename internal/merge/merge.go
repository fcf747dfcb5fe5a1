// Package merge folds the partial records produced by the per-document
// extractors into one unified match record. The primary box score is the
// base; every other document supplements it. A supplement only fills fields
// the base left empty, and list-valued sections are replaced wholesale so a
// re-upload of the same document type supersedes rather than duplicates.
package merge

import (
	"log/slog"
	"strings"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
)

// Merger owns the fold of partials into a match. Teams resolves the
// label-scoped stats a document attributes to a club name or to the
// opponent placeholder.
type Merger struct {
	Logger        *slog.Logger
	Teams         parse.TeamRules
	OpponentLabel string
}

func New(teams parse.TeamRules, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{Logger: logger, Teams: teams, OpponentLabel: "ADVERSAIRE"}
}

// Report summarizes what a merge could not place.
type Report struct {
	// DroppedDetails counts supplement player rows with no matching player
	// in the base record.
	DroppedDetails int
	// UnresolvedLabels counts label-scoped team stats whose label matched
	// neither side of the match.
	UnresolvedLabels int
}

// Merge folds base and supplements into one match. The base must come from
// a primary box score; without it there is no match identity and the whole
// batch is rejected.
func (m *Merger) Merge(base *entity.PartialRecord, supplements ...*entity.PartialRecord) (*entity.Match, *Report, error) {
	if base == nil || base.DocType != entity.DocBoxScore {
		return nil, nil, common.ErrMissingPrimary
	}

	rec := matchFromBase(base)
	rep := &Report{}

	for _, sup := range supplements {
		if sup == nil {
			continue
		}
		if sup.Filename != "" {
			rec.SourceRefs = append(rec.SourceRefs, entity.SourceRef{
				Filename: sup.Filename,
				DocType:  sup.DocType,
			})
		}
		if sup.Ignored {
			continue
		}
		m.apply(rec, sup, rep)
	}

	m.Logger.Info("merge.ok",
		"supplements", len(supplements),
		"dropped_details", rep.DroppedDetails,
		"unresolved_labels", rep.UnresolvedLabels,
	)
	return rec, rep, nil
}

func matchFromBase(base *entity.PartialRecord) *entity.Match {
	rec := &entity.Match{
		MatchNo:      base.MatchNo,
		Date:         base.Date,
		Time:         base.Time,
		Competition:  base.Competition,
		Season:       base.Season,
		HomeTeam:     base.HomeTeam,
		AwayTeam:     base.AwayTeam,
		HomeScore:    copyInt(base.HomeScore),
		AwayScore:    copyInt(base.AwayScore),
		Q1Home:       copyInt(base.Q1Home),
		Q1Away:       copyInt(base.Q1Away),
		Q2Home:       copyInt(base.Q2Home),
		Q2Away:       copyInt(base.Q2Away),
		Q3Home:       copyInt(base.Q3Home),
		Q3Away:       copyInt(base.Q3Away),
		Q4Home:       copyInt(base.Q4Home),
		Q4Away:       copyInt(base.Q4Away),
		Venue:        base.Venue,
		City:         base.City,
		Attendance:   copyInt(base.Attendance),
		Officials:    base.Officials,
		HomeAdvanced: base.HomeAdvanced,
		AwayAdvanced: base.AwayAdvanced,
		Players:      append([]entity.PlayerStat(nil), base.Players...),
		Teams:        append([]entity.TeamStat(nil), base.Teams...),
		Periods:      append([]entity.PeriodStat(nil), base.Periods...),
		Lineups:      append([]entity.LineupStint(nil), base.Lineups...),
	}
	if base.Filename != "" {
		rec.SourceRefs = append(rec.SourceRefs, entity.SourceRef{
			Filename: base.Filename,
			DocType:  base.DocType,
		})
	}
	return rec
}

// apply merges one supplement into rec under the fill-if-absent rule.
func (m *Merger) apply(rec *entity.Match, sup *entity.PartialRecord, rep *Report) {
	fillString(&rec.MatchNo, sup.MatchNo)
	fillString(&rec.Date, sup.Date)
	fillString(&rec.Time, sup.Time)
	fillString(&rec.Competition, sup.Competition)
	fillString(&rec.Season, sup.Season)
	fillString(&rec.HomeTeam, sup.HomeTeam)
	fillString(&rec.AwayTeam, sup.AwayTeam)
	fillString(&rec.Venue, sup.Venue)
	fillString(&rec.City, sup.City)
	fillString(&rec.Officials, sup.Officials)

	fillInt(&rec.HomeScore, sup.HomeScore)
	fillInt(&rec.AwayScore, sup.AwayScore)
	fillInt(&rec.Q1Home, sup.Q1Home)
	fillInt(&rec.Q1Away, sup.Q1Away)
	fillInt(&rec.Q2Home, sup.Q2Home)
	fillInt(&rec.Q2Away, sup.Q2Away)
	fillInt(&rec.Q3Home, sup.Q3Home)
	fillInt(&rec.Q3Away, sup.Q3Away)
	fillInt(&rec.Q4Home, sup.Q4Home)
	fillInt(&rec.Q4Away, sup.Q4Away)
	fillInt(&rec.Attendance, sup.Attendance)

	fillAdvanced(&rec.HomeAdvanced, sup.HomeAdvanced)
	fillAdvanced(&rec.AwayAdvanced, sup.AwayAdvanced)
	for label, adv := range sup.TeamAdvanced {
		switch m.resolveSide(rec, label) {
		case sideHome:
			fillAdvanced(&rec.HomeAdvanced, adv)
		case sideAway:
			fillAdvanced(&rec.AwayAdvanced, adv)
		default:
			rep.UnresolvedLabels++
			m.Logger.Warn("merge.label.unresolved", "label", label)
		}
	}

	if len(sup.Players) > 0 {
		rec.Players = append([]entity.PlayerStat(nil), sup.Players...)
	}
	if len(sup.Teams) > 0 {
		rec.Teams = append([]entity.TeamStat(nil), sup.Teams...)
	}
	if len(sup.Periods) > 0 {
		rec.Periods = m.relabelPeriods(rec, sup.Periods)
	}
	if len(sup.Lineups) > 0 {
		rec.Lineups = m.relabelLineups(rec, sup.Lineups)
	}

	for _, d := range sup.PlayerDetails {
		if !applyDetail(rec.Players, d) {
			rep.DroppedDetails++
		}
	}
}

type side int

const (
	sideNone side = iota
	sideHome
	sideAway
)

// resolveSide maps a document's team label onto the home or away side of
// the match. The opponent placeholder resolves to whichever side is not the
// tracked club.
func (m *Merger) resolveSide(rec *entity.Match, label string) side {
	switch {
	case strings.EqualFold(label, rec.HomeTeam):
		return sideHome
	case strings.EqualFold(label, rec.AwayTeam):
		return sideAway
	case strings.EqualFold(label, m.OpponentLabel):
		if m.Teams.Matches(rec.HomeTeam) {
			return sideAway
		}
		return sideHome
	case m.Teams.Matches(label):
		if m.Teams.Matches(rec.HomeTeam) {
			return sideHome
		}
		if m.Teams.Matches(rec.AwayTeam) {
			return sideAway
		}
	}
	return sideNone
}

// resolveName rewrites a label to the actual team name on its side, leaving
// unresolvable labels alone.
func (m *Merger) resolveName(rec *entity.Match, label string) string {
	switch m.resolveSide(rec, label) {
	case sideHome:
		return rec.HomeTeam
	case sideAway:
		return rec.AwayTeam
	}
	return label
}

func (m *Merger) relabelPeriods(rec *entity.Match, periods []entity.PeriodStat) []entity.PeriodStat {
	out := append([]entity.PeriodStat(nil), periods...)
	for i := range out {
		out[i].Team = m.resolveName(rec, out[i].Team)
	}
	return out
}

func (m *Merger) relabelLineups(rec *entity.Match, lineups []entity.LineupStint) []entity.LineupStint {
	out := append([]entity.LineupStint(nil), lineups...)
	for i := range out {
		out[i].Team = m.resolveName(rec, out[i].Team)
		out[i].Players = append([]string(nil), lineups[i].Players...)
	}
	return out
}

// applyDetail folds one detailed-sheet row into the matching base player.
// Names are matched case-insensitively by substring either way, tolerant of
// the captaincy marker the normalizer already stripped from one side.
func applyDetail(players []entity.PlayerStat, d entity.PlayerDetail) bool {
	want := normName(d.Name)
	if want == "" {
		return false
	}
	for i := range players {
		have := normName(players[i].Name)
		if have == "" || (!strings.Contains(have, want) && !strings.Contains(want, have)) {
			continue
		}
		if d.TwoPointInterior != nil {
			v := *d.TwoPointInterior
			players[i].TwoPointInterior = &v
		}
		if d.TwoPointExterior != nil {
			v := *d.TwoPointExterior
			players[i].TwoPointExterior = &v
		}
		if d.Dunks != nil {
			v := *d.Dunks
			players[i].Dunks = &v
		}
		return true
	}
	return false
}

func normName(s string) string {
	return strings.ToUpper(parse.CleanName(s))
}

func fillString(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

func fillInt(dst **int, v *int) {
	if *dst == nil && v != nil {
		n := *v
		*dst = &n
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// fillAdvanced copies each advanced field the destination is missing.
func fillAdvanced(dst *entity.AdvancedStats, src entity.AdvancedStats) {
	fillInt(&dst.PaintPoints, src.PaintPoints)
	fillInt(&dst.FastBreakPoints, src.FastBreakPoints)
	fillInt(&dst.SecondChancePoints, src.SecondChancePoints)
	fillInt(&dst.PointsOffTurnovers, src.PointsOffTurnovers)
	fillInt(&dst.BenchPoints, src.BenchPoints)
	fillInt(&dst.StartersPoints, src.StartersPoints)
	fillInt(&dst.LargestLead, src.LargestLead)
	fillString(&dst.LongestRun, src.LongestRun)
	fillInt(&dst.LeadChanges, src.LeadChanges)
	fillInt(&dst.Ties, src.Ties)
	fillInt(&dst.OffReboundPct, src.OffReboundPct)
	fillInt(&dst.DefReboundPct, src.DefReboundPct)
	fillInt(&dst.TotReboundPct, src.TotReboundPct)
}
