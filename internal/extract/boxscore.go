package extract

import (
	"regexp"
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/metrics"
	"github.com/courtdata/stats-tracker/internal/parse"
)

// Reserved name-cell labels in the player tables.
const (
	totalsLabel    = "Totaux"
	coachRowLabel  = "Equipe/Coach"
	headerRowLabel = "Nom"
)

// Advanced-metric lines on the box score carry one value per team,
// home first.
var advancedPairRes = []struct {
	re     *regexp.Regexp
	assign func(adv *entity.AdvancedStats, v int)
}{
	{regexp.MustCompile(`Points dans la raquette\s+(\d+)[^\d]+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.PaintPoints = &v }},
	{regexp.MustCompile(`Pts en contre-attaque\s+(\d+)\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.FastBreakPoints = &v }},
	{regexp.MustCompile(`Points sur 2ème chance\s+(\d+)\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.SecondChancePoints = &v }},
	{regexp.MustCompile(`Points de Balles Perdues\s+(\d+)\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.PointsOffTurnovers = &v }},
	{regexp.MustCompile(`Points Banc\s+(\d+)\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.BenchPoints = &v }},
}

// boxScore extracts the primary box score: match metadata from free text,
// one player table per team, "Totaux" rows folded into team stats, and the
// per-team advanced lines when the export prints them.
//
// Two table widths exist: 23 columns with an explicit evaluation column,
// 22 without. Points live in the last column either way.
func (e *Extractor) boxScore(text string, tables []Table) (*entity.PartialRecord, *Report) {
	rec := &entity.PartialRecord{}
	rep := &Report{}

	matchInfo(text, rec)
	home, away := coachTeams(text, rec)
	home, away = e.teamName(home), e.teamName(away)
	if rec.HomeTeam != "" {
		rec.HomeTeam = e.teamName(rec.HomeTeam)
	} else {
		rec.HomeTeam = home
	}
	if rec.AwayTeam != "" {
		rec.AwayTeam = e.teamName(rec.AwayTeam)
	} else {
		rec.AwayTeam = away
	}

	// The two player tables are the only large ones on the document:
	// more than 5 rows, at least 15 columns. First is home, second away.
	var playerTables []Table
	for _, t := range tables {
		if len(t) > 5 && len(t[0]) >= 15 {
			playerTables = append(playerTables, t)
		}
	}
	if len(playerTables) > 2 {
		playerTables = playerTables[:2]
	}

	for ti, table := range playerTables {
		team := home
		if ti == 1 {
			team = away
		}
		for ri, row := range table[1:] {
			rep.Rows++
			if cell(row, 0) == "" && cell(row, 1) == "" {
				continue // layout padding
			}
			if len(row) < 15 {
				rep.skip(ti, ri+1, "row shorter than 15 cells")
				continue
			}
			name := cell(row, 1)
			if name == totalsLabel || cell(row, 0) == totalsLabel {
				rec.Teams = append(rec.Teams, teamTotalsRow(team, row))
				continue
			}
			if name == "" || name == coachRowLabel || name == headerRowLabel {
				continue
			}
			rec.Players = append(rec.Players, e.playerRow(team, name, row))
		}
	}

	for _, ap := range advancedPairRes {
		if m := ap.re.FindStringSubmatch(text); m != nil {
			ap.assign(&rec.HomeAdvanced, parse.Int(m[1]))
			ap.assign(&rec.AwayAdvanced, parse.Int(m[2]))
		}
	}

	return rec, rep
}

// playerRow reads one player line at the fixed box-score offsets:
// No, Nom, Min, Tirs, %, 2pts, %, 3pts, %, LF, %, RO, RD, TOT, PD, BP, IN,
// Ctr, F, FP, +/- and then either Ev, PTS (23 cols) or just PTS (22 cols).
func (e *Extractor) playerRow(team, name string, row []string) entity.PlayerStat {
	hasEvalColumn := len(row) >= 23

	numCell := cell(row, 0)
	p := entity.PlayerStat{
		Team:    team,
		Number:  parse.Int(strings.ReplaceAll(numCell, "*", "")),
		Name:    e.playerName(name),
		Starter: strings.Contains(numCell, "*"),
		Minutes: parse.Minutes(cell(row, 2)),
	}
	p.FieldGoals.Made, p.FieldGoals.Attempted = parse.Fraction(cell(row, 3))
	p.TwoPoint.Made, p.TwoPoint.Attempted = parse.Fraction(cell(row, 5))
	p.ThreePoint.Made, p.ThreePoint.Attempted = parse.Fraction(cell(row, 7))
	p.FreeThrows.Made, p.FreeThrows.Attempted = parse.Fraction(cell(row, 9))
	p.OffRebounds = parse.Int(cell(row, 11))
	p.DefRebounds = parse.Int(cell(row, 12))
	p.TotRebounds = parse.Int(cell(row, 13))
	p.Assists = parse.Int(cell(row, 14))
	p.Turnovers = parse.Int(cell(row, 15))
	p.Steals = parse.Int(cell(row, 16))
	p.Blocks = parse.Int(cell(row, 17))
	p.FoulsCommitted = parse.Int(cell(row, 18))
	p.FoulsDrawn = parse.Int(cell(row, 19))
	p.PlusMinus = parse.Int(cell(row, 20))

	if hasEvalColumn {
		p.Evaluation = parse.Int(cell(row, 21))
		p.Points = parse.Int(cell(row, 22))
	} else {
		p.Points = parse.Int(cell(row, 21))
	}
	if p.Evaluation == 0 {
		p.Evaluation = metrics.PlayerEvaluation(&p)
	}
	return p
}

// teamTotalsRow folds a "Totaux" line into a team stat. The totals row has
// no explicit evaluation; it is always recomputed.
func teamTotalsRow(team string, row []string) entity.TeamStat {
	t := entity.TeamStat{Team: team}
	t.FieldGoals.Made, t.FieldGoals.Attempted = parse.Fraction(cell(row, 3))
	t.TwoPoint.Made, t.TwoPoint.Attempted = parse.Fraction(cell(row, 5))
	t.ThreePoint.Made, t.ThreePoint.Attempted = parse.Fraction(cell(row, 7))
	t.FreeThrows.Made, t.FreeThrows.Attempted = parse.Fraction(cell(row, 9))
	t.OffRebounds = parse.Int(cell(row, 11))
	t.DefRebounds = parse.Int(cell(row, 12))
	t.TotRebounds = parse.Int(cell(row, 13))
	t.Assists = parse.Int(cell(row, 14))
	t.Turnovers = parse.Int(cell(row, 15))
	t.Steals = parse.Int(cell(row, 16))
	t.Blocks = parse.Int(cell(row, 17))
	t.FoulsCommitted = parse.Int(cell(row, 18))
	if len(row) >= 23 {
		t.Points = parse.Int(cell(row, 22))
	} else {
		t.Points = parse.Int(cell(row, 21))
	}
	t.Evaluation = metrics.TeamEvaluation(&t)
	return t
}
