package extract

import (
	"regexp"
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
)

// The sheet titles both teams head to head with the final score.
var headToHeadRe = regexp.MustCompile(`([A-Z][A-Z\s\-']+)\s+-\s+([A-Z][A-Z\s\-']+)\s+(\d+)-(\d+)`)

// Advanced lines on the stats sheet print once per team, first-listed team
// first. Some exports only print one occurrence; it belongs to the tracked
// club.
var sheetAdvancedRes = []struct {
	re     *regexp.Regexp
	assign func(a *entity.AdvancedStats, v int)
}{
	{regexp.MustCompile(`Points dans la raquette\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.PaintPoints = &v }},
	{regexp.MustCompile(`Pts en contre-attaque\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.FastBreakPoints = &v }},
	{regexp.MustCompile(`Points sur 2ème chance\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.SecondChancePoints = &v }},
	{regexp.MustCompile(`Avantage Maximum\s+(\d+)`),
		func(a *entity.AdvancedStats, v int) { a.LargestLead = &v }},
	{regexp.MustCompile(`% Rebonds Offensifs\s+(\d+)%`),
		func(a *entity.AdvancedStats, v int) { a.OffReboundPct = &v }},
	{regexp.MustCompile(`% Rebonds D[ée]fensifs\s+(\d+)%`),
		func(a *entity.AdvancedStats, v int) { a.DefReboundPct = &v }},
	{regexp.MustCompile(`% Rebond Total\s+(\d+)%`),
		func(a *entity.AdvancedStats, v int) { a.TotReboundPct = &v }},
}

var (
	longestRunRe  = regexp.MustCompile(`S[ée]rie Maximum\s+(\d+-\d+)`)
	tiesRe        = regexp.MustCompile(`Egalit[ée]s\s+(\d+)`)
	leadChangesRe = regexp.MustCompile(`Changements de Leader\s+(\d+)`)
)

// Reserved first-cell labels in the detailed player tables.
var sheetRowLabels = map[string]bool{
	coachRowLabel: true,
	totalsLabel:   true,
	startersLabel: true,
	benchLabel:    true,
}

const (
	startersLabel = "5 de Départ"
	benchLabel    = "Banc"
)

// statsSheet extracts the detailed statistics sheet: per-player interior
// and exterior two-point splits with dunk counts, plus the team-scoped
// extras (largest lead, scoring runs, starters versus bench points). Team
// names come from the head-to-head title and from the table headers, so
// everything team-scoped lands in TeamAdvanced keyed by label.
func (e *Extractor) statsSheet(text string, tables []Table) (*entity.PartialRecord, *Report) {
	rec := &entity.PartialRecord{}
	rep := &Report{}

	clubLabel := e.Cfg.Teams.Canonical
	if clubLabel == "" {
		clubLabel = e.Cfg.OpponentLabel
	}

	team1, team2 := "", ""
	if m := headToHeadRe.FindStringSubmatch(text); m != nil {
		team1, team2 = e.teamName(m[1]), e.teamName(m[2])
		rec.HomeTeam, rec.AwayTeam = team1, team2
		rec.HomeScore = intPtr(parse.Int(m[3]))
		rec.AwayScore = intPtr(parse.Int(m[4]))
	}

	for _, sa := range sheetAdvancedRes {
		ms := sa.re.FindAllStringSubmatch(text, -1)
		switch {
		case len(ms) >= 2 && team1 != "" && team2 != "":
			v1, v2 := parse.Int(ms[0][1]), parse.Int(ms[1][1])
			setTeamAdvanced(rec, team1, func(a *entity.AdvancedStats) { sa.assign(a, v1) })
			setTeamAdvanced(rec, team2, func(a *entity.AdvancedStats) { sa.assign(a, v2) })
		case len(ms) >= 1:
			v := parse.Int(ms[0][1])
			setTeamAdvanced(rec, clubLabel, func(a *entity.AdvancedStats) { sa.assign(a, v) })
		}
	}
	if ms := longestRunRe.FindAllStringSubmatch(text, -1); len(ms) >= 2 && team1 != "" && team2 != "" {
		setTeamAdvanced(rec, team1, func(a *entity.AdvancedStats) { a.LongestRun = ms[0][1] })
		setTeamAdvanced(rec, team2, func(a *entity.AdvancedStats) { a.LongestRun = ms[1][1] })
	} else if len(ms) == 1 {
		setTeamAdvanced(rec, clubLabel, func(a *entity.AdvancedStats) { a.LongestRun = ms[0][1] })
	}

	// Ties and lead changes print once and describe the whole game.
	for _, shared := range []struct {
		re     *regexp.Regexp
		assign func(a *entity.AdvancedStats, v int)
	}{
		{tiesRe, func(a *entity.AdvancedStats, v int) { a.Ties = &v }},
		{leadChangesRe, func(a *entity.AdvancedStats, v int) { a.LeadChanges = &v }},
	} {
		if m := shared.re.FindStringSubmatch(text); m != nil {
			v := parse.Int(m[1])
			for _, team := range []string{team1, team2, clubLabel} {
				if team != "" {
					vv := v
					setTeamAdvanced(rec, team, func(a *entity.AdvancedStats) { shared.assign(a, vv) })
				}
			}
		}
	}

	for ti, table := range tables {
		e.sheetPlayerTable(ti, table, clubLabel, rec, rep)
	}
	return rec, rep
}

// sheetPlayerTable reads one per-team detail table when its header carries
// the interior/exterior split columns. The owning team is the header cell
// matching the tracked club, else the longest header label.
func (e *Extractor) sheetPlayerTable(ti int, table Table, clubLabel string, rec *entity.PartialRecord, rep *Report) {
	if len(table) < 3 {
		return
	}
	var header []string
	header = append(header, table[0]...)
	header = append(header, table[1]...)
	headerText := strings.Join(header, " ")
	if !strings.Contains(headerText, "2 pts Ext") && !strings.Contains(headerText, "2 pts Int") {
		return
	}

	team := ""
	for i := range table[0] {
		c := cell(table[0], i)
		if c == "" {
			continue
		}
		if e.Cfg.Teams.Matches(c) {
			team = clubLabel
			break
		}
		if len(c) > 3 {
			team = e.teamName(c)
		}
	}
	if team == "" {
		team = e.Cfg.OpponentLabel
	}

	for ri, row := range table[2:] {
		first := cell(row, 0)
		second := cell(row, 1)
		if first == "" || sheetRowLabels[first] {
			if strings.Contains(first, startersLabel) || strings.Contains(second, startersLabel) {
				v := parse.Int(cell(row, 3))
				setTeamAdvanced(rec, team, func(a *entity.AdvancedStats) { a.StartersPoints = &v })
			} else if strings.Contains(first, benchLabel) || strings.Contains(second, benchLabel) {
				v := parse.Int(cell(row, 3))
				setTeamAdvanced(rec, team, func(a *entity.AdvancedStats) { a.BenchPoints = &v })
			}
			continue
		}

		rep.Rows++
		if len(row) < 20 {
			rep.skip(ti, ri+2, "row shorter than 20 cells")
			continue
		}
		name := second
		if name == "" {
			rep.skip(ti, ri+2, "missing player name")
			continue
		}
		ext := shotLinePtr(cell(row, 8))
		inn := shotLinePtr(cell(row, 10))
		dunks := parse.Int(cell(row, 12))
		rec.PlayerDetails = append(rec.PlayerDetails, entity.PlayerDetail{
			Team:             team,
			Number:           parse.Int(strings.ReplaceAll(first, "*", "")),
			Name:             e.playerName(name),
			Starter:          strings.Contains(first, "*"),
			TwoPointExterior: ext,
			TwoPointInterior: inn,
			Dunks:            &dunks,
		})
	}
}

func shotLinePtr(s string) *entity.ShotLine {
	made, att := parse.Fraction(s)
	return &entity.ShotLine{Made: made, Attempted: att}
}

// setTeamAdvanced upserts one field of a label-scoped advanced entry.
func setTeamAdvanced(rec *entity.PartialRecord, team string, set func(*entity.AdvancedStats)) {
	if team == "" {
		return
	}
	if rec.TeamAdvanced == nil {
		rec.TeamAdvanced = make(map[string]entity.AdvancedStats)
	}
	adv := rec.TeamAdvanced[team]
	set(&adv)
	rec.TeamAdvanced[team] = adv
}
