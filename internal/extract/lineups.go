package extract

import (
	"regexp"
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/metrics"
	"github.com/courtdata/stats-tracker/internal/parse"
)

const lineupHeaderLabel = "5 en jeu"

var (
	playerTokenRe  = regexp.MustCompile(`\d+\s*-`)
	tokenNumberRe  = regexp.MustCompile(`^(\d+)\s*-\s*`)
	lineupSpacesRe = regexp.MustCompile(`\s+`)
)

// lineupAnalysis extracts five-player stints. A data row's first cell holds
// five "number-name/" tokens; anything else (team banner, section header)
// is a non-data row. Adjacent columns carry time on court, the score pair,
// the signed differential, locale-decimal points per minute, rebounds,
// steals, turnovers and assists, in that order.
func (e *Extractor) lineupAnalysis(text string, tables []Table) (*entity.PartialRecord, *Report) {
	rec := &entity.PartialRecord{}
	rep := &Report{}
	matchInfo(text, rec)

	currentTeam := ""
	for ti, table := range tables {
		if len(table) < 2 || len(table[0]) < 9 {
			continue
		}
		for ri, row := range table {
			first := cell(row, 0)
			if first == "" || strings.EqualFold(first, lineupHeaderLabel) {
				continue
			}
			// A banner row names the team owning the rows below it.
			if !strings.Contains(first, "/") {
				if ri == 0 {
					currentTeam = e.teamName(first)
				}
				continue
			}
			if !playerTokenRe.MatchString(first) {
				continue
			}
			rep.Rows++

			players := splitLineup(first)
			if len(players) != 5 {
				rep.skip(ti, ri, "lineup does not have exactly five players")
				continue
			}
			duration := parse.ClockSeconds(cell(row, 1))
			if duration <= 0 {
				rep.skip(ti, ri, "zero or malformed stint duration")
				continue
			}

			pointsFor, pointsAgainst := scorePair(cell(row, 2))
			team := currentTeam
			if team == "" {
				team = e.Cfg.Teams.Canonical
			}
			if team == "" {
				team = e.Cfg.OpponentLabel
			}
			rec.Lineups = append(rec.Lineups, entity.LineupStint{
				Team:            team,
				Players:         players,
				DurationSeconds: duration,
				PointsFor:       pointsFor,
				PointsAgainst:   pointsAgainst,
				Net:             parse.Int(cell(row, 3)),
				PointsPerMinute: metrics.Sanitize(parse.Decimal(cell(row, 4), 0)),
				Rebounds:        parse.Int(cell(row, 5)),
				Steals:          parse.Int(cell(row, 6)),
				Turnovers:       parse.Int(cell(row, 7)),
				Assists:         parse.Int(cell(row, 8)),
			})
		}
	}
	return rec, rep
}

// splitLineup splits "1-SMITH/4-JONES/.../11-NOEL/" into its player tokens,
// normalizing each to "number-NAME".
func splitLineup(cellValue string) []string {
	var out []string
	for _, tok := range strings.Split(cellValue, "/") {
		tok = strings.TrimSpace(lineupSpacesRe.ReplaceAllString(tok, " "))
		if tok == "" {
			continue
		}
		tok = tokenNumberRe.ReplaceAllString(tok, "$1-")
		out = append(out, tok)
	}
	return out
}

// scorePair parses the "for-against" score cell; a missing dash leaves the
// against side at zero.
func scorePair(s string) (pointsFor, pointsAgainst int) {
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return parse.Int(s[:i]), parse.Int(s[i+1:])
	}
	return parse.Int(s), 0
}
