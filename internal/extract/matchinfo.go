package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/parse"
)

// Metadata regexes, tried in priority order. \p{L} instead of \w because
// French month names carry accents.
var (
	dateTimeRe  = regexp.MustCompile(`(?i)(\d{1,2}\s+\p{L}+\.?\s+\d{4})\s*Heure\s*:?\s*(\d{2}:\d{2})`)
	dateLabelRe = regexp.MustCompile(`(?i)Date:\s*\p{L}+\.?\s*(\d{1,2}\s+\p{L}+\.?\s+\d{4})`)
	dateSlashRe = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
	timeOnlyRe  = regexp.MustCompile(`Heure\s*:?\s*(\d{2}:\d{2})`)

	scoreLineRe   = regexp.MustCompile(`([A-Z][A-Z\s'\-]+?)\s+(\d{1,3})\s*[–\-]\s*(\d{1,3})\s+([A-Z][A-Z\s'\-]+)`)
	scoreTailRe   = regexp.MustCompile(`(?m)([A-Z][A-Z\s'\-]+)\s+(\d{1,3})\s*[–\-]\s*(\d{1,3})\s*$`)
	teamNameRe    = regexp.MustCompile(`^[A-Z][A-Za-z\s'\-]+$`)
	clockInLineRe = regexp.MustCompile(`\d{2}:\d{2}`)

	quartersRe    = regexp.MustCompile(`\((\d+)-(\d+),\s*(\d+)-(\d+),\s*(\d+)-(\d+),\s*(\d+)-(\d+)\)`)
	matchNoRe     = regexp.MustCompile(`Match\s*No\.?:?\s*(\d+)`)
	attendanceRe  = regexp.MustCompile(`Affluence:?\s*(\d+)`)
	competitionRe = regexp.MustCompile(`(NATIONALE\s+\d+\s+F[ÉE]MININE|NATIONALE\s+\d+\s+MASCULINE|R[ÉE]GIONALE\s+\d+)`)
	venueAfterRe  = regexp.MustCompile(`NATIONALE\s+\d+\s+F[ÉE]MININE\s+([^,\n]+)`)
	venueCommaRe  = regexp.MustCompile(`([A-Z][A-Z\s]+),\s*\p{L}+\.?\s*\d+`)

	coachTeamsRe = regexp.MustCompile(`([A-Z][A-Z\s']+)\s*\(([A-Z]+)\)\s+Entra[îi]neur`)
)

// Words that disqualify a free-text line from being an away-team name.
var notTeamKeywords = []string{"durée", "rapport", "crew", "arbitre", "match", "affluence"}

// matchInfo extracts the free-text metadata every document's first page may
// carry: date, tip-off time, final score, quarter scores, match number,
// attendance, venue. Patterns are tried in priority order; absent fields stay
// zero.
func matchInfo(text string, rec *entity.PartialRecord) {
	if m := dateTimeRe.FindStringSubmatch(text); m != nil {
		rec.Date = parse.FrenchDate(m[1])
		rec.Time = m[2]
	} else if m := dateLabelRe.FindStringSubmatch(text); m != nil {
		rec.Date = parse.FrenchDate(m[1])
	} else if m := dateSlashRe.FindStringSubmatch(text); m != nil {
		rec.Date = slashDateToISO(m[1])
	}
	if rec.Time == "" {
		if m := timeOnlyRe.FindStringSubmatch(text); m != nil {
			rec.Time = m[1]
		}
	}

	if m := scoreLineRe.FindStringSubmatch(text); m != nil {
		rec.HomeTeam = parse.CleanTeamName(m[1])
		rec.HomeScore = intPtr(parse.Int(m[2]))
		rec.AwayScore = intPtr(parse.Int(m[3]))
		rec.AwayTeam = parse.CleanTeamName(m[4])
	} else {
		twoLineScore(text, rec)
	}

	if m := quartersRe.FindStringSubmatch(text); m != nil {
		rec.Q1Home, rec.Q1Away = intPtr(parse.Int(m[1])), intPtr(parse.Int(m[2]))
		rec.Q2Home, rec.Q2Away = intPtr(parse.Int(m[3])), intPtr(parse.Int(m[4]))
		rec.Q3Home, rec.Q3Away = intPtr(parse.Int(m[5])), intPtr(parse.Int(m[6]))
		rec.Q4Home, rec.Q4Away = intPtr(parse.Int(m[7])), intPtr(parse.Int(m[8]))
	}

	if m := matchNoRe.FindStringSubmatch(text); m != nil {
		rec.MatchNo = m[1]
	}
	if m := attendanceRe.FindStringSubmatch(text); m != nil {
		rec.Attendance = intPtr(parse.Int(m[1]))
	}
	if m := competitionRe.FindStringSubmatch(text); m != nil {
		rec.Competition = strings.Join(strings.Fields(m[1]), " ")
	}
	if m := venueAfterRe.FindStringSubmatch(text); m != nil {
		rec.Venue = strings.TrimSpace(m[1])
	} else if m := venueCommaRe.FindStringSubmatch(text); m != nil {
		rec.Venue = strings.TrimSpace(m[1])
	}
}

// twoLineScore handles layouts that split "HOME 72 – 65" and the away team
// name across lines: the away name is the first plausible all-letters line
// within the next five lines.
func twoLineScore(text string, rec *entity.PartialRecord) {
	m := scoreTailRe.FindStringSubmatch(text)
	if m == nil {
		return
	}
	rec.HomeTeam = parse.CleanTeamName(m[1])
	rec.HomeScore = intPtr(parse.Int(m[2]))
	rec.AwayScore = intPtr(parse.Int(m[3]))

	lines := strings.Split(text, "\n")
	at := -1
	for i, line := range lines {
		if strings.Contains(line, strings.TrimSpace(m[0])) {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	for i := at + 1; i < len(lines) && i <= at+5; i++ {
		line := strings.TrimSpace(lines[i])
		if len(line) <= 3 || clockInLineRe.MatchString(line) || !teamNameRe.MatchString(line) {
			continue
		}
		if containsAnyFold(line, notTeamKeywords) {
			continue
		}
		rec.AwayTeam = parse.CleanTeamName(line)
		return
	}
}

// coachTeams recovers both team names from the "TEAM (ABBR) Entraîneur"
// blocks above the player tables. Falls back to the score-derived names,
// then to generic placeholders, so the caller always gets two names.
func coachTeams(text string, rec *entity.PartialRecord) (home, away string) {
	found := coachTeamsRe.FindAllStringSubmatch(text, -1)
	if len(found) >= 2 {
		return parse.CleanTeamName(found[0][1]), parse.CleanTeamName(found[1][1])
	}
	home, away = rec.HomeTeam, rec.AwayTeam
	if home == "" {
		home = "Équipe 1"
	}
	if away == "" {
		away = "Équipe 2"
	}
	return home, away
}

func slashDateToISO(s string) string {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return s
	}
	d, m, y := parse.Int(parts[0]), parse.Int(parts[1]), parts[2]
	if d < 1 || d > 31 || m < 1 || m > 12 {
		return s
	}
	return y + "-" + pad2(m) + "-" + pad2(d)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func intPtr(n int) *int { return &n }

func containsAnyFold(s string, subs []string) bool {
	low := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(low, sub) {
			return true
		}
	}
	return false
}
