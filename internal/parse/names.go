package parse

import (
	"regexp"
	"strings"
)

var (
	captainMarkerRe = regexp.MustCompile(`\s*\([A-Z]\)\s*`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
)

// NameRules configures player-name normalization. The zero value applies
// only the built-in heuristic.
type NameRules struct {
	// CompoundSurnames lists surnames known to be compound ("RIMBAUD
	// CLOPPET"); a match is always joined with a hyphen regardless of the
	// heuristic.
	CompoundSurnames []string
	// NoJoin lists names the join heuristic must leave alone, for the rare
	// two-uppercase-word names that are not compound surnames.
	NoJoin []string
}

// CleanName strips captain/starter markers and collapses whitespace.
func CleanName(name string) string {
	name = captainMarkerRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(name, " "))
}

// PlayerName normalizes a player name with the default (heuristic-only)
// rules. See NameRules.PlayerName.
func PlayerName(name string) string {
	return NameRules{}.PlayerName(name)
}

// PlayerName strips captaincy markers, collapses whitespace, and joins
// compound surnames with a hyphen. The source layout renders "Prénom
// NOM1 NOM2" for compound surnames; when the tokens after the first are two
// or more fully-uppercase words they are joined ("RIMBAUD CLOPPET" ->
// "RIMBAUD-CLOPPET"). The heuristic is best-effort: a configured allowlist
// (CompoundSurnames) forces the join and NoJoin suppresses it.
func (r NameRules) PlayerName(name string) string {
	name = CleanName(name)
	if name == "" {
		return name
	}
	for _, n := range r.NoJoin {
		if strings.EqualFold(name, n) {
			return name
		}
	}
	for _, n := range r.CompoundSurnames {
		n = CleanName(n)
		if n == "" {
			continue
		}
		if idx := strings.Index(strings.ToUpper(name), strings.ToUpper(n)); idx >= 0 {
			joined := strings.ReplaceAll(name[idx:idx+len(n)], " ", "-")
			return name[:idx] + joined + name[idx+len(n):]
		}
	}
	parts := strings.Fields(name)
	if len(parts) < 3 {
		return name
	}
	rest := parts[1:]
	for _, w := range rest {
		if w != strings.ToUpper(w) || w == strings.ToLower(w) {
			return name
		}
	}
	return parts[0] + " " + strings.Join(rest, "-")
}

// TeamRules maps club-name variants onto one canonical string.
type TeamRules struct {
	// Substring identifies the tracked club in any of its rendered variants.
	Substring string
	// Canonical is the name every variant is normalized to.
	Canonical string
}

// CleanTeamName collapses newlines and runs of whitespace.
func CleanTeamName(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(name, " "))
}

// TeamName cleans a team name and maps any variant containing the tracked
// club's substring to the canonical form.
func (r TeamRules) TeamName(name string) string {
	name = CleanTeamName(name)
	if name == "" {
		return name
	}
	if r.Substring != "" && strings.Contains(strings.ToUpper(name), strings.ToUpper(r.Substring)) {
		return r.Canonical
	}
	return name
}

// Matches reports whether name belongs to the tracked club.
func (r TeamRules) Matches(name string) bool {
	return r.Substring != "" && strings.Contains(strings.ToUpper(name), strings.ToUpper(r.Substring))
}
