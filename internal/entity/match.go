package entity

// Match is the unified record for one game, assembled from one or more
// source documents. Optional numerics are pointers so that a value missing
// from every source stays distinguishable from a genuine zero.
type Match struct {
	ID          int64  `json:"id,omitempty"`
	MatchNo     string `json:"match_no,omitempty"`
	Date        string `json:"date,omitempty"` // ISO YYYY-MM-DD when normalizable
	Time        string `json:"time,omitempty"` // HH:MM
	Competition string `json:"competition,omitempty"`
	Season      string `json:"season,omitempty"`

	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`

	// Quarter-by-quarter score pairs. The sum should equal the final score
	// when both are present; a mismatch is tolerated because several source
	// layouts omit quarter data.
	Q1Home *int `json:"q1_home,omitempty"`
	Q1Away *int `json:"q1_away,omitempty"`
	Q2Home *int `json:"q2_home,omitempty"`
	Q2Away *int `json:"q2_away,omitempty"`
	Q3Home *int `json:"q3_home,omitempty"`
	Q3Away *int `json:"q3_away,omitempty"`
	Q4Home *int `json:"q4_home,omitempty"`
	Q4Away *int `json:"q4_away,omitempty"`

	Venue      string `json:"venue,omitempty"`
	City       string `json:"city,omitempty"`
	Attendance *int   `json:"attendance,omitempty"`
	Officials  string `json:"officials,omitempty"`

	SourceRefs []SourceRef `json:"source_refs,omitempty"`

	HomeAdvanced AdvancedStats `json:"home_advanced"`
	AwayAdvanced AdvancedStats `json:"away_advanced"`

	Players []PlayerStat  `json:"players,omitempty"`
	Teams   []TeamStat    `json:"teams,omitempty"`
	Periods []PeriodStat  `json:"periods,omitempty"`
	Lineups []LineupStint `json:"lineups,omitempty"`
}

// AdvancedStats groups the team-scoped metrics that only appear in the
// detailed documents. All fields are optional.
type AdvancedStats struct {
	PaintPoints        *int   `json:"paint_points,omitempty"`
	FastBreakPoints    *int   `json:"fast_break_points,omitempty"`
	SecondChancePoints *int   `json:"second_chance_points,omitempty"`
	PointsOffTurnovers *int   `json:"points_off_turnovers,omitempty"`
	BenchPoints        *int   `json:"bench_points,omitempty"`
	StartersPoints     *int   `json:"starters_points,omitempty"`
	LargestLead        *int   `json:"largest_lead,omitempty"`
	LongestRun         string `json:"longest_run,omitempty"` // "N-M" scoring run
	LeadChanges        *int   `json:"lead_changes,omitempty"`
	Ties               *int   `json:"ties,omitempty"`
	OffReboundPct      *int   `json:"off_rebound_pct,omitempty"`
	DefReboundPct      *int   `json:"def_rebound_pct,omitempty"`
	TotReboundPct      *int   `json:"tot_rebound_pct,omitempty"`
}

// Empty reports whether no advanced field has been populated.
func (a AdvancedStats) Empty() bool {
	return a.PaintPoints == nil && a.FastBreakPoints == nil &&
		a.SecondChancePoints == nil && a.PointsOffTurnovers == nil &&
		a.BenchPoints == nil && a.StartersPoints == nil &&
		a.LargestLead == nil && a.LongestRun == "" &&
		a.LeadChanges == nil && a.Ties == nil &&
		a.OffReboundPct == nil && a.DefReboundPct == nil && a.TotReboundPct == nil
}
