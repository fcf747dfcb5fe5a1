package entity

// PartialRecord is the output of a single document extractor. Only the
// fields that document type supplies are populated; the aggregator folds a
// set of partials into one Match.
type PartialRecord struct {
	DocType  DocumentType `json:"doc_type"`
	Filename string       `json:"filename,omitempty"`

	// Ignored marks a visual or unrecognized document retained only as a
	// source reference.
	Ignored bool `json:"ignored,omitempty"`

	MatchNo     string `json:"match_no,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Competition string `json:"competition,omitempty"`
	Season      string `json:"season,omitempty"`
	HomeTeam    string `json:"home_team,omitempty"`
	AwayTeam    string `json:"away_team,omitempty"`
	HomeScore   *int   `json:"home_score,omitempty"`
	AwayScore   *int   `json:"away_score,omitempty"`
	Q1Home      *int   `json:"q1_home,omitempty"`
	Q1Away      *int   `json:"q1_away,omitempty"`
	Q2Home      *int   `json:"q2_home,omitempty"`
	Q2Away      *int   `json:"q2_away,omitempty"`
	Q3Home      *int   `json:"q3_home,omitempty"`
	Q3Away      *int   `json:"q3_away,omitempty"`
	Q4Home      *int   `json:"q4_home,omitempty"`
	Q4Away      *int   `json:"q4_away,omitempty"`
	Venue       string `json:"venue,omitempty"`
	City        string `json:"city,omitempty"`
	Attendance  *int   `json:"attendance,omitempty"`
	Officials   string `json:"officials,omitempty"`

	HomeAdvanced AdvancedStats `json:"home_advanced"`
	AwayAdvanced AdvancedStats `json:"away_advanced"`

	// TeamAdvanced carries advanced figures keyed by the team label printed
	// in the document when the source does not say which side is home. The
	// aggregator resolves each label against the match teams.
	TeamAdvanced map[string]AdvancedStats `json:"team_advanced,omitempty"`

	Players       []PlayerStat   `json:"players,omitempty"`
	Teams         []TeamStat     `json:"teams,omitempty"`
	Periods       []PeriodStat   `json:"periods,omitempty"`
	Lineups       []LineupStint  `json:"lineups,omitempty"`
	PlayerDetails []PlayerDetail `json:"player_details,omitempty"`
}
