package entity

// ShotLine is one made/attempted shooting split.
type ShotLine struct {
	Made      int `json:"made"`
	Attempted int `json:"attempted"`
}

// Missed returns attempted minus made, floored at zero for malformed lines.
func (s ShotLine) Missed() int {
	if s.Attempted < s.Made {
		return 0
	}
	return s.Attempted - s.Made
}

// PlayerStat is one player's line for one match.
type PlayerStat struct {
	Team    string `json:"team"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Starter bool   `json:"starter,omitempty"`
	Minutes int    `json:"minutes"` // whole minutes played
	Points  int    `json:"points"`

	FieldGoals ShotLine `json:"field_goals"`
	TwoPoint   ShotLine `json:"two_point"`
	ThreePoint ShotLine `json:"three_point"`
	FreeThrows ShotLine `json:"free_throws"`

	// Interior/exterior split of the two-point line, only supplied by the
	// detailed stats sheet. Nil until such a document is merged in.
	TwoPointInterior *ShotLine `json:"two_point_interior,omitempty"`
	TwoPointExterior *ShotLine `json:"two_point_exterior,omitempty"`
	Dunks            *int      `json:"dunks,omitempty"`

	OffRebounds    int `json:"off_rebounds"`
	DefRebounds    int `json:"def_rebounds"`
	TotRebounds    int `json:"tot_rebounds"`
	Assists        int `json:"assists"`
	Steals         int `json:"steals"`
	Turnovers      int `json:"turnovers"`
	Blocks         int `json:"blocks"`
	BlocksReceived int `json:"blocks_received"`
	FoulsCommitted int `json:"fouls_committed"`
	FoulsDrawn     int `json:"fouls_drawn"`
	PlusMinus      int `json:"plus_minus"`

	Evaluation int `json:"evaluation"`
}

// TeamStat is the aggregated line for one team, one match.
type TeamStat struct {
	Team   string `json:"team"`
	Points int    `json:"points"`

	FieldGoals ShotLine `json:"field_goals"`
	TwoPoint   ShotLine `json:"two_point"`
	ThreePoint ShotLine `json:"three_point"`
	FreeThrows ShotLine `json:"free_throws"`

	OffRebounds    int `json:"off_rebounds"`
	DefRebounds    int `json:"def_rebounds"`
	TotRebounds    int `json:"tot_rebounds"`
	Assists        int `json:"assists"`
	Steals         int `json:"steals"`
	Turnovers      int `json:"turnovers"`
	Blocks         int `json:"blocks"`
	FoulsCommitted int `json:"fouls_committed"`

	Evaluation int `json:"evaluation"`
}

// PeriodStat is the team line scoped to a single quarter.
type PeriodStat struct {
	Team   string `json:"team"`
	Period int    `json:"period"` // 1..4
	Points int    `json:"points"`

	FieldGoals ShotLine `json:"field_goals"`
	TwoPoint   ShotLine `json:"two_point"`
	ThreePoint ShotLine `json:"three_point"`
	FreeThrows ShotLine `json:"free_throws"`

	OffRebounds int `json:"off_rebounds"`
	DefRebounds int `json:"def_rebounds"`
	TotRebounds int `json:"tot_rebounds"`
	Assists     int `json:"assists"`
	Steals      int `json:"steals"`
	Turnovers   int `json:"turnovers"`
}

// LineupStint is one appearance of a specific five-player unit.
type LineupStint struct {
	Team            string   `json:"team"`
	Players         []string `json:"players"` // exactly five
	DurationSeconds int      `json:"duration_seconds"`
	PointsFor       int      `json:"points_for"`
	PointsAgainst   int      `json:"points_against"`
	Net             int      `json:"net"`
	PointsPerMinute float64  `json:"points_per_minute"`
	Rebounds        int      `json:"rebounds"`
	Assists         int      `json:"assists"`
	Steals          int      `json:"steals"`
	Turnovers       int      `json:"turnovers"`
}

// PlayerDetail carries the per-player fields only the detailed stats sheet
// supplies; merged into an existing PlayerStat by normalized name.
type PlayerDetail struct {
	Team             string    `json:"team"`
	Number           int       `json:"number"`
	Name             string    `json:"name"`
	Starter          bool      `json:"starter"`
	TwoPointInterior *ShotLine `json:"two_point_interior,omitempty"`
	TwoPointExterior *ShotLine `json:"two_point_exterior,omitempty"`
	Dunks            *int      `json:"dunks,omitempty"`
}
