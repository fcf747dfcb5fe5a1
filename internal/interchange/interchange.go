// Package interchange reads and writes the JSON migration format: one
// document with top-level arrays matchs, stats_joueuses, stats_equipes and
// combinaisons_5, children carrying a match_id foreign key. Field names
// follow the historical export so existing files keep importing; fields the
// legacy format never had are optional additions.
package interchange

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/courtdata/stats-tracker/internal/entity"
	"github.com/courtdata/stats-tracker/internal/metrics"
)

// Export is the interchange document.
type Export struct {
	Matchs        []MatchRow   `json:"matchs"`
	StatsJoueuses []PlayerRow  `json:"stats_joueuses"`
	StatsEquipes  []TeamRow    `json:"stats_equipes"`
	Combinaisons5 []LineupRow  `json:"combinaisons_5"`
	Periodes      []PeriodRow  `json:"periodes,omitempty"`
}

type MatchRow struct {
	ID              int64  `json:"id"`
	MatchNo         string `json:"match_no,omitempty"`
	Date            string `json:"date"`
	Heure           string `json:"heure,omitempty"`
	Competition     string `json:"competition,omitempty"`
	Saison          string `json:"saison,omitempty"`
	EquipeDomicile  string `json:"equipe_domicile"`
	EquipeExterieur string `json:"equipe_exterieur"`
	ScoreDomicile   *int   `json:"score_domicile,omitempty"`
	ScoreExterieur  *int   `json:"score_exterieur,omitempty"`
	Q1Domicile      *int   `json:"q1_domicile,omitempty"`
	Q1Exterieur     *int   `json:"q1_exterieur,omitempty"`
	Q2Domicile      *int   `json:"q2_domicile,omitempty"`
	Q2Exterieur     *int   `json:"q2_exterieur,omitempty"`
	Q3Domicile      *int   `json:"q3_domicile,omitempty"`
	Q3Exterieur     *int   `json:"q3_exterieur,omitempty"`
	Q4Domicile      *int   `json:"q4_domicile,omitempty"`
	Q4Exterieur     *int   `json:"q4_exterieur,omitempty"`
	Lieu            string `json:"lieu,omitempty"`
	Ville           string `json:"ville,omitempty"`
	Affluence       *int   `json:"affluence,omitempty"`
	Arbitres        string `json:"arbitres,omitempty"`
	PdfSource       string `json:"pdf_source,omitempty"`
	PdfBlobURL      string `json:"pdf_blob_url,omitempty"`

	// Post-legacy additions.
	Sources           []SourceRow           `json:"sources,omitempty"`
	AvanceesDomicile  *entity.AdvancedStats `json:"stats_avancees_domicile,omitempty"`
	AvanceesExterieur *entity.AdvancedStats `json:"stats_avancees_exterieur,omitempty"`
}

type SourceRow struct {
	Fichier string `json:"fichier"`
	URL     string `json:"url,omitempty"`
	Type    string `json:"type,omitempty"`
}

type PlayerRow struct {
	ID                int64  `json:"id"`
	MatchID           int64  `json:"match_id"`
	Equipe            string `json:"equipe"`
	Numero            int    `json:"numero"`
	Nom               string `json:"nom"`
	Minutes           int    `json:"minutes"`
	Points            int    `json:"points"`
	TirsReussis       int    `json:"tirs_reussis"`
	TirsTentes        int    `json:"tirs_tentes"`
	Tirs2ptsReussis   int    `json:"tirs_2pts_reussis"`
	Tirs2ptsTentes    int    `json:"tirs_2pts_tentes"`
	Tirs3ptsReussis   int    `json:"tirs_3pts_reussis"`
	Tirs3ptsTentes    int    `json:"tirs_3pts_tentes"`
	LfReussis         int    `json:"lf_reussis"`
	LfTentes          int    `json:"lf_tentes"`
	RebondsOffensifs  int    `json:"rebonds_offensifs"`
	RebondsDefensifs  int    `json:"rebonds_defensifs"`
	RebondsTotal      int    `json:"rebonds_total"`
	PassesDecisives   int    `json:"passes_decisives"`
	Interceptions     int    `json:"interceptions"`
	BallesPerdues     int    `json:"balles_perdues"`
	Contres           int    `json:"contres"`
	ContresSubis      int    `json:"contres_subis,omitempty"`
	FautesProvoquees  int    `json:"fautes_provoquees"`
	FautesCommises    int    `json:"fautes_commises"`
	PlusMoins         int    `json:"plus_moins"`
	Evaluation        int    `json:"evaluation"`
	CinqDeDepart      bool   `json:"cinq_de_depart,omitempty"`
	Tirs2ptsIntLine   string `json:"tirs_2pts_int,omitempty"`
	Tirs2ptsExtLine   string `json:"tirs_2pts_ext,omitempty"`
	Dunks             *int   `json:"dunks,omitempty"`
}

type TeamRow struct {
	ID               int64  `json:"id"`
	MatchID          int64  `json:"match_id"`
	Equipe           string `json:"equipe"`
	Points           int    `json:"points"`
	TirsReussis      int    `json:"tirs_reussis"`
	TirsTentes       int    `json:"tirs_tentes"`
	Tirs2ptsReussis  int    `json:"tirs_2pts_reussis"`
	Tirs2ptsTentes   int    `json:"tirs_2pts_tentes"`
	Tirs3ptsReussis  int    `json:"tirs_3pts_reussis"`
	Tirs3ptsTentes   int    `json:"tirs_3pts_tentes"`
	LfReussis        int    `json:"lf_reussis"`
	LfTentes         int    `json:"lf_tentes"`
	RebondsOffensifs int    `json:"rebonds_offensifs"`
	RebondsDefensifs int    `json:"rebonds_defensifs"`
	RebondsTotal     int    `json:"rebonds_total"`
	PassesDecisives  int    `json:"passes_decisives"`
	Interceptions    int    `json:"interceptions"`
	BallesPerdues    int    `json:"balles_perdues"`
	Contres          int    `json:"contres"`
	FautesCommises   int    `json:"fautes_commises"`
}

type LineupRow struct {
	ID              int64   `json:"id"`
	MatchID         int64   `json:"match_id"`
	Equipe          string  `json:"equipe"`
	Joueurs         string  `json:"joueurs"`
	DureeSecondes   int     `json:"duree_secondes"`
	PointsMarques   int     `json:"points_marques"`
	PointsEncaisses int     `json:"points_encaisses"`
	PlusMinus       int     `json:"plus_minus"`
	PointsParMinute float64 `json:"points_par_minute,omitempty"`
	Rebonds         int     `json:"rebonds,omitempty"`
	PassesDecisives int     `json:"passes_decisives,omitempty"`
	Interceptions   int     `json:"interceptions,omitempty"`
	BallesPerdues   int     `json:"balles_perdues,omitempty"`
}

type PeriodRow struct {
	ID               int64  `json:"id"`
	MatchID          int64  `json:"match_id"`
	Equipe           string `json:"equipe"`
	Periode          int    `json:"periode"`
	Points           int    `json:"points"`
	TirsReussis      int    `json:"tirs_reussis"`
	TirsTentes       int    `json:"tirs_tentes"`
	Tirs2ptsReussis  int    `json:"tirs_2pts_reussis"`
	Tirs2ptsTentes   int    `json:"tirs_2pts_tentes"`
	Tirs3ptsReussis  int    `json:"tirs_3pts_reussis"`
	Tirs3ptsTentes   int    `json:"tirs_3pts_tentes"`
	LfReussis        int    `json:"lf_reussis"`
	LfTentes         int    `json:"lf_tentes"`
	RebondsOffensifs int    `json:"rebonds_offensifs"`
	RebondsDefensifs int    `json:"rebonds_defensifs"`
	RebondsTotal     int    `json:"rebonds_total"`
	PassesDecisives  int    `json:"passes_decisives"`
	Interceptions    int    `json:"interceptions"`
	BallesPerdues    int    `json:"balles_perdues"`
}

// FromMatches builds an export document. Matches without an id get
// sequential ones so child rows can reference them.
func FromMatches(matches []entity.Match) *Export {
	out := &Export{
		Matchs:        []MatchRow{},
		StatsJoueuses: []PlayerRow{},
		StatsEquipes:  []TeamRow{},
		Combinaisons5: []LineupRow{},
	}
	var nextChild int64 = 1
	for i := range matches {
		m := &matches[i]
		id := m.ID
		if id == 0 {
			id = int64(i + 1)
		}
		out.Matchs = append(out.Matchs, matchRow(m, id))
		for _, p := range m.Players {
			row := playerRow(&p, nextChild, id)
			out.StatsJoueuses = append(out.StatsJoueuses, row)
			nextChild++
		}
		for _, ts := range m.Teams {
			out.StatsEquipes = append(out.StatsEquipes, teamRow(&ts, nextChild, id))
			nextChild++
		}
		for _, l := range m.Lineups {
			out.Combinaisons5 = append(out.Combinaisons5, lineupRow(&l, nextChild, id))
			nextChild++
		}
		for _, ps := range m.Periods {
			out.Periodes = append(out.Periodes, periodRow(&ps, nextChild, id))
			nextChild++
		}
	}
	return out
}

// Matches reconstructs the in-memory records, grouping children by their
// match_id and recomputing the derived fields the format does not carry.
func (e *Export) Matches() []entity.Match {
	byID := make(map[int64]*entity.Match, len(e.Matchs))
	order := make([]int64, 0, len(e.Matchs))
	for i := range e.Matchs {
		m := e.Matchs[i].toMatch()
		byID[m.ID] = m
		order = append(order, m.ID)
	}
	for _, r := range e.StatsJoueuses {
		if m := byID[r.MatchID]; m != nil {
			m.Players = append(m.Players, r.toPlayer())
		}
	}
	for _, r := range e.StatsEquipes {
		if m := byID[r.MatchID]; m != nil {
			m.Teams = append(m.Teams, r.toTeam())
		}
	}
	for _, r := range e.Combinaisons5 {
		if m := byID[r.MatchID]; m != nil {
			m.Lineups = append(m.Lineups, r.toLineup())
		}
	}
	for _, r := range e.Periodes {
		if m := byID[r.MatchID]; m != nil {
			m.Periods = append(m.Periods, r.toPeriod())
		}
	}

	out := make([]entity.Match, 0, len(order))
	for _, id := range order {
		m := byID[id]
		metrics.Finalize(m)
		out = append(out, *m)
	}
	return out
}

// Encode writes the document with stable child ordering.
func Encode(w io.Writer, matches []entity.Match) error {
	doc := FromMatches(matches)
	sort.SliceStable(doc.StatsJoueuses, func(i, j int) bool {
		return doc.StatsJoueuses[i].ID < doc.StatsJoueuses[j].ID
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Decode parses and validates an interchange document.
func Decode(r io.Reader) (*Export, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var doc Export
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &doc, nil
}

func matchRow(m *entity.Match, id int64) MatchRow {
	row := MatchRow{
		ID:              id,
		MatchNo:         m.MatchNo,
		Date:            m.Date,
		Heure:           m.Time,
		Competition:     m.Competition,
		Saison:          m.Season,
		EquipeDomicile:  m.HomeTeam,
		EquipeExterieur: m.AwayTeam,
		ScoreDomicile:   m.HomeScore,
		ScoreExterieur:  m.AwayScore,
		Q1Domicile:      m.Q1Home,
		Q1Exterieur:     m.Q1Away,
		Q2Domicile:      m.Q2Home,
		Q2Exterieur:     m.Q2Away,
		Q3Domicile:      m.Q3Home,
		Q3Exterieur:     m.Q3Away,
		Q4Domicile:      m.Q4Home,
		Q4Exterieur:     m.Q4Away,
		Lieu:            m.Venue,
		Ville:           m.City,
		Affluence:       m.Attendance,
		Arbitres:        m.Officials,
	}
	if len(m.SourceRefs) > 0 {
		row.PdfSource = m.SourceRefs[0].Filename
		row.PdfBlobURL = m.SourceRefs[0].BlobURL
		for _, ref := range m.SourceRefs {
			row.Sources = append(row.Sources, SourceRow{
				Fichier: ref.Filename,
				URL:     ref.BlobURL,
				Type:    string(ref.DocType),
			})
		}
	}
	if !m.HomeAdvanced.Empty() {
		adv := m.HomeAdvanced
		row.AvanceesDomicile = &adv
	}
	if !m.AwayAdvanced.Empty() {
		adv := m.AwayAdvanced
		row.AvanceesExterieur = &adv
	}
	return row
}

func (r MatchRow) toMatch() *entity.Match {
	m := &entity.Match{
		ID:          r.ID,
		MatchNo:     r.MatchNo,
		Date:        r.Date,
		Time:        r.Heure,
		Competition: r.Competition,
		Season:      r.Saison,
		HomeTeam:    r.EquipeDomicile,
		AwayTeam:    r.EquipeExterieur,
		HomeScore:   r.ScoreDomicile,
		AwayScore:   r.ScoreExterieur,
		Q1Home:      r.Q1Domicile,
		Q1Away:      r.Q1Exterieur,
		Q2Home:      r.Q2Domicile,
		Q2Away:      r.Q2Exterieur,
		Q3Home:      r.Q3Domicile,
		Q3Away:      r.Q3Exterieur,
		Q4Home:      r.Q4Domicile,
		Q4Away:      r.Q4Exterieur,
		Venue:       r.Lieu,
		City:        r.Ville,
		Attendance:  r.Affluence,
		Officials:   r.Arbitres,
	}
	for _, s := range r.Sources {
		m.SourceRefs = append(m.SourceRefs, entity.SourceRef{
			Filename: s.Fichier,
			BlobURL:  s.URL,
			DocType:  entity.DocumentType(s.Type),
		})
	}
	if len(m.SourceRefs) == 0 && r.PdfSource != "" {
		m.SourceRefs = []entity.SourceRef{{Filename: r.PdfSource, BlobURL: r.PdfBlobURL}}
	}
	if r.AvanceesDomicile != nil {
		m.HomeAdvanced = *r.AvanceesDomicile
	}
	if r.AvanceesExterieur != nil {
		m.AwayAdvanced = *r.AvanceesExterieur
	}
	return m
}

func playerRow(p *entity.PlayerStat, id, matchID int64) PlayerRow {
	row := PlayerRow{
		ID:               id,
		MatchID:          matchID,
		Equipe:           p.Team,
		Numero:           p.Number,
		Nom:              p.Name,
		Minutes:          p.Minutes,
		Points:           p.Points,
		TirsReussis:      p.FieldGoals.Made,
		TirsTentes:       p.FieldGoals.Attempted,
		Tirs2ptsReussis:  p.TwoPoint.Made,
		Tirs2ptsTentes:   p.TwoPoint.Attempted,
		Tirs3ptsReussis:  p.ThreePoint.Made,
		Tirs3ptsTentes:   p.ThreePoint.Attempted,
		LfReussis:        p.FreeThrows.Made,
		LfTentes:         p.FreeThrows.Attempted,
		RebondsOffensifs: p.OffRebounds,
		RebondsDefensifs: p.DefRebounds,
		RebondsTotal:     p.TotRebounds,
		PassesDecisives:  p.Assists,
		Interceptions:    p.Steals,
		BallesPerdues:    p.Turnovers,
		Contres:          p.Blocks,
		ContresSubis:     p.BlocksReceived,
		FautesProvoquees: p.FoulsDrawn,
		FautesCommises:   p.FoulsCommitted,
		PlusMoins:        p.PlusMinus,
		Evaluation:       p.Evaluation,
		CinqDeDepart:     p.Starter,
		Dunks:            p.Dunks,
	}
	if p.TwoPointInterior != nil {
		row.Tirs2ptsIntLine = shotLineString(*p.TwoPointInterior)
	}
	if p.TwoPointExterior != nil {
		row.Tirs2ptsExtLine = shotLineString(*p.TwoPointExterior)
	}
	return row
}

func (r PlayerRow) toPlayer() entity.PlayerStat {
	p := entity.PlayerStat{
		Team:           r.Equipe,
		Number:         r.Numero,
		Name:           r.Nom,
		Starter:        r.CinqDeDepart,
		Minutes:        r.Minutes,
		Points:         r.Points,
		FieldGoals:     entity.ShotLine{Made: r.TirsReussis, Attempted: r.TirsTentes},
		TwoPoint:       entity.ShotLine{Made: r.Tirs2ptsReussis, Attempted: r.Tirs2ptsTentes},
		ThreePoint:     entity.ShotLine{Made: r.Tirs3ptsReussis, Attempted: r.Tirs3ptsTentes},
		FreeThrows:     entity.ShotLine{Made: r.LfReussis, Attempted: r.LfTentes},
		OffRebounds:    r.RebondsOffensifs,
		DefRebounds:    r.RebondsDefensifs,
		TotRebounds:    r.RebondsTotal,
		Assists:        r.PassesDecisives,
		Steals:         r.Interceptions,
		Turnovers:      r.BallesPerdues,
		Blocks:         r.Contres,
		BlocksReceived: r.ContresSubis,
		FoulsCommitted: r.FautesCommises,
		FoulsDrawn:     r.FautesProvoquees,
		PlusMinus:      r.PlusMoins,
		Evaluation:     r.Evaluation,
		Dunks:          r.Dunks,
	}
	if r.Tirs2ptsIntLine != "" {
		p.TwoPointInterior = shotLineFromString(r.Tirs2ptsIntLine)
	}
	if r.Tirs2ptsExtLine != "" {
		p.TwoPointExterior = shotLineFromString(r.Tirs2ptsExtLine)
	}
	return p
}

func teamRow(t *entity.TeamStat, id, matchID int64) TeamRow {
	return TeamRow{
		ID:               id,
		MatchID:          matchID,
		Equipe:           t.Team,
		Points:           t.Points,
		TirsReussis:      t.FieldGoals.Made,
		TirsTentes:       t.FieldGoals.Attempted,
		Tirs2ptsReussis:  t.TwoPoint.Made,
		Tirs2ptsTentes:   t.TwoPoint.Attempted,
		Tirs3ptsReussis:  t.ThreePoint.Made,
		Tirs3ptsTentes:   t.ThreePoint.Attempted,
		LfReussis:        t.FreeThrows.Made,
		LfTentes:         t.FreeThrows.Attempted,
		RebondsOffensifs: t.OffRebounds,
		RebondsDefensifs: t.DefRebounds,
		RebondsTotal:     t.TotRebounds,
		PassesDecisives:  t.Assists,
		Interceptions:    t.Steals,
		BallesPerdues:    t.Turnovers,
		Contres:          t.Blocks,
		FautesCommises:   t.FoulsCommitted,
	}
}

func (r TeamRow) toTeam() entity.TeamStat {
	return entity.TeamStat{
		Team:           r.Equipe,
		Points:         r.Points,
		FieldGoals:     entity.ShotLine{Made: r.TirsReussis, Attempted: r.TirsTentes},
		TwoPoint:       entity.ShotLine{Made: r.Tirs2ptsReussis, Attempted: r.Tirs2ptsTentes},
		ThreePoint:     entity.ShotLine{Made: r.Tirs3ptsReussis, Attempted: r.Tirs3ptsTentes},
		FreeThrows:     entity.ShotLine{Made: r.LfReussis, Attempted: r.LfTentes},
		OffRebounds:    r.RebondsOffensifs,
		DefRebounds:    r.RebondsDefensifs,
		TotRebounds:    r.RebondsTotal,
		Assists:        r.PassesDecisives,
		Steals:         r.Interceptions,
		Turnovers:      r.BallesPerdues,
		Blocks:         r.Contres,
		FoulsCommitted: r.FautesCommises,
	}
}

func lineupRow(l *entity.LineupStint, id, matchID int64) LineupRow {
	return LineupRow{
		ID:              id,
		MatchID:         matchID,
		Equipe:          l.Team,
		Joueurs:         strings.Join(l.Players, "/"),
		DureeSecondes:   l.DurationSeconds,
		PointsMarques:   l.PointsFor,
		PointsEncaisses: l.PointsAgainst,
		PlusMinus:       l.Net,
		PointsParMinute: l.PointsPerMinute,
		Rebonds:         l.Rebounds,
		PassesDecisives: l.Assists,
		Interceptions:   l.Steals,
		BallesPerdues:   l.Turnovers,
	}
}

func (r LineupRow) toLineup() entity.LineupStint {
	var players []string
	for _, p := range strings.Split(r.Joueurs, "/") {
		if p = strings.TrimSpace(p); p != "" {
			players = append(players, p)
		}
	}
	return entity.LineupStint{
		Team:            r.Equipe,
		Players:         players,
		DurationSeconds: r.DureeSecondes,
		PointsFor:       r.PointsMarques,
		PointsAgainst:   r.PointsEncaisses,
		Net:             r.PlusMinus,
		PointsPerMinute: r.PointsParMinute,
		Rebounds:        r.Rebonds,
		Assists:         r.PassesDecisives,
		Steals:          r.Interceptions,
		Turnovers:       r.BallesPerdues,
	}
}

func periodRow(p *entity.PeriodStat, id, matchID int64) PeriodRow {
	return PeriodRow{
		ID:               id,
		MatchID:          matchID,
		Equipe:           p.Team,
		Periode:          p.Period,
		Points:           p.Points,
		TirsReussis:      p.FieldGoals.Made,
		TirsTentes:       p.FieldGoals.Attempted,
		Tirs2ptsReussis:  p.TwoPoint.Made,
		Tirs2ptsTentes:   p.TwoPoint.Attempted,
		Tirs3ptsReussis:  p.ThreePoint.Made,
		Tirs3ptsTentes:   p.ThreePoint.Attempted,
		LfReussis:        p.FreeThrows.Made,
		LfTentes:         p.FreeThrows.Attempted,
		RebondsOffensifs: p.OffRebounds,
		RebondsDefensifs: p.DefRebounds,
		RebondsTotal:     p.TotRebounds,
		PassesDecisives:  p.Assists,
		Interceptions:    p.Steals,
		BallesPerdues:    p.Turnovers,
	}
}

func (r PeriodRow) toPeriod() entity.PeriodStat {
	return entity.PeriodStat{
		Team:        r.Equipe,
		Period:      r.Periode,
		Points:      r.Points,
		FieldGoals:  entity.ShotLine{Made: r.TirsReussis, Attempted: r.TirsTentes},
		TwoPoint:    entity.ShotLine{Made: r.Tirs2ptsReussis, Attempted: r.Tirs2ptsTentes},
		ThreePoint:  entity.ShotLine{Made: r.Tirs3ptsReussis, Attempted: r.Tirs3ptsTentes},
		FreeThrows:  entity.ShotLine{Made: r.LfReussis, Attempted: r.LfTentes},
		OffRebounds: r.RebondsOffensifs,
		DefRebounds: r.RebondsDefensifs,
		TotRebounds: r.RebondsTotal,
		Assists:     r.PassesDecisives,
		Steals:      r.Interceptions,
		Turnovers:   r.BallesPerdues,
	}
}

func shotLineString(s entity.ShotLine) string {
	return fmt.Sprintf("%d/%d", s.Made, s.Attempted)
}

func shotLineFromString(s string) *entity.ShotLine {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return nil
	}
	var line entity.ShotLine
	if _, err := fmt.Sscanf(s, "%d/%d", &line.Made, &line.Attempted); err != nil {
		return nil
	}
	return &line
}
