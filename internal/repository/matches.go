package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/entity"
)

// PlayerGame is one player line with the match context it belongs to, used
// by the per-player history queries.
type PlayerGame struct {
	MatchID  int64  `json:"match_id"`
	Date     string `json:"date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	Stat entity.PlayerStat `json:"stat"`
}

type MatchRepository interface {
	// SaveMatch stores the full record, replacing any previous match with
	// the same date and team pair. Returns the stored row id.
	SaveMatch(ctx context.Context, m *entity.Match) (int64, error)
	GetMatch(ctx context.Context, id int64) (*entity.Match, error)
	// ListMatches returns headers only; child rows are not loaded.
	ListMatches(ctx context.Context) ([]*entity.Match, error)
	LatestMatch(ctx context.Context) (*entity.Match, error)
	FindMatch(ctx context.Context, date, team string) (*entity.Match, error)
	PlayerHistory(ctx context.Context, name string) ([]PlayerGame, error)
	DeleteMatch(ctx context.Context, id int64) error
}

type matchRepository struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

func NewMatchRepository(db *sql.DB, dsn string, logger *slog.Logger) MatchRepository {
	return &matchRepository{
		db:     db,
		driver: driverFor(dsn),
		logger: logger,
	}
}

const matchColumns = `id, match_no, date, heure, competition, saison,
	equipe_domicile, equipe_exterieur, score_domicile, score_exterieur,
	q1_domicile, q1_exterieur, q2_domicile, q2_exterieur,
	q3_domicile, q3_exterieur, q4_domicile, q4_exterieur,
	lieu, ville, affluence, arbitres,
	stats_avancees_domicile, stats_avancees_exterieur`

func (r *matchRepository) SaveMatch(ctx context.Context, m *entity.Match) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, common.WrapError(err, "begin save transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx, rebind(r.driver,
		`SELECT id FROM matchs WHERE date = $1 AND equipe_domicile = $2 AND equipe_exterieur = $3`),
		m.Date, m.HomeTeam, m.AwayTeam).Scan(&existing)
	switch {
	case err == nil:
		if err := r.deleteMatchTx(ctx, tx, existing); err != nil {
			return 0, err
		}
		r.logger.Info("match.replaced", "match_id", existing, "date", m.Date)
	case errors.Is(err, sql.ErrNoRows):
		// first time this match is stored
	default:
		return 0, common.WrapError(err, "look up existing match")
	}

	avHome, err := marshalAdvanced(m.HomeAdvanced)
	if err != nil {
		return 0, err
	}
	avAway, err := marshalAdvanced(m.AwayAdvanced)
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, rebind(r.driver,
		`INSERT INTO matchs (match_no, date, heure, competition, saison,
			equipe_domicile, equipe_exterieur, score_domicile, score_exterieur,
			q1_domicile, q1_exterieur, q2_domicile, q2_exterieur,
			q3_domicile, q3_exterieur, q4_domicile, q4_exterieur,
			lieu, ville, affluence, arbitres,
			stats_avancees_domicile, stats_avancees_exterieur)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id`),
		m.MatchNo, m.Date, m.Time, m.Competition, m.Season,
		m.HomeTeam, m.AwayTeam, optInt(m.HomeScore), optInt(m.AwayScore),
		optInt(m.Q1Home), optInt(m.Q1Away), optInt(m.Q2Home), optInt(m.Q2Away),
		optInt(m.Q3Home), optInt(m.Q3Away), optInt(m.Q4Home), optInt(m.Q4Away),
		m.Venue, m.City, optInt(m.Attendance), m.Officials,
		avHome, avAway).Scan(&id)
	if err != nil {
		return 0, common.WrapError(err, "insert match")
	}

	if err := r.insertChildren(ctx, tx, id, m); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, common.WrapError(err, "commit match")
	}

	r.logger.Info("match.saved", "match_id", id,
		"home", m.HomeTeam, "away", m.AwayTeam,
		"players", len(m.Players), "lineups", len(m.Lineups))
	return id, nil
}

func (r *matchRepository) insertChildren(ctx context.Context, tx *sql.Tx, id int64, m *entity.Match) error {
	for _, src := range m.SourceRefs {
		_, err := tx.ExecContext(ctx, rebind(r.driver,
			`INSERT INTO sources (match_id, fichier, url, type) VALUES ($1, $2, $3, $4)`),
			id, src.Filename, src.BlobURL, string(src.DocType))
		if err != nil {
			return common.WrapError(err, "insert source")
		}
	}

	for _, p := range m.Players {
		var intMade, intAtt, extMade, extAtt any
		if p.TwoPointInterior != nil {
			intMade, intAtt = p.TwoPointInterior.Made, p.TwoPointInterior.Attempted
		}
		if p.TwoPointExterior != nil {
			extMade, extAtt = p.TwoPointExterior.Made, p.TwoPointExterior.Attempted
		}
		_, err := tx.ExecContext(ctx, rebind(r.driver,
			`INSERT INTO stats_joueuses (match_id, equipe, numero, nom, cinq_de_depart,
				minutes, points, tirs_reussis, tirs_tentes,
				tirs_2pts_reussis, tirs_2pts_tentes,
				tirs_3pts_reussis, tirs_3pts_tentes,
				lf_reussis, lf_tentes,
				tirs_2pts_int_reussis, tirs_2pts_int_tentes,
				tirs_2pts_ext_reussis, tirs_2pts_ext_tentes, dunks,
				rebonds_off, rebonds_def, rebonds_tot,
				passes_decisives, interceptions, balles_perdues,
				contres, contres_subis, fautes_commises, fautes_provoquees,
				plus_moins, evaluation)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
				$26, $27, $28, $29, $30, $31, $32)`),
			id, p.Team, p.Number, p.Name, boolInt(p.Starter),
			p.Minutes, p.Points, p.FieldGoals.Made, p.FieldGoals.Attempted,
			p.TwoPoint.Made, p.TwoPoint.Attempted,
			p.ThreePoint.Made, p.ThreePoint.Attempted,
			p.FreeThrows.Made, p.FreeThrows.Attempted,
			intMade, intAtt, extMade, extAtt, optInt(p.Dunks),
			p.OffRebounds, p.DefRebounds, p.TotRebounds,
			p.Assists, p.Steals, p.Turnovers,
			p.Blocks, p.BlocksReceived, p.FoulsCommitted, p.FoulsDrawn,
			p.PlusMinus, p.Evaluation)
		if err != nil {
			return common.WrapError(err, "insert player stat")
		}
	}

	for _, t := range m.Teams {
		_, err := tx.ExecContext(ctx, rebind(r.driver,
			`INSERT INTO stats_equipes (match_id, equipe, points,
				tirs_reussis, tirs_tentes,
				tirs_2pts_reussis, tirs_2pts_tentes,
				tirs_3pts_reussis, tirs_3pts_tentes,
				lf_reussis, lf_tentes,
				rebonds_off, rebonds_def, rebonds_tot,
				passes_decisives, interceptions, balles_perdues,
				contres, fautes_commises, evaluation)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20)`),
			id, t.Team, t.Points,
			t.FieldGoals.Made, t.FieldGoals.Attempted,
			t.TwoPoint.Made, t.TwoPoint.Attempted,
			t.ThreePoint.Made, t.ThreePoint.Attempted,
			t.FreeThrows.Made, t.FreeThrows.Attempted,
			t.OffRebounds, t.DefRebounds, t.TotRebounds,
			t.Assists, t.Steals, t.Turnovers,
			t.Blocks, t.FoulsCommitted, t.Evaluation)
		if err != nil {
			return common.WrapError(err, "insert team stat")
		}
	}

	for _, p := range m.Periods {
		_, err := tx.ExecContext(ctx, rebind(r.driver,
			`INSERT INTO periodes (match_id, equipe, periode, points,
				tirs_reussis, tirs_tentes,
				tirs_2pts_reussis, tirs_2pts_tentes,
				tirs_3pts_reussis, tirs_3pts_tentes,
				lf_reussis, lf_tentes,
				rebonds_off, rebonds_def, rebonds_tot,
				passes_decisives, interceptions, balles_perdues)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18)`),
			id, p.Team, p.Period, p.Points,
			p.FieldGoals.Made, p.FieldGoals.Attempted,
			p.TwoPoint.Made, p.TwoPoint.Attempted,
			p.ThreePoint.Made, p.ThreePoint.Attempted,
			p.FreeThrows.Made, p.FreeThrows.Attempted,
			p.OffRebounds, p.DefRebounds, p.TotRebounds,
			p.Assists, p.Steals, p.Turnovers)
		if err != nil {
			return common.WrapError(err, "insert period stat")
		}
	}

	for _, l := range m.Lineups {
		_, err := tx.ExecContext(ctx, rebind(r.driver,
			`INSERT INTO combinaisons_5 (match_id, equipe, joueurs,
				duree_secondes, points_marques, points_encaisses, plus_minus,
				points_par_minute, rebonds, passes_decisives, interceptions,
				balles_perdues)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`),
			id, l.Team, joinPlayers(l.Players),
			l.DurationSeconds, l.PointsFor, l.PointsAgainst, l.Net,
			l.PointsPerMinute, l.Rebounds, l.Assists, l.Steals, l.Turnovers)
		if err != nil {
			return common.WrapError(err, "insert lineup")
		}
	}
	return nil
}

func (r *matchRepository) GetMatch(ctx context.Context, id int64) (*entity.Match, error) {
	row := r.db.QueryRowContext(ctx, rebind(r.driver,
		`SELECT `+matchColumns+` FROM matchs WHERE id = $1`), id)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(err, "get match")
	}
	if err := r.loadChildren(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *matchRepository) ListMatches(ctx context.Context) ([]*entity.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+matchColumns+` FROM matchs ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, common.WrapError(err, "list matches")
	}
	defer rows.Close()

	var out []*entity.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan match")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *matchRepository) LatestMatch(ctx context.Context) (*entity.Match, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM matchs ORDER BY date DESC, id DESC LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(err, "latest match")
	}
	return r.GetMatch(ctx, id)
}

func (r *matchRepository) FindMatch(ctx context.Context, date, team string) (*entity.Match, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, rebind(r.driver,
		`SELECT id FROM matchs
		WHERE date = $1 AND (equipe_domicile LIKE '%' || $2 || '%'
			OR equipe_exterieur LIKE '%' || $2 || '%')
		ORDER BY id DESC LIMIT 1`), date, team).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(err, "find match")
	}
	return r.GetMatch(ctx, id)
}

func (r *matchRepository) PlayerHistory(ctx context.Context, name string) ([]PlayerGame, error) {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT m.id, m.date, m.equipe_domicile, m.equipe_exterieur, `+playerColumns(`s`)+`
		FROM stats_joueuses s JOIN matchs m ON m.id = s.match_id
		WHERE s.nom LIKE '%' || $1 || '%'
		ORDER BY m.date, m.id`), name)
	if err != nil {
		return nil, common.WrapError(err, "player history")
	}
	defer rows.Close()

	var out []PlayerGame
	for rows.Next() {
		var g PlayerGame
		pdest, nulls := playerDest(&g.Stat)
		dest := append([]any{&g.MatchID, &g.Date, &g.HomeTeam, &g.AwayTeam}, pdest...)
		if err := rows.Scan(dest...); err != nil {
			return nil, common.WrapError(err, "scan player history")
		}
		applyNulls(&g.Stat, nulls)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *matchRepository) DeleteMatch(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin delete transaction")
	}
	defer func() { _ = tx.Rollback() }()
	if err := r.deleteMatchTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.WrapError(err, "commit delete")
	}
	r.logger.Info("match.deleted", "match_id", id)
	return nil
}

// deleteMatchTx removes a match and its children. Children go first because
// sqlite does not enforce cascades unless foreign keys are enabled.
func (r *matchRepository) deleteMatchTx(ctx context.Context, tx *sql.Tx, id int64) error {
	for _, table := range []string{"sources", "stats_joueuses", "stats_equipes", "periodes", "combinaisons_5", "matchs"} {
		_, err := tx.ExecContext(ctx, rebind(r.driver,
			`DELETE FROM `+table+` WHERE `+idColumn(table)+` = $1`), id)
		if err != nil {
			return common.WrapError(err, "delete from "+table)
		}
	}
	return nil
}

func idColumn(table string) string {
	if table == "matchs" {
		return "id"
	}
	return "match_id"
}

func (r *matchRepository) loadChildren(ctx context.Context, m *entity.Match) error {
	if err := r.loadSources(ctx, m); err != nil {
		return err
	}
	if err := r.loadPlayers(ctx, m); err != nil {
		return err
	}
	if err := r.loadTeams(ctx, m); err != nil {
		return err
	}
	if err := r.loadPeriods(ctx, m); err != nil {
		return err
	}
	return r.loadLineups(ctx, m)
}

func (r *matchRepository) loadSources(ctx context.Context, m *entity.Match) error {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT fichier, url, type FROM sources WHERE match_id = $1 ORDER BY id`), m.ID)
	if err != nil {
		return common.WrapError(err, "load sources")
	}
	defer rows.Close()
	for rows.Next() {
		var src entity.SourceRef
		var url, typ sql.NullString
		if err := rows.Scan(&src.Filename, &url, &typ); err != nil {
			return common.WrapError(err, "scan source")
		}
		src.BlobURL = url.String
		src.DocType = entity.DocumentType(typ.String)
		m.SourceRefs = append(m.SourceRefs, src)
	}
	return rows.Err()
}

func (r *matchRepository) loadPlayers(ctx context.Context, m *entity.Match) error {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT `+playerColumns("")+` FROM stats_joueuses WHERE match_id = $1 ORDER BY id`), m.ID)
	if err != nil {
		return common.WrapError(err, "load players")
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.PlayerStat
		dest, nulls := playerDest(&p)
		if err := rows.Scan(dest...); err != nil {
			return common.WrapError(err, "scan player")
		}
		applyNulls(&p, nulls)
		m.Players = append(m.Players, p)
	}
	return rows.Err()
}

func (r *matchRepository) loadTeams(ctx context.Context, m *entity.Match) error {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT equipe, points, tirs_reussis, tirs_tentes,
			tirs_2pts_reussis, tirs_2pts_tentes,
			tirs_3pts_reussis, tirs_3pts_tentes,
			lf_reussis, lf_tentes,
			rebonds_off, rebonds_def, rebonds_tot,
			passes_decisives, interceptions, balles_perdues,
			contres, fautes_commises, evaluation
		FROM stats_equipes WHERE match_id = $1 ORDER BY id`), m.ID)
	if err != nil {
		return common.WrapError(err, "load teams")
	}
	defer rows.Close()
	for rows.Next() {
		var t entity.TeamStat
		if err := rows.Scan(&t.Team, &t.Points,
			&t.FieldGoals.Made, &t.FieldGoals.Attempted,
			&t.TwoPoint.Made, &t.TwoPoint.Attempted,
			&t.ThreePoint.Made, &t.ThreePoint.Attempted,
			&t.FreeThrows.Made, &t.FreeThrows.Attempted,
			&t.OffRebounds, &t.DefRebounds, &t.TotRebounds,
			&t.Assists, &t.Steals, &t.Turnovers,
			&t.Blocks, &t.FoulsCommitted, &t.Evaluation); err != nil {
			return common.WrapError(err, "scan team")
		}
		m.Teams = append(m.Teams, t)
	}
	return rows.Err()
}

func (r *matchRepository) loadPeriods(ctx context.Context, m *entity.Match) error {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT equipe, periode, points, tirs_reussis, tirs_tentes,
			tirs_2pts_reussis, tirs_2pts_tentes,
			tirs_3pts_reussis, tirs_3pts_tentes,
			lf_reussis, lf_tentes,
			rebonds_off, rebonds_def, rebonds_tot,
			passes_decisives, interceptions, balles_perdues
		FROM periodes WHERE match_id = $1 ORDER BY periode, id`), m.ID)
	if err != nil {
		return common.WrapError(err, "load periods")
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.PeriodStat
		if err := rows.Scan(&p.Team, &p.Period, &p.Points,
			&p.FieldGoals.Made, &p.FieldGoals.Attempted,
			&p.TwoPoint.Made, &p.TwoPoint.Attempted,
			&p.ThreePoint.Made, &p.ThreePoint.Attempted,
			&p.FreeThrows.Made, &p.FreeThrows.Attempted,
			&p.OffRebounds, &p.DefRebounds, &p.TotRebounds,
			&p.Assists, &p.Steals, &p.Turnovers); err != nil {
			return common.WrapError(err, "scan period")
		}
		m.Periods = append(m.Periods, p)
	}
	return rows.Err()
}

func (r *matchRepository) loadLineups(ctx context.Context, m *entity.Match) error {
	rows, err := r.db.QueryContext(ctx, rebind(r.driver,
		`SELECT equipe, joueurs, duree_secondes, points_marques,
			points_encaisses, plus_minus, points_par_minute,
			rebonds, passes_decisives, interceptions, balles_perdues
		FROM combinaisons_5 WHERE match_id = $1 ORDER BY id`), m.ID)
	if err != nil {
		return common.WrapError(err, "load lineups")
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.LineupStint
		var joined string
		if err := rows.Scan(&l.Team, &joined, &l.DurationSeconds,
			&l.PointsFor, &l.PointsAgainst, &l.Net, &l.PointsPerMinute,
			&l.Rebounds, &l.Assists, &l.Steals, &l.Turnovers); err != nil {
			return common.WrapError(err, "scan lineup")
		}
		l.Players = splitPlayers(joined)
		m.Lineups = append(m.Lineups, l)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*entity.Match, error) {
	var m entity.Match
	var matchNo, date, heure, comp, saison, lieu, ville, arbitres sql.NullString
	var scoreD, scoreE, q1d, q1e, q2d, q2e, q3d, q3e, q4d, q4e, affluence sql.NullInt64
	var avD, avE sql.NullString

	err := row.Scan(&m.ID, &matchNo, &date, &heure, &comp, &saison,
		&m.HomeTeam, &m.AwayTeam, &scoreD, &scoreE,
		&q1d, &q1e, &q2d, &q2e, &q3d, &q3e, &q4d, &q4e,
		&lieu, &ville, &affluence, &arbitres, &avD, &avE)
	if err != nil {
		return nil, err
	}

	m.MatchNo = matchNo.String
	m.Date = date.String
	m.Time = heure.String
	m.Competition = comp.String
	m.Season = saison.String
	m.HomeScore, m.AwayScore = nullInt(scoreD), nullInt(scoreE)
	m.Q1Home, m.Q1Away = nullInt(q1d), nullInt(q1e)
	m.Q2Home, m.Q2Away = nullInt(q2d), nullInt(q2e)
	m.Q3Home, m.Q3Away = nullInt(q3d), nullInt(q3e)
	m.Q4Home, m.Q4Away = nullInt(q4d), nullInt(q4e)
	m.Venue = lieu.String
	m.City = ville.String
	m.Attendance = nullInt(affluence)
	m.Officials = arbitres.String

	if m.HomeAdvanced, err = unmarshalAdvanced(avD); err != nil {
		return nil, err
	}
	if m.AwayAdvanced, err = unmarshalAdvanced(avE); err != nil {
		return nil, err
	}
	return &m, nil
}

func playerColumns(alias string) string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	cols := []string{"equipe", "numero", "nom", "cinq_de_depart",
		"minutes", "points", "tirs_reussis", "tirs_tentes",
		"tirs_2pts_reussis", "tirs_2pts_tentes",
		"tirs_3pts_reussis", "tirs_3pts_tentes",
		"lf_reussis", "lf_tentes",
		"tirs_2pts_int_reussis", "tirs_2pts_int_tentes",
		"tirs_2pts_ext_reussis", "tirs_2pts_ext_tentes", "dunks",
		"rebonds_off", "rebonds_def", "rebonds_tot",
		"passes_decisives", "interceptions", "balles_perdues",
		"contres", "contres_subis", "fautes_commises", "fautes_provoquees",
		"plus_moins", "evaluation"}
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += prefix + c
	}
	return out
}

// playerNulls holds the nullable columns of one player row between Scan and
// applyNulls.
type playerNulls struct {
	starter                          sql.NullInt64
	intMade, intAtt, extMade, extAtt sql.NullInt64
	dunks                            sql.NullInt64
}

func playerDest(p *entity.PlayerStat) ([]any, *playerNulls) {
	n := &playerNulls{}
	return []any{&p.Team, &p.Number, &p.Name, &n.starter,
		&p.Minutes, &p.Points, &p.FieldGoals.Made, &p.FieldGoals.Attempted,
		&p.TwoPoint.Made, &p.TwoPoint.Attempted,
		&p.ThreePoint.Made, &p.ThreePoint.Attempted,
		&p.FreeThrows.Made, &p.FreeThrows.Attempted,
		&n.intMade, &n.intAtt, &n.extMade, &n.extAtt, &n.dunks,
		&p.OffRebounds, &p.DefRebounds, &p.TotRebounds,
		&p.Assists, &p.Steals, &p.Turnovers,
		&p.Blocks, &p.BlocksReceived, &p.FoulsCommitted, &p.FoulsDrawn,
		&p.PlusMinus, &p.Evaluation}, n
}

func applyNulls(p *entity.PlayerStat, n *playerNulls) {
	p.Starter = n.starter.Int64 != 0
	if n.intMade.Valid && n.intAtt.Valid {
		p.TwoPointInterior = &entity.ShotLine{Made: int(n.intMade.Int64), Attempted: int(n.intAtt.Int64)}
	}
	if n.extMade.Valid && n.extAtt.Valid {
		p.TwoPointExterior = &entity.ShotLine{Made: int(n.extMade.Int64), Attempted: int(n.extAtt.Int64)}
	}
	p.Dunks = nullInt(n.dunks)
}

func marshalAdvanced(a entity.AdvancedStats) (any, error) {
	if a.Empty() {
		return nil, nil
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, common.WrapError(err, "encode advanced stats")
	}
	return string(raw), nil
}

func unmarshalAdvanced(s sql.NullString) (entity.AdvancedStats, error) {
	var a entity.AdvancedStats
	if !s.Valid || s.String == "" {
		return a, nil
	}
	if err := json.Unmarshal([]byte(s.String), &a); err != nil {
		return a, common.WrapError(err, "decode advanced stats")
	}
	return a, nil
}

func optInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinPlayers(players []string) string {
	return strings.Join(players, "/")
}

func splitPlayers(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "/")
}
