package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// EnsureSchema creates the tables and indexes if they do not exist. The DDL
// is shared between postgres and sqlite except for the primary key column.
func EnsureSchema(ctx context.Context, db *sql.DB, dsn string, logger *slog.Logger) error {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driverFor(dsn) == "pgx" {
		pk = "BIGSERIAL PRIMARY KEY"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS matchs (
			id %s,
			match_no TEXT,
			date TEXT,
			heure TEXT,
			competition TEXT,
			saison TEXT,
			equipe_domicile TEXT NOT NULL,
			equipe_exterieur TEXT NOT NULL,
			score_domicile INTEGER,
			score_exterieur INTEGER,
			q1_domicile INTEGER, q1_exterieur INTEGER,
			q2_domicile INTEGER, q2_exterieur INTEGER,
			q3_domicile INTEGER, q3_exterieur INTEGER,
			q4_domicile INTEGER, q4_exterieur INTEGER,
			lieu TEXT,
			ville TEXT,
			affluence INTEGER,
			arbitres TEXT,
			stats_avancees_domicile TEXT,
			stats_avancees_exterieur TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, pk),
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_matchs_identite
			ON matchs (date, equipe_domicile, equipe_exterieur)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sources (
			id %s,
			match_id INTEGER NOT NULL REFERENCES matchs(id) ON DELETE CASCADE,
			fichier TEXT NOT NULL,
			url TEXT,
			type TEXT
		)`, pk),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS stats_joueuses (
			id %s,
			match_id INTEGER NOT NULL REFERENCES matchs(id) ON DELETE CASCADE,
			equipe TEXT NOT NULL,
			numero INTEGER,
			nom TEXT NOT NULL,
			cinq_de_depart INTEGER NOT NULL DEFAULT 0,
			minutes INTEGER,
			points INTEGER,
			tirs_reussis INTEGER, tirs_tentes INTEGER,
			tirs_2pts_reussis INTEGER, tirs_2pts_tentes INTEGER,
			tirs_3pts_reussis INTEGER, tirs_3pts_tentes INTEGER,
			lf_reussis INTEGER, lf_tentes INTEGER,
			tirs_2pts_int_reussis INTEGER, tirs_2pts_int_tentes INTEGER,
			tirs_2pts_ext_reussis INTEGER, tirs_2pts_ext_tentes INTEGER,
			dunks INTEGER,
			rebonds_off INTEGER, rebonds_def INTEGER, rebonds_tot INTEGER,
			passes_decisives INTEGER,
			interceptions INTEGER,
			balles_perdues INTEGER,
			contres INTEGER,
			contres_subis INTEGER,
			fautes_commises INTEGER,
			fautes_provoquees INTEGER,
			plus_moins INTEGER,
			evaluation INTEGER
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_joueuses_match ON stats_joueuses (match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_joueuses_nom ON stats_joueuses (nom)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS stats_equipes (
			id %s,
			match_id INTEGER NOT NULL REFERENCES matchs(id) ON DELETE CASCADE,
			equipe TEXT NOT NULL,
			points INTEGER,
			tirs_reussis INTEGER, tirs_tentes INTEGER,
			tirs_2pts_reussis INTEGER, tirs_2pts_tentes INTEGER,
			tirs_3pts_reussis INTEGER, tirs_3pts_tentes INTEGER,
			lf_reussis INTEGER, lf_tentes INTEGER,
			rebonds_off INTEGER, rebonds_def INTEGER, rebonds_tot INTEGER,
			passes_decisives INTEGER,
			interceptions INTEGER,
			balles_perdues INTEGER,
			contres INTEGER,
			fautes_commises INTEGER,
			evaluation INTEGER
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_equipes_match ON stats_equipes (match_id)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS periodes (
			id %s,
			match_id INTEGER NOT NULL REFERENCES matchs(id) ON DELETE CASCADE,
			equipe TEXT NOT NULL,
			periode INTEGER NOT NULL,
			points INTEGER,
			tirs_reussis INTEGER, tirs_tentes INTEGER,
			tirs_2pts_reussis INTEGER, tirs_2pts_tentes INTEGER,
			tirs_3pts_reussis INTEGER, tirs_3pts_tentes INTEGER,
			lf_reussis INTEGER, lf_tentes INTEGER,
			rebonds_off INTEGER, rebonds_def INTEGER, rebonds_tot INTEGER,
			passes_decisives INTEGER,
			interceptions INTEGER,
			balles_perdues INTEGER
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_periodes_match ON periodes (match_id)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS combinaisons_5 (
			id %s,
			match_id INTEGER NOT NULL REFERENCES matchs(id) ON DELETE CASCADE,
			equipe TEXT NOT NULL,
			joueurs TEXT NOT NULL,
			duree_secondes INTEGER,
			points_marques INTEGER,
			points_encaisses INTEGER,
			plus_minus INTEGER,
			points_par_minute REAL,
			rebonds INTEGER,
			passes_decisives INTEGER,
			interceptions INTEGER,
			balles_perdues INTEGER
		)`, pk),
		`CREATE INDEX IF NOT EXISTS idx_combinaisons_match ON combinaisons_5 (match_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("db.schema", "error", err)
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	logger.Info("db.schema.ready")
	return nil
}
