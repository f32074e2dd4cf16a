package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"garage/internal/sqlinline"
)

// DB is satisfied by *pgxpool.Pool and pgx.Conn.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Apply runs every migration not yet recorded in schema_migrations, each in
// its own transaction, and returns the versions it applied.
func Apply(ctx context.Context, db DB, logger zerolog.Logger) ([]string, error) {
	all, err := All()
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ctx, sqlinline.QEnsureSchemaMigrations); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	rows, err := db.Query(ctx, sqlinline.QSelectAppliedMigrations)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	done, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	var ran []string
	for _, m := range Pending(all, applied) {
		err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, sqlinline.QInsertAppliedMigration, m.Version)
			return err
		})
		if err != nil {
			return ran, fmt.Errorf("apply %s: %w", m.Version, err)
		}
		logger.Info().Str("version", m.Version).Msg("migration applied")
		ran = append(ran, m.Version)
	}
	return ran, nil
}

// Pending filters out migrations whose version is already applied.
func Pending(all []Migration, applied map[string]bool) []Migration {
	var out []Migration
	for _, m := range all {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}
