// Package migrations holds the versioned PostgreSQL schema for jobs and post
// areas and applies it through database/sql.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"job-posting-backend/pkg/logger"
)

type Migration struct {
	Version     int
	Description string
	Up          string
}

// All lists every migration in the order it must be applied.
var All = []Migration{
	{
		Version:     1,
		Description: "create post_areas table",
		Up: `
			CREATE TABLE IF NOT EXISTS post_areas (
				id         UUID PRIMARY KEY,
				name       VARCHAR(128) NOT NULL UNIQUE,
				parent_id  UUID REFERENCES post_areas(id) ON DELETE SET NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS post_areas_parent_id_idx ON post_areas (parent_id);`,
	},
	{
		Version:     2,
		Description: "create jobs table",
		Up: `
			CREATE TABLE IF NOT EXISTS jobs (
				id                  UUID PRIMARY KEY,
				title               VARCHAR(128) NOT NULL,
				email               VARCHAR(254) NOT NULL,
				avatar              TEXT,
				company             TEXT,
				city                TEXT,
				state               TEXT,
				country             TEXT,
				postal_code         TEXT,
				post_category_id    UUID REFERENCES post_areas(id) ON DELETE SET NULL,
				post_subcategory_id UUID REFERENCES post_areas(id) ON DELETE SET NULL,
				payment_comission   SMALLINT,
				date_start          TIMESTAMPTZ NOT NULL,
				date_end            TIMESTAMPTZ NOT NULL,
				address             VARCHAR(128),
				phone               VARCHAR(32),
				cellphone           VARCHAR(32),
				description         TEXT,
				terms               TEXT,
				amount_to_pay       SMALLINT NOT NULL CHECK (amount_to_pay >= 0),
				slug                VARCHAR(165) UNIQUE,
				deleted             BOOLEAN NOT NULL DEFAULT FALSE,
				created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS jobs_title_idx ON jobs (title);
			CREATE INDEX IF NOT EXISTS jobs_amount_to_pay_idx ON jobs (amount_to_pay);
			CREATE INDEX IF NOT EXISTS jobs_date_end_brin ON jobs USING BRIN (date_end);
			CREATE INDEX IF NOT EXISTS jobs_created_at_brin ON jobs USING BRIN (created_at);
			CREATE INDEX IF NOT EXISTS jobs_post_category_idx ON jobs (post_category_id);
			CREATE INDEX IF NOT EXISTS jobs_post_subcategory_idx ON jobs (post_subcategory_id);`,
	},
}

// Migrator records applied versions in schema_migrations.
type Migrator struct {
	db *sql.DB
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("migrations: create table: %w", err)
	}
	return nil
}

func (m *Migrator) AppliedVersions(ctx context.Context) (map[int]struct{}, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("migrations: list applied: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

// Apply runs a single migration and records it in one transaction.
func (m *Migrator) Apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.Up); err != nil {
		return fmt.Errorf("migrations: apply %d: %w", mig.Version, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
		mig.Version, mig.Description,
	); err != nil {
		return fmt.Errorf("migrations: record %d: %w", mig.Version, err)
	}
	return tx.Commit()
}

// Run applies every pending migration in order.
func (m *Migrator) Run(ctx context.Context, migrations []Migration) error {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return err
	}
	applied, err := m.AppliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if _, ok := applied[mig.Version]; ok {
			logger.Log.Info("Migration already applied", "version", mig.Version, "description", mig.Description)
			continue
		}
		logger.Log.Info("Applying migration", "version", mig.Version, "description", mig.Description)
		if err := m.Apply(ctx, mig); err != nil {
			return err
		}
	}

	logger.Log.Info("All migrations completed successfully")
	return nil
}
