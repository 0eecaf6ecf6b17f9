package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCaseSeq(db); err != nil {
		return fmt.Errorf("backfilling case seq values: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cases (
		id                             TEXT PRIMARY KEY,
		name                           TEXT NOT NULL UNIQUE,
		case_type                      TEXT NOT NULL DEFAULT '',
		entity_count                   REAL NOT NULL DEFAULT 0,
		system_count                   REAL NOT NULL DEFAULT 0,
		actual_shared_system_count     REAL NOT NULL DEFAULT 0,
		systems_shared_across_entities TEXT NOT NULL DEFAULT ''
		                               CHECK(systems_shared_across_entities IN ('','yes','no')),
		system_customized              TEXT NOT NULL DEFAULT ''
		                               CHECK(system_customized IN ('','yes','no')),
		flagged_for_review             TEXT NOT NULL DEFAULT ''
		                               CHECK(flagged_for_review IN ('','yes','no')),
		is_pcaob_case                  TEXT NOT NULL DEFAULT ''
		                               CHECK(is_pcaob_case IN ('','yes','no')),
		prior_pm_changed               TEXT NOT NULL DEFAULT ''
		                               CHECK(prior_pm_changed IN ('','yes','no')),
		ipo_filing_type                TEXT NOT NULL DEFAULT '',
		ipo_complex_security           TEXT NOT NULL DEFAULT ''
		                               CHECK(ipo_complex_security IN ('','yes','no')),
		ipo_first_review               TEXT NOT NULL DEFAULT ''
		                               CHECK(ipo_first_review IN ('','yes','no')),
		itac_question_count            REAL NOT NULL DEFAULT 0,
		itac_first_review              TEXT NOT NULL DEFAULT ''
		                               CHECK(itac_first_review IN ('','yes','no')),
		gc_first_review                TEXT NOT NULL DEFAULT ''
		                               CHECK(gc_first_review IN ('','yes','no')),
		caats_first_review             TEXT NOT NULL DEFAULT ''
		                               CHECK(caats_first_review IN ('','yes','no')),
		created_at                     TEXT NOT NULL,
		updated_at                     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cases_case_type ON cases(case_type)`,

	// Assignment lists are stored as comma-joined names.
	`CREATE TABLE IF NOT EXISTS assignments (
		case_name  TEXT PRIMARY KEY,
		pms        TEXT NOT NULL DEFAULT '',
		staff      TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,

	// No foreign key: shares may outlive their case and are then skipped by
	// the aggregator.
	`CREATE TABLE IF NOT EXISTS workload_shares (
		case_name  TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		percentage REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (case_name, staff_name)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workload_shares_staff ON workload_shares(staff_name)`,

	`CREATE TABLE IF NOT EXISTS price_quotes (
		case_name  TEXT PRIMARY KEY,
		price      REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS roster (
		id         TEXT PRIMARY KEY,
		role       TEXT NOT NULL CHECK(role IN ('PM','Staff')),
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (role, name)
	)`,

	// Import ordering and provenance.
	`ALTER TABLE cases ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE cases ADD COLUMN source_file TEXT NOT NULL DEFAULT ''`,

	// Budget page: estimated hours alongside the quote.
	`ALTER TABLE price_quotes ADD COLUMN estimated_hours REAL NOT NULL DEFAULT 0`,
}

// migrateBackfillCaseSeq numbers cases that predate the seq column, in
// creation order, after any already numbered rows. Idempotent.
func migrateBackfillCaseSeq(db *sql.DB) error {
	ctx := context.Background()

	var pending int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases WHERE seq = 0`).Scan(&pending); err != nil {
		return fmt.Errorf("checking case seq: %w", err)
	}
	if pending == 0 {
		return nil
	}

	var maxSeq int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM cases`).Scan(&maxSeq); err != nil {
		return fmt.Errorf("reading max case seq: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM cases WHERE seq = 0 ORDER BY created_at, name`)
	if err != nil {
		return fmt.Errorf("listing unnumbered cases: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning case id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()

	for i, id := range ids {
		if _, err := db.ExecContext(ctx, `UPDATE cases SET seq = ? WHERE id = ? AND seq = 0`, maxSeq+i+1, id); err != nil {
			return fmt.Errorf("updating case seq: %w", err)
		}
	}
	return nil
}
