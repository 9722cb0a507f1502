// Package postgres provides a PostgreSQL implementation of the storage
// interfaces.
package postgres

// Schema is the PostgreSQL schema for the Curator item store. All statements
// are idempotent so the schema can be applied on every open.
const Schema = `
CREATE TABLE IF NOT EXISTS items (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	content         TEXT NOT NULL DEFAULT '',
	kind            TEXT NOT NULL DEFAULT 'note',
	tags            JSONB NOT NULL DEFAULT '[]',

	sr_enabled      BOOLEAN NOT NULL DEFAULT TRUE,
	ease_factor     DOUBLE PRECISION NOT NULL DEFAULT 2.5,
	interval_days   INTEGER NOT NULL DEFAULT 0,
	repetitions     INTEGER NOT NULL DEFAULT 0,
	last_review     TIMESTAMPTZ,
	next_review     TIMESTAMPTZ,
	total_reviews   INTEGER NOT NULL DEFAULT 0,
	average_quality DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_history  JSONB NOT NULL DEFAULT '[]',

	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_items_next_review ON items(next_review);
CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);
CREATE INDEX IF NOT EXISTS idx_items_sr_enabled ON items(sr_enabled);
`
