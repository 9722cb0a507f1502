package sqlite

// Schema is the SQLite schema for the Curator item store. All statements are
// idempotent so the schema can be applied on every open.
const Schema = `
CREATE TABLE IF NOT EXISTS items (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	content         TEXT NOT NULL DEFAULT '',
	kind            TEXT NOT NULL DEFAULT 'note',
	tags            TEXT NOT NULL DEFAULT '[]',

	sr_enabled      INTEGER NOT NULL DEFAULT 1,
	ease_factor     REAL NOT NULL DEFAULT 2.5,
	interval_days   INTEGER NOT NULL DEFAULT 0,
	repetitions     INTEGER NOT NULL DEFAULT 0,
	last_review     TIMESTAMP,
	next_review     TIMESTAMP,
	total_reviews   INTEGER NOT NULL DEFAULT 0,
	average_quality REAL NOT NULL DEFAULT 0,
	review_history  TEXT NOT NULL DEFAULT '[]',

	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_next_review ON items(next_review);
CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);
CREATE INDEX IF NOT EXISTS idx_items_sr_enabled ON items(sr_enabled);
`
