package database

import "database/sql"

// lead_events deliberately has no foreign key on lead_id: events are
// independent facts and may reference leads that never landed or arrived
// out of order. Reads tolerate the dangling ids instead.
const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id            BIGSERIAL PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT,
	phone         TEXT,
	source        TEXT,
	goal          TEXT,
	consent       BOOLEAN NOT NULL DEFAULT FALSE,
	practice_code TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_leads_practice_code ON leads (practice_code);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads (created_at);
CREATE INDEX IF NOT EXISTS idx_leads_email_lower ON leads (LOWER(email));

CREATE TABLE IF NOT EXISTS lead_events (
	id            BIGSERIAL PRIMARY KEY,
	lead_id       BIGINT,
	practice_code TEXT NOT NULL,
	event_type    TEXT NOT NULL,
	actor         TEXT NOT NULL DEFAULT 'system',
	occurred_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	metadata      JSONB NOT NULL DEFAULT '{}'::jsonb
);

CREATE INDEX IF NOT EXISTS idx_lead_events_practice_time ON lead_events (practice_code, occurred_at);
CREATE INDEX IF NOT EXISTS idx_lead_events_lead_id ON lead_events (lead_id);

CREATE TABLE IF NOT EXISTS practices (
	code            TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	email           TEXT,
	notify_by_email BOOLEAN NOT NULL DEFAULT TRUE
);
`

// InitSchema creates the tables on boot. Everything is IF NOT EXISTS, so
// restarting against an existing database is a no-op.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
