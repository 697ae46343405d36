package store

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	address TEXT NOT NULL,
	kind TEXT NOT NULL, -- risk, holders
	risk_score TEXT,
	rugged INTEGER NOT NULL DEFAULT 0,
	top_total TEXT,
	report TEXT NOT NULL,
	created_at INTEGER NOT NULL -- unix ms
);

CREATE INDEX IF NOT EXISTS idx_snapshots_address_kind ON snapshots(address, kind, id);

CREATE TABLE IF NOT EXISTS watchlist (
	address TEXT PRIMARY KEY,
	label TEXT NOT NULL DEFAULT '',
	added_at INTEGER NOT NULL -- unix ms
);
`
