package store

const Schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS registrations (
	id TEXT PRIMARY KEY,
	step INTEGER NOT NULL,
	status TEXT NOT NULL,
	date TEXT NOT NULL,
	amount REAL NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_registrations_date ON registrations(date);
`
