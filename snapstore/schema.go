package snapstore

// Schema is applied on open. One row per captured snapshot; the raw HTML is
// the immutable asset, analysis output is never stored here.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL,
	url         TEXT NOT NULL DEFAULT '',
	html        BLOB NOT NULL,
	html_hash   TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_label ON snapshots(label, created_at DESC);
`
