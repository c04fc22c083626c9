package repo

import "bulkdate/internal/platform/store"

// Migrations creates the ledger table
var Migrations = []store.Migration{
	{
		ID: "0003_date_history",
		Postgres: []string{
			`CREATE TABLE IF NOT EXISTS bd_date_history (
				id BIGSERIAL PRIMARY KEY,
				post_id BIGINT NOT NULL,
				post_title TEXT NOT NULL DEFAULT '',
				post_type TEXT NOT NULL,
				previous_date TEXT NOT NULL,
				new_date TEXT NOT NULL,
				date_field TEXT NOT NULL,
				modified_by BIGINT NOT NULL DEFAULT 0,
				modified_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS bd_date_history_post_idx ON bd_date_history (post_id)`,
			`CREATE INDEX IF NOT EXISTS bd_date_history_type_idx ON bd_date_history (post_type)`,
			`CREATE INDEX IF NOT EXISTS bd_date_history_modified_idx ON bd_date_history (modified_at)`,
		},
		SQLite: []string{
			`CREATE TABLE IF NOT EXISTS bd_date_history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				post_id INTEGER NOT NULL,
				post_title TEXT NOT NULL DEFAULT '',
				post_type TEXT NOT NULL,
				previous_date TEXT NOT NULL,
				new_date TEXT NOT NULL,
				date_field TEXT NOT NULL,
				modified_by INTEGER NOT NULL DEFAULT 0,
				modified_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS bd_date_history_post_idx ON bd_date_history (post_id)`,
			`CREATE INDEX IF NOT EXISTS bd_date_history_type_idx ON bd_date_history (post_type)`,
			`CREATE INDEX IF NOT EXISTS bd_date_history_modified_idx ON bd_date_history (modified_at)`,
		},
	},
}
