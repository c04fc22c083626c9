package repo

import "bulkdate/internal/platform/store"

// Migrations creates the options table
var Migrations = []store.Migration{
	{
		ID: "0002_options",
		Postgres: []string{
			`CREATE TABLE IF NOT EXISTS bd_options (
				option_name TEXT PRIMARY KEY,
				option_value TEXT NOT NULL DEFAULT ''
			)`,
		},
		SQLite: []string{
			`CREATE TABLE IF NOT EXISTS bd_options (
				option_name TEXT PRIMARY KEY,
				option_value TEXT NOT NULL DEFAULT ''
			)`,
		},
	},
}
