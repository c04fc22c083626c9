package repo

import "bulkdate/internal/platform/store"

// Migrations creates the entity tables
var Migrations = []store.Migration{
	{
		ID: "0001_entities",
		Postgres: []string{
			`CREATE TABLE IF NOT EXISTS bd_posts (
				id BIGSERIAL PRIMARY KEY,
				post_title TEXT NOT NULL DEFAULT '',
				post_type TEXT NOT NULL DEFAULT 'post',
				post_status TEXT NOT NULL DEFAULT 'publish',
				post_date TEXT NOT NULL,
				post_date_gmt TEXT NOT NULL,
				post_modified TEXT NOT NULL,
				post_modified_gmt TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS bd_posts_type_status_idx ON bd_posts (post_type, post_status)`,
			`CREATE TABLE IF NOT EXISTS bd_comments (
				id BIGSERIAL PRIMARY KEY,
				post_id BIGINT NOT NULL REFERENCES bd_posts(id) ON DELETE CASCADE,
				comment_approved TEXT NOT NULL DEFAULT '1',
				comment_date TEXT NOT NULL,
				comment_date_gmt TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS bd_comments_post_idx ON bd_comments (post_id)`,
			`CREATE TABLE IF NOT EXISTS bd_term_relationships (
				post_id BIGINT NOT NULL REFERENCES bd_posts(id) ON DELETE CASCADE,
				taxonomy TEXT NOT NULL,
				term_id BIGINT NOT NULL,
				term_slug TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (post_id, taxonomy, term_id)
			)`,
		},
		SQLite: []string{
			`CREATE TABLE IF NOT EXISTS bd_posts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				post_title TEXT NOT NULL DEFAULT '',
				post_type TEXT NOT NULL DEFAULT 'post',
				post_status TEXT NOT NULL DEFAULT 'publish',
				post_date TEXT NOT NULL,
				post_date_gmt TEXT NOT NULL,
				post_modified TEXT NOT NULL,
				post_modified_gmt TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS bd_posts_type_status_idx ON bd_posts (post_type, post_status)`,
			`CREATE TABLE IF NOT EXISTS bd_comments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				post_id INTEGER NOT NULL REFERENCES bd_posts(id) ON DELETE CASCADE,
				comment_approved TEXT NOT NULL DEFAULT '1',
				comment_date TEXT NOT NULL,
				comment_date_gmt TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS bd_comments_post_idx ON bd_comments (post_id)`,
			`CREATE TABLE IF NOT EXISTS bd_term_relationships (
				post_id INTEGER NOT NULL REFERENCES bd_posts(id) ON DELETE CASCADE,
				taxonomy TEXT NOT NULL,
				term_id INTEGER NOT NULL,
				term_slug TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (post_id, taxonomy, term_id)
			)`,
		},
	},
}
