// Package repokit holds the seams repositories are written against
package repokit

import "bulkdate/internal/platform/store"

// Repos never import a driver; they see the store seam through these aliases
type (
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)
