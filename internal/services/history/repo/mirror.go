package repo

import (
	"context"
	"time"

	"bulkdate/internal/platform/store"
	ptime "bulkdate/internal/platform/time"
	"bulkdate/internal/services/history/domain"
)

// MirrorTable is the clickhouse append only copy of the ledger
const MirrorTable = "bd_date_history_log"

// mirrorDDL keeps every recorded row, including those later swept or restored
const mirrorDDL = `CREATE TABLE IF NOT EXISTS ` + MirrorTable + ` (
	id Int64,
	post_id Int64,
	post_title String,
	post_type LowCardinality(String),
	previous_date String,
	new_date String,
	date_field LowCardinality(String),
	modified_by Int64,
	modified_at DateTime
) ENGINE = MergeTree
ORDER BY (modified_at, post_id)`

// Mirror receives a copy of every recorded row
type Mirror interface {
	Append(ctx context.Context, rec domain.Record) error
}

// NoMirror drops everything
type NoMirror struct{}

// Append does nothing
func (NoMirror) Append(context.Context, domain.Record) error { return nil }

// CHMirror appends rows to clickhouse
type CHMirror struct{ ch store.Clickhouse }

// NewMirror returns a clickhouse mirror, or NoMirror when ch is nil
func NewMirror(ch store.Clickhouse) Mirror {
	if ch == nil {
		return NoMirror{}
	}
	return &CHMirror{ch: ch}
}

// Ensure creates the mirror table
func (m *CHMirror) Ensure(ctx context.Context) error {
	return m.ch.Exec(ctx, mirrorDDL)
}

// Append inserts one row in table column order
func (m *CHMirror) Append(ctx context.Context, rec domain.Record) error {
	at, err := ptime.Parse(rec.ModifiedAt, time.UTC)
	if err != nil {
		return err
	}
	return m.ch.Insert(ctx, MirrorTable, [][]any{{
		rec.ID, rec.PostID, rec.PostTitle, rec.PostType,
		rec.PreviousDate, rec.NewDate, rec.DateField, rec.ModifiedBy, at,
	}})
}
