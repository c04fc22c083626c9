package domain

import (
	"context"

	setdomain "bulkdate/internal/services/settings/domain"
)

// ServicePort is the ledger surface exposed over http and the cli
type ServicePort interface {
	List(ctx context.Context, q ListQuery) (Page, error)
	Types(ctx context.Context) ([]string, error)
	Restore(ctx context.Context, id int64) (RestoreResult, error)
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
	Sweep(ctx context.Context) (SweepResult, error)
}

// Recorder appends ledger rows; settings are passed in, never looked up
type Recorder interface {
	Record(ctx context.Context, set setdomain.Settings, rec NewRecord) (int64, error)
}

// PostWriter rewrites post date fields; restore binds it to its tx
type PostWriter interface {
	WritePostDates(ctx context.Context, id int64, fields []string, local, gmt string) error
}

// SettingsLoader provides the retention period for standalone sweeps
type SettingsLoader interface {
	Get(ctx context.Context) (setdomain.Settings, error)
}
