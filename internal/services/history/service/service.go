// Package service implements the date history ledger: recording, retention,
// listing and point in time restore
package service

import (
	"context"
	"errors"
	"time"

	"bulkdate/internal/modkit/repokit"
	"bulkdate/internal/platform/cache"
	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/metrics"
	ptime "bulkdate/internal/platform/time"
	entdomain "bulkdate/internal/services/entities/domain"
	"bulkdate/internal/services/history/domain"
	"bulkdate/internal/services/history/repo"
	setdomain "bulkdate/internal/services/settings/domain"
)

// Service defines the ledger contract
type Service interface {
	domain.ServicePort
	domain.Recorder
}

// Options carries the collaborators
type Options struct {
	// Posts rewrites a date field during restore, bound to the restore tx
	Posts repokit.Binder[domain.PostWriter]

	// Settings supplies retention for sweeps not triggered by a record
	Settings domain.SettingsLoader

	Mirror   repo.Mirror
	Cache    cache.Cache
	Metrics  metrics.Recorder
	Clock    ptime.Clock
	Loc      *time.Location
	PageSize int
	Log      logger.Logger
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	opt    Options
	log    logger.Logger
}

// New creates a new history service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("history.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("history.Service requires a non nil Repo binder")
	}
	if opt.Posts == nil {
		panic("history.Service requires a PostWriter binder")
	}
	if opt.Mirror == nil {
		opt.Mirror = repo.NoMirror{}
	}
	if opt.Cache == nil {
		opt.Cache = cache.Noop{}
	}
	if opt.Metrics == nil {
		opt.Metrics = metrics.Noop{}
	}
	if opt.Clock == nil {
		opt.Clock = ptime.System{}
	}
	if opt.Loc == nil {
		opt.Loc = time.UTC
	}
	if opt.PageSize <= 0 {
		opt.PageSize = domain.DefaultPageSize
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		opt:    opt,
		log:    opt.Log.With().Str("mod", "history").Logger(),
	}
}

// Record appends one row, mirrors it and sweeps expired rows.
// It returns domain.ErrDisabled without writing when history is off
func (s *Svc) Record(ctx context.Context, set setdomain.Settings, rec domain.NewRecord) (int64, error) {
	if !set.HistoryEnabled {
		return 0, domain.ErrDisabled
	}

	at := ptime.FormatGMT(s.opt.Clock.Now())
	id, err := s.Repo.Insert(ctx, rec, at)
	if err != nil {
		return 0, err
	}
	s.opt.Metrics.HistoryOp(domain.OpRecorded, 1)

	row := domain.Record{
		ID: id, PostID: rec.PostID, PostTitle: rec.PostTitle, PostType: rec.PostType,
		PreviousDate: rec.PreviousDate, NewDate: rec.NewDate, DateField: rec.DateField,
		ModifiedBy: rec.ModifiedBy, ModifiedAt: at,
	}
	if err := s.opt.Mirror.Append(ctx, row); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("history mirror append failed")
	}

	if _, err := s.sweep(ctx, set.RetentionDays); err != nil {
		s.log.Warn().Err(err).Msg("retention sweep after record failed")
	}
	return id, nil
}

// Sweep deletes rows older than the configured retention
func (s *Svc) Sweep(ctx context.Context) (domain.SweepResult, error) {
	days := setdomain.DefaultRetention
	if s.opt.Settings != nil {
		set, err := s.opt.Settings.Get(ctx)
		if err != nil {
			return domain.SweepResult{}, err
		}
		days = set.RetentionDays
	}
	n, err := s.sweep(ctx, days)
	if err != nil {
		return domain.SweepResult{}, err
	}
	return domain.SweepResult{Deleted: n, RetentionDays: days}, nil
}

func (s *Svc) sweep(ctx context.Context, days int) (int64, error) {
	days = setdomain.NormalizeRetention(days)
	cutoff := s.opt.Clock.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	n, err := s.Repo.DeleteBefore(ctx, ptime.FormatGMT(cutoff))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.opt.Metrics.HistoryOp(domain.OpSwept, int(n))
		s.log.Debug().Int64("deleted", n).Int("retention_days", days).Msg("history swept")
	}
	return n, nil
}

// List pages the ledger with display labels
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	q = q.Normalize(s.opt.PageSize)
	for field, v := range map[string]string{"date_from": q.DateFrom, "date_to": q.DateTo} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, v); err != nil {
			return domain.Page{}, perr.WithField(perr.InvalidArgf("%s must be YYYY-MM-DD", field), field)
		}
	}

	recs, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.Page{}, err
	}
	rows := make([]domain.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, domain.RowOf(r))
	}
	return domain.NewPage(rows, total, q.Page, q.PageSize), nil
}

// Types lists the entity types present in the ledger
func (s *Svc) Types(ctx context.Context) ([]string, error) {
	out, err := s.Repo.Types(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Restore writes a row's previous value back and deletes the row in one
// transaction, then drops the entity from the cache
func (s *Svc) Restore(ctx context.Context, id int64) (domain.RestoreResult, error) {
	var rec domain.Record
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		var err error
		if rec, err = r.Get(ctx, id); err != nil {
			return err
		}
		gmt, err := ptime.LocalToGMT(rec.PreviousDate, s.opt.Loc)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "history record %d has unreadable date %q", id, rec.PreviousDate)
		}
		if err := s.opt.Posts.Bind(q).WritePostDates(ctx, rec.PostID, []string{rec.DateField}, rec.PreviousDate, gmt); err != nil {
			return err
		}
		return r.Delete(ctx, id)
	})
	if err != nil {
		return domain.RestoreResult{}, err
	}

	s.opt.Cache.Invalidate(entdomain.CacheKey(entdomain.KindPost, rec.PostID))
	s.opt.Metrics.HistoryOp(domain.OpRestored, 1)
	s.log.Info().Int64("id", id).Int64("post_id", rec.PostID).Str("field", rec.DateField).Msg("history restored")

	return domain.RestoreResult{
		ID:         id,
		PostID:     rec.PostID,
		DateField:  rec.DateField,
		RestoredTo: rec.PreviousDate,
		Message:    "Date restored successfully.",
	}, nil
}

// Remove deletes one row without touching the entity
func (s *Svc) Remove(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.opt.Metrics.HistoryOp(domain.OpRemoved, 1)
	return nil
}

// Clear deletes every row
func (s *Svc) Clear(ctx context.Context) (int64, error) {
	n, err := s.Repo.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.opt.Metrics.HistoryOp(domain.OpCleared, int(n))
	s.log.Info().Int64("deleted", n).Msg("history cleared")
	return n, nil
}

// IsDisabled reports whether err is the disabled signal from Record
func IsDisabled(err error) bool { return errors.Is(err, domain.ErrDisabled) }
