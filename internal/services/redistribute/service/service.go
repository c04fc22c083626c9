// Package service runs date redistributions: it resolves the operator's
// range, selects the targets and applies fresh random dates to them
package service

import (
	"context"
	"fmt"
	"time"

	"bulkdate/internal/core/daterange"
	"bulkdate/internal/core/sampler"
	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/metrics"
	ptime "bulkdate/internal/platform/time"
	entdomain "bulkdate/internal/services/entities/domain"
	hdomain "bulkdate/internal/services/history/domain"
	"bulkdate/internal/services/redistribute/domain"
	setdomain "bulkdate/internal/services/settings/domain"

	"github.com/google/uuid"
)

// Defaults for batch pacing
const (
	DefaultChunkSize       = 50
	DefaultInvalidateEvery = 10
)

// Service defines the redistribution contract
type Service interface {
	domain.ServicePort
	Apply(ctx context.Context, targets []domain.Target, plan domain.Plan, set setdomain.Settings) []domain.ItemResult
}

// Options carries the collaborators
type Options struct {
	Entities domain.Entities
	History  hdomain.Recorder
	Settings hdomain.SettingsLoader

	Cache   domain.Cache
	Metrics metrics.Recorder
	Sampler *sampler.Sampler
	Clock   ptime.Clock
	Loc     *time.Location

	ChunkSize       int
	InvalidateEvery int
	Log             logger.Logger
}

// Svc implements the Service interface
type Svc struct {
	opt      Options
	resolver daterange.Resolver
	log      logger.Logger
}

type noCache struct{}

func (noCache) Invalidate(string) {}
func (noCache) Flush()            {}

// New creates a redistribution service
func New(opt Options) *Svc {
	if opt.Entities == nil {
		panic("redistribute.Service requires an Entities port")
	}
	if opt.History == nil {
		panic("redistribute.Service requires a History recorder")
	}
	if opt.Settings == nil {
		panic("redistribute.Service requires a Settings loader")
	}
	if opt.Loc == nil {
		opt.Loc = time.UTC
	}
	if opt.Cache == nil {
		opt.Cache = noCache{}
	}
	if opt.Metrics == nil {
		opt.Metrics = metrics.Noop{}
	}
	if opt.Sampler == nil {
		opt.Sampler = sampler.New(nil, opt.Loc)
	}
	if opt.Clock == nil {
		opt.Clock = ptime.System{}
	}
	if opt.ChunkSize <= 0 {
		opt.ChunkSize = DefaultChunkSize
	}
	if opt.InvalidateEvery <= 0 {
		opt.InvalidateEvery = DefaultInvalidateEvery
	}
	return &Svc{
		opt:      opt,
		resolver: daterange.New(opt.Loc),
		log:      opt.Log.With().Str("mod", "redistribute").Logger(),
	}
}

// Presets returns the operator shortcuts around now
func (s *Svc) Presets(now time.Time) domain.Presets {
	return domain.NewPresets(now, s.opt.Loc)
}

// Run executes one redistribution for a tab.
// Settings are loaded once and passed down. A selector failure aborts the
// run before anything is written; item failures are reported per item
func (s *Svc) Run(ctx context.Context, in domain.RunInput) (domain.Report, error) {
	started := time.Now()
	tab := entdomain.SanitizeKey(in.Tab)
	if tab == "" {
		return domain.Report{}, perr.WithField(perr.InvalidArgf("tab is required"), "tab")
	}

	set, err := s.opt.Settings.Get(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	if !set.TabEnabled(tab) {
		return domain.Report{}, perr.Forbiddenf("the %s tab is disabled", entdomain.Label(tab))
	}

	runID := uuid.NewString()
	log := s.log.With().Str("run_id", runID).Str("tab", tab).Logger()

	res := s.resolver.Resolve(in.Window(), s.opt.Clock.Now())
	for _, w := range res.Warnings {
		log.Warn().Str("code", string(w.Code)).Str("input", w.Input).Msg(w.Message)
	}

	targets, failed, err := s.selectTargets(ctx, tab, in)
	if err != nil {
		log.Error().Err(err).Msg("target selection failed")
		return domain.Report{}, perr.WithOp(err, "redistribute.select")
	}

	plan := domain.Plan{
		Field:         domain.ParseField(in.Field),
		Interval:      res.Interval,
		Window:        res.Window,
		UseCustomTime: res.UseCustomTime,
		Operator:      in.Operator,
	}
	items := append(failed, s.Apply(ctx, targets, plan, set)...)

	rep := domain.Report{
		RunID:    runID,
		Tab:      tab,
		Items:    items,
		Interval: res.Interval,
		Warnings: res.Warnings,
	}
	if res.UseCustomTime {
		w := res.Window
		rep.Window = &w
	}
	for _, it := range items {
		if it.OK() {
			rep.Count++
		} else {
			rep.Failed++
		}
	}
	rep.Message = fmt.Sprintf("%d %s dates successfully updated.", rep.Count, entdomain.Label(tab))

	s.opt.Metrics.RunCompleted(tab, time.Since(started))
	log.Info().
		Int("count", rep.Count).
		Int("failed", rep.Failed).
		Str("field", string(plan.Field)).
		Time("from", res.Interval.From).
		Time("to", res.Interval.To).
		Dur("took", time.Since(started)).
		Msg("redistribution complete")
	return rep, nil
}

// selectTargets resolves the tab to its targets; explicit page ids that do
// not exist come back as failed items
func (s *Svc) selectTargets(ctx context.Context, tab string, in domain.RunInput) ([]domain.Target, []domain.ItemResult, error) {
	switch tab {
	case domain.TabPosts:
		posts, err := s.opt.Entities.SelectPosts(ctx, in.Categories, in.Tags)
		if err != nil {
			return nil, nil, err
		}
		out := make([]domain.Target, 0, len(posts))
		for _, p := range posts {
			out = append(out, domain.PostItem{Post: p})
		}
		return out, nil, nil

	case domain.TabPages:
		pages, missing, err := s.opt.Entities.SelectPages(ctx, in.Pages)
		if err != nil {
			return nil, nil, err
		}
		out := make([]domain.Target, 0, len(pages))
		for _, p := range pages {
			out = append(out, domain.PageItem{Post: p})
		}
		failed := make([]domain.ItemResult, 0, len(missing))
		for _, id := range missing {
			failed = append(failed, domain.ItemResult{Kind: entdomain.KindPage, ID: id, Err: fmt.Sprintf("page %d not found", id)})
		}
		return out, failed, nil

	case domain.TabComments:
		comments, err := s.opt.Entities.SelectComments(ctx)
		if err != nil {
			return nil, nil, err
		}
		out := make([]domain.Target, 0, len(comments))
		for _, c := range comments {
			out = append(out, domain.CommentItem{Comment: c})
		}
		return out, nil, nil
	}

	posts, err := s.opt.Entities.SelectCustom(ctx, tab, in.Tax, in.TaxRelation)
	if err != nil {
		return nil, nil, err
	}
	out := make([]domain.Target, 0, len(posts))
	for _, p := range posts {
		out = append(out, domain.CustomItem{Post: p})
	}
	return out, nil, nil
}
