package service

import (
	"context"
	"errors"

	"bulkdate/internal/core/daterange"
	ptime "bulkdate/internal/platform/time"
	entdomain "bulkdate/internal/services/entities/domain"
	hdomain "bulkdate/internal/services/history/domain"
	"bulkdate/internal/services/redistribute/domain"
	setdomain "bulkdate/internal/services/settings/domain"
)

// Apply redistributes the dates of targets in input order.
//
// Targets are processed in chunks of ChunkSize; every InvalidateEvery-th
// successfully written item has its cache entry dropped and the object cache is flushed
// after each chunk. A failing item is reported and the run moves on. Posts,
// pages and custom types get one history row per written field, comments
// none. Apply stops early when ctx is done and returns what it processed.
func (s *Svc) Apply(ctx context.Context, targets []domain.Target, plan domain.Plan, set setdomain.Settings) []domain.ItemResult {
	out := make([]domain.ItemResult, 0, len(targets))

	processed, written := 0, 0
	for start := 0; start < len(targets); start += s.opt.ChunkSize {
		end := min(start+s.opt.ChunkSize, len(targets))
		for _, t := range targets[start:end] {
			if err := ctx.Err(); err != nil {
				s.log.Warn().Err(err).Int("processed", processed).Int("total", len(targets)).Msg("run interrupted")
				s.opt.Cache.Flush()
				return out
			}

			res := s.applyOne(ctx, t, plan, set)
			out = append(out, res)
			processed++

			if !res.OK() {
				s.opt.Metrics.ItemProcessed(string(t.Kind()), "failed")
				continue
			}
			s.opt.Metrics.ItemProcessed(string(t.Kind()), "ok")
			written++

			if written%s.opt.InvalidateEvery == 0 {
				s.opt.Cache.Invalidate(cacheKey(t))
			}
		}
		s.opt.Cache.Flush()
	}
	return out
}

func cacheKey(t domain.Target) string {
	if t.Kind() == entdomain.KindComment {
		return entdomain.CacheKey(entdomain.KindComment, t.EntityID())
	}
	return entdomain.CacheKey(entdomain.KindPost, t.EntityID())
}

func (s *Svc) applyOne(ctx context.Context, t domain.Target, plan domain.Plan, set setdomain.Settings) domain.ItemResult {
	switch x := t.(type) {
	case domain.CommentItem:
		return s.applyComment(ctx, x, plan)
	case domain.PostItem:
		return s.applyPost(ctx, x.Kind(), x.Post, plan, set)
	case domain.PageItem:
		return s.applyPost(ctx, x.Kind(), x.Post, plan, set)
	case domain.CustomItem:
		return s.applyPost(ctx, x.Kind(), x.Post, plan, set)
	default:
		return domain.ItemResult{Kind: t.Kind(), ID: t.EntityID(), Err: "unsupported target"}
	}
}

func window(plan domain.Plan) *daterange.Window {
	if !plan.UseCustomTime {
		return nil
	}
	w := plan.Window
	return &w
}

func (s *Svc) applyComment(ctx context.Context, c domain.CommentItem, plan domain.Plan) domain.ItemResult {
	res := domain.ItemResult{Kind: entdomain.KindComment, ID: c.ID, Fields: []string{domain.CommentField}}

	floor, err := ptime.Parse(c.PostDate, s.opt.Loc)
	if err != nil {
		res.Err = "unreadable post date " + c.PostDate
		return res
	}

	at := s.opt.Sampler.Sample(plan.Interval, &floor, window(plan))
	local := ptime.Format(at, s.opt.Loc)
	if err := s.opt.Entities.WriteCommentDate(ctx, c.ID, local, ptime.FormatGMT(at)); err != nil {
		s.log.Warn().Err(err).Int64("comment_id", c.ID).Msg("comment date write failed")
		res.Err = err.Error()
		return res
	}
	res.NewDate = local
	return res
}

func (s *Svc) applyPost(ctx context.Context, kind entdomain.Kind, p entdomain.Post, plan domain.Plan, set setdomain.Settings) domain.ItemResult {
	cols := plan.Field.Columns()
	res := domain.ItemResult{Kind: kind, ID: p.ID, Title: p.Title, Fields: cols}

	// one draw per item; Both writes the same instant to both fields
	at := s.opt.Sampler.Sample(plan.Interval, nil, window(plan))
	local := ptime.Format(at, s.opt.Loc)
	if err := s.opt.Entities.WritePostDates(ctx, p.ID, cols, local, ptime.FormatGMT(at)); err != nil {
		s.log.Warn().Err(err).Int64("post_id", p.ID).Msg("post date write failed")
		res.Err = err.Error()
		return res
	}
	res.NewDate = local

	for _, col := range cols {
		id, err := s.opt.History.Record(ctx, set, hdomain.NewRecord{
			PostID:       p.ID,
			PostTitle:    p.Title,
			PostType:     p.Type,
			PreviousDate: p.FieldValue(col),
			NewDate:      local,
			DateField:    col,
			ModifiedBy:   plan.Operator,
		})
		switch {
		case errors.Is(err, hdomain.ErrDisabled):
		case err != nil:
			s.log.Warn().Err(err).Int64("post_id", p.ID).Str("field", col).Msg("history record failed")
		default:
			res.HistoryIDs = append(res.HistoryIDs, id)
		}
	}
	return res
}
